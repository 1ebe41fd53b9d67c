package server

import "testing"

func validOptions() []AnswerOption {
	return []AnswerOption{
		{Text: "alpha", Correct: true},
		{Text: "beta"},
		{Text: "gamma"},
		{Text: "delta"},
	}
}

func TestValidateQuestion(t *testing.T) {
	text, options, err := validateQuestion("  What   is  Go?  ", 1, validOptions())
	if err != nil {
		t.Fatalf("expected valid question, got %v", err)
	}
	if text != "What is Go?" {
		t.Fatalf("expected collapsed whitespace, got %q", text)
	}
	if len(options) != 4 || !options[0].Correct {
		t.Fatalf("unexpected options: %#v", options)
	}
}

func TestValidateQuestionExactlyOneCorrect(t *testing.T) {
	none := validOptions()
	none[0].Correct = false
	if _, _, err := validateQuestion("Q", 1, none); err == nil {
		t.Fatalf("expected zero correct options to be rejected")
	}

	two := validOptions()
	two[1].Correct = true
	if _, _, err := validateQuestion("Q", 1, two); err == nil {
		t.Fatalf("expected two correct options to be rejected")
	}
}

func TestValidateQuestionShape(t *testing.T) {
	if _, _, err := validateQuestion("", 1, validOptions()); err == nil {
		t.Fatalf("expected empty text to be rejected")
	}
	if _, _, err := validateQuestion("Q", 0, validOptions()); err == nil {
		t.Fatalf("expected non-positive weight to be rejected")
	}
	if _, _, err := validateQuestion("Q", 1, validOptions()[:3]); err == nil {
		t.Fatalf("expected three options to be rejected")
	}
	blank := validOptions()
	blank[2].Text = "   "
	if _, _, err := validateQuestion("Q", 1, blank); err == nil {
		t.Fatalf("expected a blank option to be rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	email, err := validateEmail("  Ada@Example.COM ")
	if err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	if email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", email)
	}

	for _, bad := range []string{"", "not-an-email", "a@"} {
		if _, err := validateEmail(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  a \t b\n c  "); got != "a b c" {
		t.Fatalf("expected collapsed text, got %q", got)
	}
	if got := normalizeText("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
