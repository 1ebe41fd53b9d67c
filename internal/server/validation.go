package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength      = 64
	maxEmailLength     = 120
	maxQuestionLength  = 500
	maxOptionLength    = 280
	minPasswordLength  = 6
	optionsPerQuestion = 4
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validateEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", errors.New("email is required")
	}
	if len(trimmed) > maxEmailLength {
		return "", fmt.Errorf("email must be %d characters or fewer", maxEmailLength)
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		return "", errors.New("email is invalid")
	}
	return trimmed, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// validateQuestion enforces what the admin form must guarantee: non-empty
// text, all four options filled, exactly one marked correct.
func validateQuestion(text string, weight int, options []AnswerOption) (string, []AnswerOption, error) {
	trimmed, err := validateText("question text", text, maxQuestionLength)
	if err != nil {
		return "", nil, err
	}
	if weight <= 0 {
		return "", nil, errors.New("weight must be positive")
	}
	if len(options) != optionsPerQuestion {
		return "", nil, fmt.Errorf("question must have exactly %d answer options", optionsPerQuestion)
	}
	cleaned := make([]AnswerOption, 0, len(options))
	correctCount := 0
	for i, option := range options {
		optionText, err := validateText(fmt.Sprintf("answer option %d", i+1), option.Text, maxOptionLength)
		if err != nil {
			return "", nil, err
		}
		if option.Correct {
			correctCount++
		}
		cleaned = append(cleaned, AnswerOption{Text: optionText, Correct: option.Correct})
	}
	if correctCount != 1 {
		return "", nil, errors.New("exactly one answer option must be marked correct")
	}
	return trimmed, cleaned, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
