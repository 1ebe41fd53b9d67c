package server

import "math/rand"

type CategoryQuota struct {
	CategoryID int `json:"category_id"`
	Count      int `json:"count"`
}

// sampleRandom draws up to n questions from the bank with a uniform shuffle.
// An under-supplied bank caps the draw at availability.
func sampleRandom(bank []Question, n int) []Question {
	if n <= 0 {
		return nil
	}
	shuffled := append([]Question(nil), bank...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// sampleConfigured draws each category's quota independently, capped at that
// category's availability, then reshuffles the concatenation so the quiz
// does not run category-by-category.
func sampleConfigured(bank []Question, quotas []CategoryQuota) []Question {
	byCategory := make(map[int][]Question)
	for _, q := range bank {
		byCategory[q.CategoryID] = append(byCategory[q.CategoryID], q)
	}
	selected := make([]Question, 0)
	for _, quota := range quotas {
		if quota.Count <= 0 {
			continue
		}
		selected = append(selected, sampleRandom(byCategory[quota.CategoryID], quota.Count)...)
	}
	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

func questionIDs(questions []Question) []int {
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func correctOption(q *Question) string {
	for _, option := range q.Options {
		if option.Correct {
			return option.Text
		}
	}
	return ""
}
