package server

import "sort"

type RankingEntry struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Attempts int    `json:"attempts"`
}

// computeRanking scores each player from their highest-id attempt only;
// earlier attempts count toward the lifetime attempt statistic.
func computeRanking(users []User, attempts []Attempt, answers []Answer) []RankingEntry {
	names := make(map[int]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}

	attemptCount := make(map[int]int)
	latest := make(map[int]int)
	for _, attempt := range attempts {
		attemptCount[attempt.UserID]++
		if attempt.ID > latest[attempt.UserID] {
			latest[attempt.UserID] = attempt.ID
		}
	}

	type tally struct {
		correct int
		total   int
	}
	scores := make(map[int]tally)
	for _, answer := range answers {
		if latest[answer.UserID] != answer.AttemptID {
			continue
		}
		t := scores[answer.UserID]
		t.total++
		if answer.Correct {
			t.correct++
		}
		scores[answer.UserID] = t
	}

	ranking := make([]RankingEntry, 0, len(scores))
	for userID, t := range scores {
		ranking = append(ranking, RankingEntry{
			UserID:   userID,
			Name:     names[userID],
			Correct:  t.correct,
			Total:    t.total,
			Attempts: attemptCount[userID],
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Correct != ranking[j].Correct {
			return ranking[i].Correct > ranking[j].Correct
		}
		if ranking[i].Attempts != ranking[j].Attempts {
			return ranking[i].Attempts < ranking[j].Attempts
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}

// Ranking coalesces concurrent requests into one table scan.
func (s *Server) Ranking() []RankingEntry {
	result, _, _ := s.rankingGroup.Do("ranking", func() (any, error) {
		users, attempts, answers := s.store.RankingData()
		return computeRanking(users, attempts, answers), nil
	})
	ranking, _ := result.([]RankingEntry)
	return ranking
}
