package server

import "time"

// roomSnapshot is the payload published to room subscribers and returned by
// the room GET endpoint. Answer options never include the correct flag.
func (s *Server) roomSnapshot(room *Room) map[string]any {
	snapshot := map[string]any{
		"room_id":           room.ID,
		"name":              room.Name,
		"capacity":          room.Capacity,
		"status":            room.Status,
		"players":           s.store.RoomPlayerCount(room.ID),
		"question_count":    len(room.QuestionIDs),
		"question_index":    room.QuestionIndex,
		"remaining_seconds": remainingSeconds(room, time.Now().UTC()),
	}
	if room.Status == statusInGame {
		if question, ok := s.store.GetQuestion(room.QuestionID); ok {
			snapshot["question"] = publicQuestion(question)
		}
	}
	if room.Status == statusFinished {
		snapshot["results"] = room.Results
	}
	return snapshot
}

func publicQuestion(q *Question) map[string]any {
	options := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		options = append(options, option.Text)
	}
	return map[string]any{
		"id":      q.ID,
		"text":    q.Text,
		"weight":  q.Weight,
		"options": options,
	}
}
