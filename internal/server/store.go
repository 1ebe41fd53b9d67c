package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	errRoomNotFound     = errors.New("room not found")
	errRoomInGame       = errors.New("room is in game")
	errQuestionNotFound = errors.New("question not found")
	errUserNotFound     = errors.New("user not found")
	errAttemptNotFound  = errors.New("attempt not found")
)

type Store struct {
	mu            sync.Mutex
	nextUserID    int
	nextCatID     int
	nextQID       int
	nextRoomID    int
	nextAttemptID int
	users         map[int]*User
	categories    map[int]*Category
	questions     map[int]*Question
	rooms         map[int]*Room
	attempts      map[int]*Attempt
	answers       []Answer
}

func NewStore() *Store {
	return &Store{
		nextUserID:    1,
		nextCatID:     1,
		nextQID:       1,
		nextRoomID:    1,
		nextAttemptID: 1,
		users:         make(map[int]*User),
		categories:    make(map[int]*Category),
		questions:     make(map[int]*Question),
		rooms:         make(map[int]*Room),
		attempts:      make(map[int]*Attempt),
	}
}

func (s *Store) CreateUser(name, email, team, class string, hash []byte, isAdmin bool) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return nil, errors.New("email already registered")
		}
	}
	user := &User{
		ID:           s.nextUserID,
		Name:         name,
		Email:        email,
		Team:         team,
		Class:        class,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(id int) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *Store) FindUserByEmail(email string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return nil, false
}

func (s *Store) UpdateUser(id int, update func(user *User) error) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	if err := update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) ListUsers() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]User, 0, len(s.users))
	for _, user := range s.users {
		list = append(list, *user)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) CreateCategory(name, description string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cat := range s.categories {
		if strings.EqualFold(cat.Name, name) {
			return nil, errors.New("category already exists")
		}
	}
	cat := &Category{
		ID:          s.nextCatID,
		Name:        name,
		Description: description,
	}
	s.nextCatID++
	s.categories[cat.ID] = cat
	return cat, nil
}

func (s *Store) GetCategory(id int) (*Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[id]
	return cat, ok
}

func (s *Store) UpdateCategory(id int, update func(cat *Category) error) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[id]
	if !ok {
		return nil, errors.New("category not found")
	}
	if err := update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses while questions still reference the category,
// mirroring the FK restriction in the schema.
func (s *Store) DeleteCategory(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return errors.New("category not found")
	}
	for _, q := range s.questions {
		if q.CategoryID == id {
			return errors.New("category has questions")
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Category, 0, len(s.categories))
	for _, cat := range s.categories {
		list = append(list, *cat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (s *Store) CreateQuestion(categoryID int, text string, weight int, options []AnswerOption) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return nil, errors.New("category not found")
	}
	question := &Question{
		ID:         s.nextQID,
		CategoryID: categoryID,
		Text:       text,
		Weight:     weight,
		Options:    append([]AnswerOption(nil), options...),
	}
	s.nextQID++
	s.questions[question.ID] = question
	return question, nil
}

func (s *Store) GetQuestion(id int) (*Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	return question, ok
}

func (s *Store) UpdateQuestion(id int, update func(q *Question) error) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, errQuestionNotFound
	}
	if err := update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *Store) DeleteQuestion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return errQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *Store) ListQuestions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		list = append(list, *q)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) CreateRoom(name string, capacity, questionSeconds int) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := &Room{
		ID:              s.nextRoomID,
		Name:            name,
		Capacity:        capacity,
		Status:          statusOpen,
		QuestionSeconds: questionSeconds,
	}
	s.nextRoomID++
	s.rooms[room.ID] = room
	return room
}

func (s *Store) GetRoom(id int) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	return room, ok
}

func (s *Store) UpdateRoom(id int, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, errRoomNotFound
	}
	if err := update(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Store) DeleteRoom(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return errRoomNotFound
	}
	if room.Status == statusInGame {
		return errRoomInGame
	}
	delete(s.rooms, id)
	return nil
}

func (s *Store) ListRoomSummaries() []RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]RoomSummary, 0, len(s.rooms))
	for _, room := range s.rooms {
		list = append(list, RoomSummary{
			ID:       room.ID,
			Name:     room.Name,
			Capacity: room.Capacity,
			Status:   room.Status,
			Players:  s.roomPlayerCountLocked(room.ID),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// JoinRoom inserts an attempt for the player, or hands back the existing one
// when the player already joined. The bool reports "already joined".
func (s *Store) JoinRoom(roomID, userID int) (*Attempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, false, errRoomNotFound
	}
	for _, attempt := range s.attempts {
		if attempt.RoomID == roomID && attempt.UserID == userID {
			return attempt, true, nil
		}
	}
	if room.Status != statusOpen {
		return nil, false, errors.New("room is not open")
	}
	if room.Capacity > 0 && s.roomPlayerCountLocked(roomID) >= room.Capacity {
		return nil, false, errors.New("room is full")
	}
	attempt := &Attempt{
		ID:        s.nextAttemptID,
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: time.Now().UTC(),
	}
	s.nextAttemptID++
	s.attempts[attempt.ID] = attempt
	return attempt, false, nil
}

func (s *Store) CreateSoloAttempt(userID int, questionIDs []int) *Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt := &Attempt{
		ID:            s.nextAttemptID,
		UserID:        userID,
		QuestionCount: len(questionIDs),
		QuestionIDs:   append([]int(nil), questionIDs...),
		CreatedAt:     time.Now().UTC(),
	}
	s.nextAttemptID++
	s.attempts[attempt.ID] = attempt
	return attempt
}

func (s *Store) GetAttempt(id int) (*Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[id]
	return attempt, ok
}

func (s *Store) RoomAttempts(roomID int) []Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Attempt, 0)
	for _, attempt := range s.attempts {
		if attempt.RoomID == roomID {
			list = append(list, *attempt)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) RoomPlayerCount(roomID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomPlayerCountLocked(roomID)
}

func (s *Store) roomPlayerCountLocked(roomID int) int {
	count := 0
	for _, attempt := range s.attempts {
		if attempt.RoomID == roomID {
			count++
		}
	}
	return count
}

// UpsertAnswer overwrites by (attempt, question number); correctness is
// the caller's derivation from the latest submitted text.
func (s *Store) UpsertAnswer(attemptID, questionNumber, questionID int, text string, correct bool) (*Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, errAttemptNotFound
	}
	for i := range s.answers {
		if s.answers[i].AttemptID == attemptID && s.answers[i].QuestionNumber == questionNumber {
			s.answers[i].QuestionID = questionID
			s.answers[i].Text = text
			s.answers[i].Correct = correct
			return &s.answers[i], nil
		}
	}
	s.answers = append(s.answers, Answer{
		AttemptID:      attemptID,
		UserID:         attempt.UserID,
		QuestionID:     questionID,
		QuestionNumber: questionNumber,
		Text:           text,
		Correct:        correct,
	})
	return &s.answers[len(s.answers)-1], nil
}

func (s *Store) AttemptAnswers(attemptID int) []Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Answer, 0)
	for _, answer := range s.answers {
		if answer.AttemptID == attemptID {
			list = append(list, answer)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].QuestionNumber < list[j].QuestionNumber })
	return list
}

func (s *Store) CountRoomAnswers(roomID, questionNumber int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	byAttempt := make(map[int]struct{})
	for _, attempt := range s.attempts {
		if attempt.RoomID == roomID {
			byAttempt[attempt.ID] = struct{}{}
		}
	}
	count := 0
	for _, answer := range s.answers {
		if answer.QuestionNumber != questionNumber {
			continue
		}
		if _, ok := byAttempt[answer.AttemptID]; ok {
			count++
		}
	}
	return count
}

// RankingData copies the flat tables the ranking aggregation scans.
func (s *Store) RankingData() ([]User, []Attempt, []Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	attempts := make([]Attempt, 0, len(s.attempts))
	for _, attempt := range s.attempts {
		attempts = append(attempts, *attempt)
	}
	answers := append([]Answer(nil), s.answers...)
	return users, attempts, answers
}
