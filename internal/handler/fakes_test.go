package handler

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/movierental/backend/internal/model"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/utils"
)

// In-memory store fakes. They mirror the repository contracts, including
// the sentinel errors and the conditional accept, so handler tests
// exercise the same failure paths the real repositories produce.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, username, password, role string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.users[username] = model.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type fakeMovieStore struct {
	mu     sync.Mutex
	nextID uint64
	movies map[uint64]model.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[uint64]model.Movie{}}
}

func (s *fakeMovieStore) List(_ context.Context) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Movie{}
	for i := uint64(1); i <= s.nextID; i++ {
		if m, ok := s.movies[i]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMovieStore) GetByID(_ context.Context, id uint64) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return m, nil
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	s.movies[m.ID] = *m
	return nil
}

func (s *fakeMovieStore) Update(_ context.Context, id uint64, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.movies[id]
	if !ok {
		return repository.ErrMovieNotFound
	}
	updated := *m
	updated.ID = id
	updated.PosterPath = old.PosterPath
	s.movies[id] = updated
	return nil
}

func (s *fakeMovieStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(s.movies, id)
	return nil
}

func (s *fakeMovieStore) AttachPoster(_ context.Context, id uint64, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return repository.ErrMovieNotFound
	}
	m.PosterPath = &path
	s.movies[id] = m
	return nil
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID uint64
	apps   map[uint64]model.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[uint64]model.Application{}}
}

func (s *fakeApplicationStore) Create(_ context.Context, a *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	a.Status = model.ApplicationNew
	a.CreatedAt = time.Now().UTC()
	s.apps[a.ID] = *a
	return nil
}

func (s *fakeApplicationStore) List(_ context.Context) ([]model.Application, error) {
	return s.filter(func(model.Application) bool { return true }), nil
}

func (s *fakeApplicationStore) ListByUser(_ context.Context, userID uint64) ([]model.Application, error) {
	return s.filter(func(a model.Application) bool { return a.UserID == userID }), nil
}

func (s *fakeApplicationStore) ListByEmail(_ context.Context, email string) ([]model.Application, error) {
	return s.filter(func(a model.Application) bool { return a.ApplicantEmail == email }), nil
}

func (s *fakeApplicationStore) filter(keep func(model.Application) bool) []model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Application{}
	for i := uint64(1); i <= s.nextID; i++ {
		if a, ok := s.apps[i]; ok && keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *fakeApplicationStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	s.apps[id] = a
	return nil
}

func (s *fakeApplicationStore) AttachImage(_ context.Context, id uint64, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.ImagePath = &path
	s.apps[id] = a
	return nil
}

type fakeChatStore struct {
	mu     sync.Mutex
	nextID uint64
	chats  map[uint64]*model.Chat
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: map[uint64]*model.Chat{}}
}

func (s *fakeChatStore) Create(_ context.Context, userID uint64, message string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.chats[s.nextID] = &model.Chat{
		ID:     s.nextID,
		UserID: userID,
		Status: model.ChatPending,
		Messages: []model.ChatMessage{
			{Sender: model.RoleUser, Message: message, Timestamp: time.Now().UTC()},
		},
		CreatedAt: time.Now().UTC(),
	}
	return s.nextID, nil
}

// Accept mirrors the conditional update: it only succeeds while the
// chat is still pending, under one lock, so concurrent accepts resolve
// to exactly one winner.
func (s *fakeChatStore) Accept(_ context.Context, chatID, adminID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chats[chatID]
	if !ok || ch.Status != model.ChatPending {
		return repository.ErrChatConflict
	}
	ch.Status = model.ChatAccepted
	admin := adminID
	ch.AdminID = &admin
	return nil
}

func (s *fakeChatStore) AddMessage(_ context.Context, chatID uint64, sender, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chats[chatID]
	if !ok {
		return repository.ErrChatNotFound
	}
	ch.Messages = append(ch.Messages, model.ChatMessage{
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *fakeChatStore) GetByID(_ context.Context, chatID uint64) (model.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chats[chatID]
	if !ok {
		return model.Chat{}, repository.ErrChatNotFound
	}
	return *ch, nil
}

func (s *fakeChatStore) ListPending(_ context.Context) ([]model.Chat, error) {
	return s.filterChats(func(ch *model.Chat) bool { return ch.Status == model.ChatPending }), nil
}

func (s *fakeChatStore) ListAcceptedByAdmin(_ context.Context, adminID uint64) ([]model.Chat, error) {
	return s.filterChats(func(ch *model.Chat) bool {
		return ch.Status == model.ChatAccepted && ch.AdminID != nil && *ch.AdminID == adminID
	}), nil
}

func (s *fakeChatStore) filterChats(keep func(*model.Chat) bool) []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Chat{}
	for i := uint64(1); i <= s.nextID; i++ {
		if ch, ok := s.chats[i]; ok && keep(ch) {
			out = append(out, *ch)
		}
	}
	return out
}
