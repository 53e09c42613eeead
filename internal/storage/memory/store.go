// Package memory provides an in-memory Store used by unit tests in place of
// Postgres. It mirrors the sentinel-error behavior of the real store.
package memory

import (
	"context"
	"sync"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.SessionStore = (*Store)(nil)
	_ storage.HistoryStore = (*Store)(nil)
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User // keyed by id
	byEmail  map[string]string      // email -> id
	sessions map[string]models.SessionToken
	history  []models.ConversionRecord
	nextID   int64

	// Err, when set, is returned by every operation. Tests use it to
	// simulate a store outage.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]models.SessionToken),
	}
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, upd storage.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if upd.Email != nil && *upd.Email != user.Email {
		if _, taken := s.byEmail[*upd.Email]; taken {
			return models.User{}, storage.ErrAlreadyExists
		}
		delete(s.byEmail, user.Email)
		user.Email = *upd.Email
		s.byEmail[user.Email] = id
	}
	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	s.users[id] = user
	return user, nil
}

func (s *Store) CreateSession(_ context.Context, session models.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.sessions[session.Token]; ok {
		return storage.ErrAlreadyExists
	}
	s.sessions[session.Token] = session
	return nil
}

func (s *Store) FindSession(_ context.Context, token string) (models.SessionToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return models.SessionToken{}, s.Err
	}
	session, ok := s.sessions[token]
	if !ok {
		return models.SessionToken{}, storage.ErrNotFound
	}
	return session, nil
}

// SessionCount reports the number of live rows; used by tests asserting that
// repeated logins multiply sessions.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) AddConversion(_ context.Context, record models.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.nextID++
	record.ID = s.nextID
	s.history = append(s.history, record)
	return nil
}

func (s *Store) ListConversions(_ context.Context, userID string) ([]models.ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var records []models.ConversionRecord
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].UserID == userID {
			records = append(records, s.history[i])
		}
	}
	return records, nil
}
