package mock

import (
	"context"

	"github.com/fwojciec/sangga"
)

var _ sangga.SessionStore = (*SessionStore)(nil)

// SessionStore is a mock implementation of sangga.SessionStore.
type SessionStore struct {
	CreateSessionFn   func(ctx context.Context) (*sangga.Session, error)
	FindSessionByIDFn func(ctx context.Context, id string) (*sangga.Session, error)
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionStore) CreateSession(ctx context.Context) (*sangga.Session, error) {
	return s.CreateSessionFn(ctx)
}

func (s *SessionStore) FindSessionByID(ctx context.Context, id string) (*sangga.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
