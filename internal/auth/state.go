package auth

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	sharedauth "finrecon-backend/internal/shared/auth"
	"finrecon-backend/internal/users"
)

// SessionStarter opens a login session and returns its ID for the token.
type SessionStarter interface {
	Start(ctx context.Context, userID string) (sessionID string, err error)
}

// AuditRecorder records login and logout actions.
type AuditRecorder interface {
	Record(ctx context.Context, userID, sessionID, action, details string)
}

// issueToken starts a session for the user and signs a JWT carrying both the
// user and session identity.
func issueToken(ctx context.Context, sessions SessionStarter, user users.User) (token, sessionID string, err error) {
	if sessions != nil {
		sessionID, err = sessions.Start(ctx, user.ID)
		if err != nil {
			return "", "", err
		}
	}
	token, err = sharedauth.SignJWT(sharedauth.Claims{
		Sub:     user.ID,
		Sid:     sessionID,
		Email:   user.Email,
		Name:    user.FullName,
		Picture: user.PictureURL,
	})
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

type stateStore struct {
	items map[string]time.Time
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

func (s *stateStore) put(state string, exp time.Time) {
	now := time.Now()
	s.mu.Lock()
	// Abandoned flows never reach consume, so sweep expired entries here
	// to keep the map bounded.
	for k, e := range s.items {
		if now.After(e) {
			delete(s.items, k)
		}
	}
	s.items[state] = exp
	s.mu.Unlock()
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		return false
	}
	return true
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
