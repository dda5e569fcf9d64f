package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInactiveAccount    = errors.New("account is deactivated")
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a local account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, email, password, fullName, company string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return User{}, errors.New("username and email are required")
	}
	if len(password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		AuthProvider: ProviderLocal,
		FullName:     strings.TrimSpace(fullName),
		Company:      strings.TrimSpace(company),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. The bcrypt comparison runs
// even for unknown users to keep response timing flat.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGZLKE0lrtiYyvjXJh0mqSjGu9cQNNy"), []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, ErrInactiveAccount
	}
	if err := s.Repo.TouchLastLogin(ctx, user.ID); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpsertFromOAuth persists an OAuth identity and returns the stored account.
// Identities are keyed on email so the same person keeps one account across
// providers.
func (s *Service) UpsertFromOAuth(ctx context.Context, provider, email, fullName, pictureURL string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("oauth identity has no email")
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     email,
		Email:        email,
		AuthProvider: provider,
		FullName:     strings.TrimSpace(fullName),
		PictureURL:   strings.TrimSpace(pictureURL),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	stored, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if !stored.IsActive {
		return User{}, ErrInactiveAccount
	}
	return stored, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
