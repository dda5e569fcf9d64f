package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "finance1", "finance1@example.com", "s3cret-pass", "Fin Ance", "Acme Corp")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.AuthProvider != ProviderLocal {
		t.Fatalf("provider = %q", user.AuthProvider)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}

	got, err := svc.Authenticate(ctx, "finance1", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("id = %q, want %q", got.ID, user.ID)
	}
	if got.LastLogin == nil {
		t.Fatal("expected last_login set")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	if _, err := svc.Register(ctx, "finance1", "finance1@example.com", "s3cret-pass", "", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "finance1", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	if _, err := svc.Register(ctx, "finance1", "finance1@example.com", "s3cret-pass", "", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, "finance1", "other@example.com", "s3cret-pass", "", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	if _, err := svc.Register(ctx, "finance2", "finance1@example.com", "s3cret-pass", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "finance1", "f@example.com", "short", "", ""); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestUpsertFromOAuthKeepsOneAccountPerEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.UpsertFromOAuth(ctx, ProviderGoogle, "person@example.com", "Person One", "https://pic/1")
	if err != nil {
		t.Fatalf("UpsertFromOAuth: %v", err)
	}
	second, err := svc.UpsertFromOAuth(ctx, ProviderGitHub, "Person@Example.com", "Person Renamed", "https://pic/2")
	if err != nil {
		t.Fatalf("UpsertFromOAuth second: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same account, got %q and %q", first.ID, second.ID)
	}
	if second.FullName != "Person Renamed" {
		t.Fatalf("full name = %q", second.FullName)
	}
}
