package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"finrecon-backend/internal/sessions"
	"finrecon-backend/internal/users"
)

func newGitHubProvider(t *testing.T, profileEmail string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gh-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octo","name":"Octo Cat","email":"` + profileEmail + `","avatar_url":"https://example.com/octo.png"}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"email":"hidden@example.com","primary":true,"verified":true}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGitHubFixture(t *testing.T, provider *httptest.Server) (*GitHubService, *users.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := users.NewMemoryRepo()
	userSvc := users.NewService(userRepo)
	sessionSvc := sessions.NewService(sessions.NewMemoryRepo())

	svc := NewGitHubService("client-id", "client-secret", "http://localhost:8080/api/v1/auth/github/callback",
		"http://localhost:5173/auth", userSvc, testSessionStarter{svc: sessionSvc}, nil)
	svc.oauthConfig.Endpoint = oauth2.Endpoint{
		AuthURL:  provider.URL + "/authorize",
		TokenURL: provider.URL + "/token",
	}
	svc.apiBase = provider.URL
	return svc, userRepo
}

func callbackRequest(svc *GitHubService, state string) *httptest.ResponseRecorder {
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?state="+state+"&code=abc", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGitHubCallbackRedirectsWithToken(t *testing.T) {
	provider := newGitHubProvider(t, "octo@example.com")
	svc, userRepo := newGitHubFixture(t, provider)

	svc.stateStore.put("state-1", time.Now().Add(time.Minute))
	resp := callbackRequest(svc, "state-1")

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	location := resp.Header().Get("Location")
	if !strings.HasPrefix(location, "http://localhost:5173/auth?token=") {
		t.Fatalf("expected redirect with token, got %s", location)
	}

	user, err := userRepo.GetByEmail(context.Background(), "octo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.AuthProvider != users.ProviderGitHub {
		t.Fatalf("expected github provider, got %s", user.AuthProvider)
	}
	if user.FullName != "Octo Cat" {
		t.Fatalf("expected full name from profile, got %s", user.FullName)
	}
}

func TestGitHubCallbackFallsBackToVerifiedEmail(t *testing.T) {
	provider := newGitHubProvider(t, "")
	svc, userRepo := newGitHubFixture(t, provider)

	svc.stateStore.put("state-2", time.Now().Add(time.Minute))
	resp := callbackRequest(svc, "state-2")

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, err := userRepo.GetByEmail(context.Background(), "hidden@example.com"); err != nil {
		t.Fatalf("expected user stored with fallback email: %v", err)
	}
}

func TestGitHubCallbackRejectsUnknownState(t *testing.T) {
	provider := newGitHubProvider(t, "octo@example.com")
	svc, _ := newGitHubFixture(t, provider)

	resp := callbackRequest(svc, "never-issued")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGitHubCallbackRejectsExpiredState(t *testing.T) {
	provider := newGitHubProvider(t, "octo@example.com")
	svc, _ := newGitHubFixture(t, provider)

	svc.stateStore.put("stale", time.Now().Add(-time.Minute))
	resp := callbackRequest(svc, "stale")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
