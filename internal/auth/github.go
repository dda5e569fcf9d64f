package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"finrecon-backend/internal/shared/server/respond"
	"finrecon-backend/internal/users"
)

// GitHubService handles GitHub OAuth flows.
type GitHubService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	stateTTL    time.Duration
	stateStore  *stateStore
	apiBase     string

	Users    *users.Service
	Sessions SessionStarter
	Audit    AuditRecorder
}

// NewGitHubService builds a GitHubService.
func NewGitHubService(clientID, clientSecret, redirectURL, uiRedirect string, userSvc *users.Service, sessions SessionStarter, auditSvc AuditRecorder) *GitHubService {
	return &GitHubService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		uiRedirect: uiRedirect,
		stateTTL:   5 * time.Minute,
		stateStore: newStateStore(),
		apiBase:    "https://api.github.com",
		Users:      userSvc,
		Sessions:   sessions,
		Audit:      auditSvc,
	}
}

// RegisterRoutes attaches GitHub auth routes.
func (s *GitHubService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/github/start", s.start)
	rg.GET("/auth/github/callback", s.callback)
}

func (s *GitHubService) start(c *gin.Context) {
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" || s.oauthConfig.RedirectURL == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "GitHub auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.stateStore.put(state, time.Now().Add(s.stateTTL))

	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *GitHubService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	if !s.stateStore.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	userInfo, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	if userInfo.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "no verified email on GitHub account", nil)
		return
	}

	name := userInfo.Name
	if name == "" {
		name = userInfo.Login
	}

	user, err := s.Users.UpsertFromOAuth(ctx, users.ProviderGitHub, userInfo.Email, name, userInfo.AvatarURL)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store user", nil)
		return
	}

	jwt, sessionID, err := issueToken(ctx, s.Sessions, user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, user.ID, sessionID, "login", "github oauth")
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}

	c.Redirect(http.StatusFound, redirectURL)
}

type githubUserInfo struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func (s *GitHubService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (githubUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)

	resp, err := client.Get(s.apiBase + "/user")
	if err != nil {
		return githubUserInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return githubUserInfo{}, fmt.Errorf("user status %d", resp.StatusCode)
	}
	var info githubUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return githubUserInfo{}, err
	}

	// The profile email is often hidden; fall back to the primary verified
	// email from the emails endpoint.
	if info.Email == "" {
		email, err := s.fetchPrimaryEmail(client)
		if err != nil {
			return githubUserInfo{}, err
		}
		info.Email = email
	}
	return info, nil
}

func (s *GitHubService) fetchPrimaryEmail(client *http.Client) (string, error) {
	resp, err := client.Get(s.apiBase + "/user/emails")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("emails status %d", resp.StatusCode)
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}
