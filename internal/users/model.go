package users

import "time"

// User is an account that can upload and reconcile documents. PasswordHash is
// empty for OAuth-only accounts.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	AuthProvider string     `json:"authProvider"`
	FullName     string     `json:"fullName"`
	Company      string     `json:"company"`
	PictureURL   string     `json:"pictureUrl"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)
