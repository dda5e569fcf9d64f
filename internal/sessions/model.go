package sessions

import "time"

// Session is one login. It stays open until logout and counts the documents
// processed while it lasted.
type Session struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	StartedAt          time.Time  `json:"startedAt"`
	EndedAt            *time.Time `json:"endedAt,omitempty"`
	DocumentsProcessed int        `json:"documentsProcessed"`
}
