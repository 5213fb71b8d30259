package domain

import "time"

// Session represents an in-flight OAuth authorization, keyed by the CSRF
// state token.
type Session struct {
	ID          string    `json:"id"`
	Platform    Platform  `json:"platform"`
	Shop        string    `json:"shop"`
	State       string    `json:"state"`
	Scopes      []string  `json:"scopes"`
	ProjectID   string    `json:"project_id"`
	Environment string    `json:"environment"`
	ReturnURL   string    `json:"return_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}
