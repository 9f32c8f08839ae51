package models

import "time"

// NewsletterSubscriber is one confirmed signup. Email is stored lowercase and
// is unique in the backend; a duplicate insert is treated as already
// subscribed, not as an error.
type NewsletterSubscriber struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submitted_at"`
	SourcePath  string    `json:"source_path,omitempty"`
}

// PageView is a single analytics beacon. The visitor IP is stored only as a
// SHA-256 hash.
type PageView struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	IPHash    string    `json:"ip_hash"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
