package model

import (
	"time"
)

type Post struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	Body             string    `json:"body"`
	Category         string    `json:"category"` // stored as typed by the owner, normalized only on read
	ImageRef         *string   `json:"image_ref,omitempty"`
	AuthorEmail      string    `json:"author_email"` // immutable after creation
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OwnedBy is the ownership predicate: every mutating path goes through it and
// there is no privileged bypass.
func (p *Post) OwnedBy(email string) bool {
	return email != "" && p.AuthorEmail == email
}
