package types

import (
	"time"
)

// Note deliberately does not embed gorm.Model: deletes are hard deletes,
// so there is no DeletedAt column, and the primary key is a UUID string
// assigned by the note service rather than an autoincrement.
type Note struct {
	ID        string `gorm:"primaryKey" json:"id"`
	OwnerID   uint   `gorm:"index;not null" json:"-"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	// Summary stays whatever it was when last generated; editing Body
	// does not clear it, so it can be stale relative to Body.
	Summary   *string   `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle is what the dashboard shows; "Untitled" is never persisted.
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return "Untitled"
	}
	return n.Title
}

func (n Note) HasSummary() bool {
	return n.Summary != nil && *n.Summary != ""
}
