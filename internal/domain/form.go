package domain

import "time"

// DefaultQuestion is used when a form is created without one.
const DefaultQuestion = "Votre avis ?"

type FeedbackForm struct {
	ID        int64
	UUID      string // public share token
	Name      string
	Question  string
	OwnerID   int64
	CreatedAt time.Time
}
