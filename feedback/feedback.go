// Package feedback stores user feedback and publishes it to Kafka for
// downstream analysis.
package feedback

import (
	"time"
)

// Ratings accepted by Submit.
const (
	RatingUp   = "up"
	RatingDown = "down"
)

// Feedback is one feedback row.
type Feedback struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:char(36);index;not null"`
	Rating    string `gorm:"size:8;not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

// Models returns the gorm models this package migrates.
func Models() []any {
	return []any{&Feedback{}}
}

// Event is the message published for each submitted feedback.
type Event struct {
	FeedbackID uint      `json:"feedbackId"`
	UserID     string    `json:"userId"`
	Rating     string    `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
