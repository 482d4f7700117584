package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "learnhub-service"
	EventVersion = "1.0"
	TopicPrefix  = "learnhub."
)

// Event types
const (
	AccountRegistered = "account.registered"
	AccountUpdated    = "account.updated"
	AccountDeleted    = "account.deleted"
	SessionLoggedIn   = "session.logged_in"
	SessionLoggedOut  = "session.logged_out"
	CourseCreated     = "course.created"
	CourseUpdated     = "course.updated"
	CourseDeleted     = "course.deleted"
	EnrollmentCreated = "enrollment.created"
	EnrollmentRemoved = "enrollment.removed"
	FeedbackCreated   = "feedback.created"
)

// Event is the envelope every published message carries
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Topic maps an event type to its broker topic
func Topic(eventType string) string {
	return TopicPrefix + eventType
}

type AccountEventData struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role,omitempty"`
}

type CourseEventData struct {
	CourseID     string `json:"course_id"`
	Title        string `json:"title,omitempty"`
	InstructorID string `json:"instructor_id,omitempty"`
	ActorID      string `json:"actor_id,omitempty"`
}

type EnrollmentEventData struct {
	AccountID string `json:"account_id"`
	CourseID  string `json:"course_id"`
}

type FeedbackEventData struct {
	FeedbackID int64  `json:"feedback_id"`
	Author     string `json:"author"`
	Rating     int    `json:"rating"`
}
