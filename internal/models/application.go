package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "Applied"
	StatusUnderReview        ApplicationStatus = "Under Review"
	StatusShortlisted        ApplicationStatus = "Shortlisted"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusHired              ApplicationStatus = "Hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusShortlisted,
		StatusInterviewScheduled, StatusRejected, StatusHired:
		return true
	}
	return false
}

type InterviewType string

const (
	InterviewInPerson InterviewType = "In-Person"
	InterviewVirtual  InterviewType = "Virtual"
	InterviewPhone    InterviewType = "Phone"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewInPerson, InterviewVirtual, InterviewPhone:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationStatusUpdate NotificationType = "Status Update"
	NotificationInterview    NotificationType = "Interview"
	NotificationFollowUp     NotificationType = "Follow-up"
	NotificationGeneral      NotificationType = "General"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationStatusUpdate, NotificationInterview,
		NotificationFollowUp, NotificationGeneral:
		return true
	}
	return false
}

// PartyRef identifies one side of an application. The role is the one
// asserted by the principal at creation time, not re-derived later.
type PartyRef struct {
	UserID string `bson:"user_id" json:"user_id"`
	Role   Role   `bson:"role" json:"role"`
}

type Resume struct {
	BlobID string `bson:"blob_id" json:"blob_id"`
	URL    string `bson:"url" json:"url"`
}

type Interview struct {
	Scheduled bool          `bson:"scheduled" json:"scheduled"`
	Date      time.Time     `bson:"date" json:"date"`
	Location  string        `bson:"location,omitempty" json:"location,omitempty"`
	Type      InterviewType `bson:"type" json:"type"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

type Notification struct {
	ID        string           `bson:"notification_id" json:"id"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	Read      bool             `bson:"read" json:"read"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
}

type FollowUp struct {
	ID        string    `bson:"followup_id" json:"id"`
	Message   string    `bson:"message" json:"message"`
	SentBy    PartyRef  `bson:"sent_by" json:"sent_by"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type TimelineEntry struct {
	Action    string    `bson:"action" json:"action"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Application is the root aggregate: one job seeker's submission against
// one job, plus everything derived from it. Notifications, follow-ups and
// the timeline are append-only (only a notification's read flag flips).
type Application struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ApplicationID string             `bson:"application_id" json:"id"` // uuid v4

	Applicant PartyRef `bson:"applicant" json:"applicant"`
	Employer  PartyRef `bson:"employer" json:"employer"`
	JobID     string   `bson:"job_id" json:"job_id"`

	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	CoverLetter string `bson:"cover_letter" json:"cover_letter"`
	Phone       string `bson:"phone" json:"phone"`
	Address     string `bson:"address" json:"address"`

	Resume Resume            `bson:"resume" json:"resume"`
	Status ApplicationStatus `bson:"status" json:"status"`

	Interview *Interview `bson:"interview,omitempty" json:"interview,omitempty"`

	Notifications []Notification  `bson:"notifications" json:"notifications"`
	FollowUps     []FollowUp      `bson:"follow_ups" json:"follow_ups"`
	Timeline      []TimelineEntry `bson:"timeline" json:"timeline"`

	// Revision guards read-modify-write cycles; every replace bumps it.
	Revision int64 `bson:"revision" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
