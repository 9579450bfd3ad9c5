package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Interview statuses
const (
	StatusPending     = "pending"
	StatusScheduled   = "scheduled"
	StatusRescheduled = "rescheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusNoShow      = "no_show"
)

// Candidate responses to a proposed schedule
const (
	ResponsePending             = "pending"
	ResponseAccepted            = "accepted"
	ResponseDeclined            = "declined"
	ResponseRescheduleRequested = "reschedule_requested"
)

// Outcome decisions
const (
	DecisionPending  = "pending"
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// Interview modes
const (
	ModeOnsite = "onsite"
	ModeVideo  = "video"
	ModePhone  = "phone"
)

// RescheduleEntry is one row of the reschedule log.
type RescheduleEntry struct {
	PreviousDate *time.Time `json:"previous_date,omitempty"`
	NewDate      time.Time  `json:"new_date"`
	Reason       string     `json:"reason,omitempty"`
	RequestedBy  string     `json:"requested_by"` // candidate | company
	RequestedAt  time.Time  `json:"requested_at"`
}

// Outcome is the company's decision after the interview took place.
type Outcome struct {
	Decision  string     `json:"decision"` // accepted | rejected | pending
	Feedback  string     `json:"feedback,omitempty"`
	Rating    *int       `json:"rating,omitempty"` // 1..5
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

type InterviewModel struct {
	InterviewID uuid.UUID `gorm:"column:interview_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"interview_id"`

	// Exactly one of application/invitation is set depending on which flow
	// produced the interview.
	InterviewApplicationID *uuid.UUID `gorm:"column:interview_application_id;type:uuid;index" json:"interview_application_id"`
	InterviewInvitationID  *uuid.UUID `gorm:"column:interview_invitation_id;type:uuid;index" json:"interview_invitation_id"`

	InterviewInternshipID uuid.UUID `gorm:"column:interview_internship_id;type:uuid;not null;index" json:"interview_internship_id"`
	InterviewCandidateID  uuid.UUID `gorm:"column:interview_candidate_id;type:uuid;not null;index" json:"interview_candidate_id"`
	InterviewCompanyID    uuid.UUID `gorm:"column:interview_company_id;type:uuid;not null;index" json:"interview_company_id"`

	InterviewDate         *time.Time     `gorm:"column:interview_date" json:"interview_date"`
	InterviewDurationMins int            `gorm:"column:interview_duration_mins;not null;default:30" json:"interview_duration_mins"`
	InterviewMode         string         `gorm:"column:interview_mode;type:varchar(10)" json:"interview_mode"`
	InterviewLocation     string         `gorm:"column:interview_location;type:varchar(255)" json:"interview_location"` // address or meeting link
	InterviewInterviewers pq.StringArray `gorm:"column:interview_interviewers;type:text[]" json:"interview_interviewers"`

	InterviewStatus            string `gorm:"column:interview_status;type:varchar(20);not null;default:'pending';index" json:"interview_status"`
	InterviewCandidateResponse string `gorm:"column:interview_candidate_response;type:varchar(30);not null;default:'pending'" json:"interview_candidate_response"`

	InterviewRescheduleHistory datatypes.JSON `gorm:"column:interview_reschedule_history;type:jsonb;not null;default:'[]'" json:"interview_reschedule_history"`
	InterviewOutcome           datatypes.JSON `gorm:"column:interview_outcome;type:jsonb" json:"interview_outcome"`

	// Post-acceptance fields
	InterviewOfferLetterURL *string    `gorm:"column:interview_offer_letter_url;type:text" json:"interview_offer_letter_url"`
	InterviewJoiningDate    *time.Time `gorm:"column:interview_joining_date" json:"interview_joining_date"`
	InterviewJoiningMessage string     `gorm:"column:interview_joining_message;type:text" json:"interview_joining_message"`

	InterviewCreatedAt time.Time      `gorm:"column:interview_created_at;autoCreateTime" json:"interview_created_at"`
	InterviewUpdatedAt time.Time      `gorm:"column:interview_updated_at;autoUpdateTime" json:"interview_updated_at"`
	InterviewDeletedAt gorm.DeletedAt `gorm:"column:interview_deleted_at;index" json:"-"`
}

func (InterviewModel) TableName() string {
	return "interviews"
}

// GetOutcome decodes the outcome record; a zero-value Outcome with decision
// `pending` when none has been stored yet.
func (m *InterviewModel) GetOutcome() (Outcome, error) {
	if len(m.InterviewOutcome) == 0 || string(m.InterviewOutcome) == "null" {
		return Outcome{Decision: DecisionPending}, nil
	}
	var out Outcome
	if err := json.Unmarshal(m.InterviewOutcome, &out); err != nil {
		return Outcome{}, err
	}
	if out.Decision == "" {
		out.Decision = DecisionPending
	}
	return out, nil
}

func (m *InterviewModel) SetOutcome(out Outcome) error {
	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}
	m.InterviewOutcome = datatypes.JSON(raw)
	return nil
}

// AppendReschedule appends to the reschedule log (append-only).
func (m *InterviewModel) AppendReschedule(entry RescheduleEntry) error {
	var entries []RescheduleEntry
	if len(m.InterviewRescheduleHistory) > 0 {
		if err := json.Unmarshal(m.InterviewRescheduleHistory, &entries); err != nil {
			return err
		}
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	m.InterviewRescheduleHistory = datatypes.JSON(raw)
	return nil
}

// CanSchedule: scheduling is legal from pending or rescheduled only.
func (m *InterviewModel) CanSchedule() bool {
	return m.InterviewStatus == StatusPending || m.InterviewStatus == StatusRescheduled
}
