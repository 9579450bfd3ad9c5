package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application statuses. accepted / rejected / withdrawn are terminal.
const (
	StatusPending            = "pending"
	StatusReviewed           = "reviewed"
	StatusShortlisted        = "shortlisted"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewed        = "interviewed"
	StatusOffered            = "offered"
	StatusAccepted           = "accepted"
	StatusRejected           = "rejected"
	StatusWithdrawn          = "withdrawn"
)

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// StatusHistoryEntry is one row of the append-only audit trail.
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Actor     string    `json:"actor"` // candidate | company | system
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OfferDetails is populated when the application reaches `offered`.
type OfferDetails struct {
	Message     string     `json:"message"`
	Attachments []string   `json:"attachments,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// Message is a free-text note exchanged between the two parties.
type Message struct {
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

type ApplicationModel struct {
	ApplicationID uuid.UUID `gorm:"column:application_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"application_id"`

	// The (internship, candidate, company) triad is denormalized onto every
	// workflow record so ownership checks never need a join.
	ApplicationInternshipID uuid.UUID `gorm:"column:application_internship_id;type:uuid;not null;index:idx_app_unique,unique,where:application_deleted_at IS NULL" json:"application_internship_id"`
	ApplicationCandidateID  uuid.UUID `gorm:"column:application_candidate_id;type:uuid;not null;index:idx_app_unique,unique,where:application_deleted_at IS NULL" json:"application_candidate_id"`
	ApplicationCompanyID    uuid.UUID `gorm:"column:application_company_id;type:uuid;not null;index" json:"application_company_id"`

	ApplicationCoverLetter string         `gorm:"column:application_cover_letter;type:text" json:"application_cover_letter"`
	ApplicationAttachments datatypes.JSON `gorm:"column:application_attachments;type:jsonb;not null;default:'[]'" json:"application_attachments"`

	ApplicationStatus string `gorm:"column:application_status;type:varchar(30);not null;default:'pending';index" json:"application_status"`

	// Append-only ordered audit log. Only ever written through AppendHistory.
	ApplicationStatusHistory datatypes.JSON `gorm:"column:application_status_history;type:jsonb;not null;default:'[]'" json:"application_status_history"`

	ApplicationMessages     datatypes.JSON `gorm:"column:application_messages;type:jsonb;not null;default:'[]'" json:"application_messages"`
	ApplicationOfferDetails datatypes.JSON `gorm:"column:application_offer_details;type:jsonb" json:"application_offer_details"`

	ApplicationCreatedAt time.Time      `gorm:"column:application_created_at;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt time.Time      `gorm:"column:application_updated_at;autoUpdateTime" json:"application_updated_at"`
	ApplicationDeletedAt gorm.DeletedAt `gorm:"column:application_deleted_at;index" json:"-"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}

// History decodes the audit log.
func (m *ApplicationModel) History() ([]StatusHistoryEntry, error) {
	var entries []StatusHistoryEntry
	if len(m.ApplicationStatusHistory) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(m.ApplicationStatusHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendHistory appends one entry to the audit log. There is deliberately no
// update or delete path for existing entries.
func (m *ApplicationModel) AppendHistory(entry StatusHistoryEntry) error {
	entries, err := m.History()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	m.ApplicationStatusHistory = datatypes.JSON(raw)
	return nil
}

// Offer decodes offerDetails; nil when the offer has not been sent.
func (m *ApplicationModel) Offer() (*OfferDetails, error) {
	if len(m.ApplicationOfferDetails) == 0 || string(m.ApplicationOfferDetails) == "null" {
		return nil, nil
	}
	var offer OfferDetails
	if err := json.Unmarshal(m.ApplicationOfferDetails, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (m *ApplicationModel) SetOffer(offer *OfferDetails) error {
	raw, err := json.Marshal(offer)
	if err != nil {
		return err
	}
	m.ApplicationOfferDetails = datatypes.JSON(raw)
	return nil
}

// AppendMessage appends a free-text message between the parties.
func (m *ApplicationModel) AppendMessage(msg Message) error {
	var msgs []Message
	if len(m.ApplicationMessages) > 0 {
		if err := json.Unmarshal(m.ApplicationMessages, &msgs); err != nil {
			return err
		}
	}
	msgs = append(msgs, msg)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	m.ApplicationMessages = datatypes.JSON(raw)
	return nil
}
