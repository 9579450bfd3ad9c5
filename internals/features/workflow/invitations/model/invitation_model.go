package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

// DefaultTTL is the invitation lifetime when the company does not set one.
const DefaultTTL = 7 * 24 * time.Hour

type InvitationModel struct {
	InvitationID uuid.UUID `gorm:"column:invitation_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"invitation_id"`

	InvitationInternshipID uuid.UUID `gorm:"column:invitation_internship_id;type:uuid;not null;index:idx_inv_unique,unique,where:invitation_deleted_at IS NULL" json:"invitation_internship_id"`
	InvitationCandidateID  uuid.UUID `gorm:"column:invitation_candidate_id;type:uuid;not null;index:idx_inv_unique,unique,where:invitation_deleted_at IS NULL" json:"invitation_candidate_id"`
	InvitationCompanyID    uuid.UUID `gorm:"column:invitation_company_id;type:uuid;not null;index" json:"invitation_company_id"`

	InvitationMessage  string `gorm:"column:invitation_message;type:text" json:"invitation_message"`
	InvitationResponse string `gorm:"column:invitation_response;type:text" json:"invitation_response"`

	InvitationStatus    string     `gorm:"column:invitation_status;type:varchar(20);not null;default:'pending';index" json:"invitation_status"`
	InvitationExpiresAt time.Time  `gorm:"column:invitation_expires_at;not null" json:"invitation_expires_at"`
	InvitationRespondedAt *time.Time `gorm:"column:invitation_responded_at" json:"invitation_responded_at"`

	InvitationCreatedAt time.Time      `gorm:"column:invitation_created_at;autoCreateTime" json:"invitation_created_at"`
	InvitationUpdatedAt time.Time      `gorm:"column:invitation_updated_at;autoUpdateTime" json:"invitation_updated_at"`
	InvitationDeletedAt gorm.DeletedAt `gorm:"column:invitation_deleted_at;index" json:"-"`
}

func (InvitationModel) TableName() string {
	return "invitations"
}

// EffectiveStatus derives the status as of `now`. A stored `pending` past its
// expiry is expired no matter what the row says; the stored field may lag
// until a corrective write-back lands, and callers must never trust it alone.
func (m *InvitationModel) EffectiveStatus(now time.Time) string {
	if m.InvitationStatus == StatusPending && now.After(m.InvitationExpiresAt) {
		return StatusExpired
	}
	return m.InvitationStatus
}

// IsRespondable reports whether the candidate can still answer.
func (m *InvitationModel) IsRespondable(now time.Time) bool {
	return m.EffectiveStatus(now) == StatusPending
}
