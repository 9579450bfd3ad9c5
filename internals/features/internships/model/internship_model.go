package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Internship lifecycle
const (
	InternshipStatusDraft       = "draft"
	InternshipStatusUnderReview = "under_review"
	InternshipStatusPublished   = "published"
	InternshipStatusClosed      = "closed"
)

// Work modes
const (
	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
)

type InternshipModel struct {
	InternshipID        uuid.UUID `gorm:"column:internship_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"internship_id"`
	InternshipCompanyID uuid.UUID `gorm:"column:internship_company_id;type:uuid;not null;index" json:"internship_company_id"`

	InternshipTitle        string `gorm:"column:internship_title;type:varchar(200);not null" json:"internship_title"`
	InternshipDescription  string `gorm:"column:internship_description;type:text" json:"internship_description"`
	InternshipWorkMode     string `gorm:"column:internship_work_mode;type:varchar(10);not null;default:'onsite'" json:"internship_work_mode"`
	InternshipDurationWks  int    `gorm:"column:internship_duration_weeks;not null;default:0" json:"internship_duration_weeks"`
	InternshipCompensation string `gorm:"column:internship_compensation;type:varchar(100)" json:"internship_compensation"`
	InternshipCity         string `gorm:"column:internship_city;type:varchar(100)" json:"internship_city"`

	InternshipStartDate *time.Time `gorm:"column:internship_start_date" json:"internship_start_date"`
	InternshipEndDate   *time.Time `gorm:"column:internship_end_date" json:"internship_end_date"`

	InternshipSkills       pq.StringArray `gorm:"column:internship_skills;type:text[]" json:"internship_skills"`
	InternshipRequirements pq.StringArray `gorm:"column:internship_requirements;type:text[]" json:"internship_requirements"`

	InternshipStatus string `gorm:"column:internship_status;type:varchar(20);not null;default:'draft';index" json:"internship_status"`

	// Non-owning back-reference set of application ids. Kept denormalized so a
	// posting page can render its applicant count without a join; the
	// Application row stays the source of truth.
	InternshipApplicationIDs pq.StringArray `gorm:"column:internship_application_ids;type:text[]" json:"internship_application_ids"`

	InternshipPublishedAt *time.Time     `gorm:"column:internship_published_at" json:"internship_published_at"`
	InternshipCreatedAt   time.Time      `gorm:"column:internship_created_at;autoCreateTime" json:"internship_created_at"`
	InternshipUpdatedAt   time.Time      `gorm:"column:internship_updated_at;autoUpdateTime" json:"internship_updated_at"`
	InternshipDeletedAt   gorm.DeletedAt `gorm:"column:internship_deleted_at;index" json:"-"`
}

func (InternshipModel) TableName() string {
	return "internships"
}

// IsOpenForApplications: only published postings accept new applications.
func (m *InternshipModel) IsOpenForApplications() bool {
	return m.InternshipStatus == InternshipStatusPublished
}
