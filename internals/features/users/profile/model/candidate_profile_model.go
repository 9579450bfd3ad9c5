package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CandidateProfileModel struct {
	CandidateProfileID     uuid.UUID `gorm:"column:candidate_profile_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"candidate_profile_id"`
	CandidateProfileUserID uuid.UUID `gorm:"column:candidate_profile_user_id;type:uuid;uniqueIndex;not null" json:"candidate_profile_user_id"`

	CandidateProfileHeadline  string         `gorm:"column:candidate_profile_headline;type:varchar(150)" json:"candidate_profile_headline"`
	CandidateProfileBio       string         `gorm:"column:candidate_profile_bio;type:text" json:"candidate_profile_bio"`
	CandidateProfileSchool    string         `gorm:"column:candidate_profile_school;type:varchar(150)" json:"candidate_profile_school"`
	CandidateProfileStudyLine string         `gorm:"column:candidate_profile_study_line;type:varchar(150)" json:"candidate_profile_study_line"`
	CandidateProfileSkills    pq.StringArray `gorm:"column:candidate_profile_skills;type:text[]" json:"candidate_profile_skills"`
	CandidateProfileLanguages pq.StringArray `gorm:"column:candidate_profile_languages;type:text[]" json:"candidate_profile_languages"`
	CandidateProfileCity      string         `gorm:"column:candidate_profile_city;type:varchar(100)" json:"candidate_profile_city"`
	CandidateProfileCVURL     *string        `gorm:"column:candidate_profile_cv_url;type:text" json:"candidate_profile_cv_url"`
	CandidateProfilePhotoURL  *string        `gorm:"column:candidate_profile_photo_url;type:text" json:"candidate_profile_photo_url"`

	CandidateProfileCreatedAt time.Time      `gorm:"column:candidate_profile_created_at;autoCreateTime" json:"candidate_profile_created_at"`
	CandidateProfileUpdatedAt time.Time      `gorm:"column:candidate_profile_updated_at;autoUpdateTime" json:"candidate_profile_updated_at"`
	CandidateProfileDeletedAt gorm.DeletedAt `gorm:"column:candidate_profile_deleted_at;index" json:"-"`
}

func (CandidateProfileModel) TableName() string {
	return "candidate_profiles"
}
