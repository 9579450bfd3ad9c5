package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyProfileModel struct {
	CompanyProfileID     uuid.UUID `gorm:"column:company_profile_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"company_profile_id"`
	CompanyProfileUserID uuid.UUID `gorm:"column:company_profile_user_id;type:uuid;uniqueIndex;not null" json:"company_profile_user_id"`

	CompanyProfileName        string  `gorm:"column:company_profile_name;type:varchar(150);not null" json:"company_profile_name"`
	CompanyProfileOrgNumber   *string `gorm:"column:company_profile_org_number;type:varchar(20)" json:"company_profile_org_number"` // CVR / org.nr
	CompanyProfileDescription string  `gorm:"column:company_profile_description;type:text" json:"company_profile_description"`
	CompanyProfileWebsite     *string `gorm:"column:company_profile_website;type:varchar(255)" json:"company_profile_website"`
	CompanyProfileCity        string  `gorm:"column:company_profile_city;type:varchar(100)" json:"company_profile_city"`
	CompanyProfileCountry     string  `gorm:"column:company_profile_country;type:varchar(2);not null;default:'DK'" json:"company_profile_country"`
	CompanyProfileLogoURL     *string `gorm:"column:company_profile_logo_url;type:text" json:"company_profile_logo_url"`
	CompanyProfileContactMail string  `gorm:"column:company_profile_contact_mail;type:varchar(255)" json:"company_profile_contact_mail"`

	CompanyProfileCreatedAt time.Time      `gorm:"column:company_profile_created_at;autoCreateTime" json:"company_profile_created_at"`
	CompanyProfileUpdatedAt time.Time      `gorm:"column:company_profile_updated_at;autoUpdateTime" json:"company_profile_updated_at"`
	CompanyProfileDeletedAt gorm.DeletedAt `gorm:"column:company_profile_deleted_at;index" json:"-"`
}

func (CompanyProfileModel) TableName() string {
	return "company_profiles"
}
