package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification categories
const (
	CategoryApplication = "application"
	CategoryInvitation  = "invitation"
	CategoryInterview   = "interview"
	CategoryOnboarding  = "onboarding"
	CategorySystem      = "system"
)

type NotificationModel struct {
	NotificationID       uuid.UUID `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID   uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationUserRole string    `gorm:"column:notification_user_role;type:varchar(20);not null" json:"notification_user_role"`

	NotificationTitle    string `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage  string `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationCategory string `gorm:"column:notification_category;type:varchar(20);not null;index" json:"notification_category"`
	NotificationLink     string `gorm:"column:notification_link;type:varchar(255)" json:"notification_link"`

	NotificationIsRead bool       `gorm:"column:notification_is_read;not null;default:false;index" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at" json:"notification_read_at"`

	NotificationExpiresAt *time.Time `gorm:"column:notification_expires_at;index" json:"notification_expires_at"`

	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time      `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
	NotificationDeletedAt gorm.DeletedAt `gorm:"column:notification_deleted_at;index" json:"-"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
