package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikly_backend/internals/features/notifications/model"
	"praktikly_backend/internals/helpers/mailer"
)

// Notifier is the one notify() capability every workflow transition calls.
// Both the feed insert and the email are best-effort: a failed delivery is
// logged and swallowed; the state transition that triggered it is already
// persisted and must never be rolled back or blocked from here.
type Notifier struct {
	DB *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{DB: db}
}

const feedTTL = 90 * 24 * time.Hour

// Notify records an in-app feed entry for the user and, when an email address
// is on file, sends the same content by mail. Fire-and-forget.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, role, title, message, category, link string) {
	expires := time.Now().Add(feedTTL)
	notif := model.NotificationModel{
		NotificationUserID:    userID,
		NotificationUserRole:  role,
		NotificationTitle:     title,
		NotificationMessage:   message,
		NotificationCategory:  category,
		NotificationLink:      link,
		NotificationExpiresAt: &expires,
	}
	if err := n.DB.WithContext(ctx).Create(&notif).Error; err != nil {
		log.Printf("[ERROR] DEPENDENCY_FAILURE notification insert user=%s category=%s: %v", userID, category, err)
	}

	email, err := n.lookupEmail(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] DEPENDENCY_FAILURE email lookup user=%s: %v", userID, err)
		return
	}
	if email == "" {
		return
	}
	mailer.SendBestEffort(ctx, email, title, renderEmailHTML(title, message, link))
}

func (n *Notifier) lookupEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var row struct {
		UserEmail string `gorm:"column:user_email"`
	}
	err := n.DB.WithContext(ctx).Table("users").
		Select("user_email").
		Where("user_id = ? AND user_deleted_at IS NULL", userID).
		Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.UserEmail, nil
}

// PruneExpired hard-deletes feed rows past their expiry. Called from the
// background cleanup loop.
func PruneExpired(db *gorm.DB) (int64, error) {
	res := db.Exec(`DELETE FROM notifications WHERE notification_expires_at IS NOT NULL AND notification_expires_at <= ?`, time.Now().UTC())
	return res.RowsAffected, res.Error
}

func renderEmailHTML(title, message, link string) string {
	body := fmt.Sprintf(`<h2>%s</h2><p>%s</p>`, title, message)
	if link != "" {
		body += fmt.Sprintf(`<p><a href="https://praktikly.dk%s">View on Praktikly</a></p>`, link)
	}
	body += `<p style="color:#888;font-size:12px">Praktikly - internships across Denmark and Sweden</p>`
	return body
}
