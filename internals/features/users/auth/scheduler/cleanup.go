package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	notifService "praktikly_backend/internals/features/notifications/service"
	authRepo "praktikly_backend/internals/features/users/auth/repository"
	invitationService "praktikly_backend/internals/features/workflow/invitations/service"
)

// StartCleanupScheduler runs the periodic housekeeping loop: expired
// blacklist and refresh-token rows, overdue invitation write-backs and
// expired notification feed rows. Interval defaults to 1 hour
// (CLEANUP_INTERVAL_MINUTES overrides).
func StartCleanupScheduler(db *gorm.DB) {
	interval := time.Hour
	if val := os.Getenv("CLEANUP_INTERVAL_MINUTES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			interval = time.Duration(parsed) * time.Minute
		}
	}

	go func() {
		for {
			runCleanup(db)
			time.Sleep(interval)
		}
	}()
}

func runCleanup(db *gorm.DB) {
	if n, err := authRepo.CleanupExpiredBlacklist(db); err != nil {
		log.Printf("[ERROR] cleanup token_blacklist: %v", err)
	} else if n > 0 {
		log.Printf("⏱ cleanup: %d blacklisted tokens removed", n)
	}

	if n, err := authRepo.CleanupExpiredRefreshTokens(db); err != nil {
		log.Printf("[ERROR] cleanup refresh_tokens: %v", err)
	} else if n > 0 {
		log.Printf("⏱ cleanup: %d expired refresh tokens removed", n)
	}

	// corrective write-back for invitations whose expiry passed without a
	// read touching them
	if n, err := invitationService.MarkExpiredBatch(db); err != nil {
		log.Printf("[ERROR] cleanup invitations: %v", err)
	} else if n > 0 {
		log.Printf("⏱ cleanup: %d invitations marked expired", n)
	}

	if n, err := notifService.PruneExpired(db); err != nil {
		log.Printf("[ERROR] cleanup notifications: %v", err)
	} else if n > 0 {
		log.Printf("⏱ cleanup: %d expired notifications pruned", n)
	}
}
