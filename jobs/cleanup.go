// Package jobs runs periodic maintenance against the database.
package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yatube/api-go/models"
	"gorm.io/gorm"
)

// PurgeExpiredRefreshTokens hard deletes refresh tokens that expired before
// now, along with ones already revoked.
func PurgeExpiredRefreshTokens(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Unscoped().
		Where("expiration_date < ? OR deleted_at IS NOT NULL", now).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// Start schedules the maintenance jobs. Stop the returned scheduler on shutdown.
func Start(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		removed, err := PurgeExpiredRefreshTokens(db, time.Now())
		if err != nil {
			log.Printf("Refresh token purge failed: %v", err)
			return
		}
		log.Printf("Refresh token purge removed %d tokens", removed)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
