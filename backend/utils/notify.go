package utils

import (
	"log"

	"lms/backend/models"

	"gorm.io/gorm"
)

// Notifications are best-effort: a failed insert is logged and never fails
// the business operation that triggered it.

// NotifyOne records a notice for a single recipient.
func NotifyOne(db *gorm.DB, userID uint, title, message, notifType string) {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("notification for user %d failed: %v", userID, err)
	}
}

// NotifyMany records one notice per recipient.
func NotifyMany(db *gorm.DB, userIDs []uint, title, message, notifType string) {
	if len(userIDs) == 0 {
		return
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
			Type:    notifType,
		})
	}
	if err := db.Create(&notifications).Error; err != nil {
		log.Printf("bulk notification to %d users failed: %v", len(userIDs), err)
	}
}
