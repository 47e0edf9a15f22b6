package models

import "gorm.io/gorm"

const (
	NotificationCourse     = "course"
	NotificationEnrollment = "enrollment"
	NotificationCompletion = "completion"
)

type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
