package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleLearner = "learner"
)

type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"default:learner"` // admin, trainer, learner
	Active       bool   `json:"active" gorm:"default:true"`
}

// NormalizeRole maps legacy role spellings onto the canonical set.
// Unknown values fall back to learner.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "administrator":
		return RoleAdmin
	case "trainer", "instructor", "teacher":
		return RoleTrainer
	default:
		return RoleLearner
	}
}

// IsStaff reports whether the role may manage courses and certificates.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleTrainer
}
