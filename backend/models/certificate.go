package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is an immutable proof of course completion. Learner name and
// course title are snapshotted at issuance so later edits do not rewrite
// already-issued certificates.
type Certificate struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"uniqueIndex:idx_cert_learner_course;not null"`
	CourseID      uint      `json:"course_id" gorm:"uniqueIndex:idx_cert_learner_course;not null"`
	LearnerName   string    `json:"learner_name"`
	CourseName    string    `json:"course_name"`
	CertificateID string    `json:"certificate_id" gorm:"unique"`
	IssueDate     time.Time `json:"issue_date"`
}

// NewCertificateID builds a time-based certificate number.
func NewCertificateID(issued time.Time) string {
	return fmt.Sprintf("CERT-%s-%s", issued.Format("20060102"), uuid.NewString()[:8])
}
