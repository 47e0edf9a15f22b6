package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CertificatesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCertificatesController(db *gorm.DB, cfg *config.Config) *CertificatesController {
	return &CertificatesController{DB: db, Cfg: cfg}
}

// errAlreadyIssued marks the at-most-one-per-pair rejection.
var errAlreadyIssued = errors.New("certificate already issued")

// issueCertificate is the single issuance path, shared by the manual endpoint
// and the auto-issue hook. Uniqueness per (learner, course) is enforced by the
// composite unique index; a duplicated-key error from a concurrent issuance
// maps to the same rejection as the pre-check.
func issueCertificate(db *gorm.DB, learner models.User, course models.Course) (*models.Certificate, error) {
	var existing models.Certificate
	err := db.Where("user_id = ? AND course_id = ?", learner.ID, course.ID).First(&existing).Error
	if err == nil {
		return nil, errAlreadyIssued
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	certificate := models.Certificate{
		UserID:        learner.ID,
		CourseID:      course.ID,
		LearnerName:   learner.Name,
		CourseName:    course.Title,
		CertificateID: models.NewCertificateID(now),
		IssueDate:     now,
	}

	if err := db.Create(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errAlreadyIssued
		}
		return nil, err
	}

	return &certificate, nil
}

// autoIssueCertificate runs after a completion event. Failures are logged and
// never propagate: a failed certificate write must not roll back the progress
// update that triggered it.
func autoIssueCertificate(db *gorm.DB, learner models.User, course models.Course) {
	certificate, err := issueCertificate(db, learner, course)
	if err != nil {
		if !errors.Is(err, errAlreadyIssued) {
			log.Printf("auto-issue certificate for user %d course %d failed: %v", learner.ID, course.ID, err)
		}
		return
	}

	utils.NotifyOne(db, learner.ID, "Course completed",
		"Congratulations, you completed "+course.Title+". Certificate "+certificate.CertificateID+" has been issued.",
		models.NotificationCompletion)
}

// Issue is the manual staff-triggered issuance endpoint.
func (cc *CertificatesController) Issue(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		LearnerID uint `json:"learner_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LearnerID == 0 {
		return utils.BadRequest(c, "learner_id is required")
	}

	var learner models.User
	if err := cc.DB.First(&learner, input.LearnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Learner not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	certificate, err := issueCertificate(cc.DB, learner, course)
	if err != nil {
		if errors.Is(err, errAlreadyIssued) {
			return utils.Conflict(c, "Certificate already issued for this learner and course")
		}
		return utils.InternalServerError(c, "Could not issue certificate")
	}

	return c.JSON(fiber.Map{
		"message":     "Certificate issued",
		"certificate": certificate,
	})
}

// GetMyCertificates lists the caller's certificates with organization
// branding applied at read time.
func (cc *CertificatesController) GetMyCertificates(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var certificates []models.Certificate
	if err := cc.DB.Where("user_id = ?", user.ID).Order("issue_date").Find(&certificates).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	settings, err := models.GetOrCreateSettings(cc.DB)
	if err != nil {
		return utils.InternalServerError(c, "Could not load organization settings")
	}

	return c.JSON(brandCertificates(certificates, settings))
}

// ListAll returns every issued certificate. Staff only.
func (cc *CertificatesController) ListAll(c *fiber.Ctx) error {
	var certificates []models.Certificate
	if err := cc.DB.Order("issue_date").Find(&certificates).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	settings, err := models.GetOrCreateSettings(cc.DB)
	if err != nil {
		return utils.InternalServerError(c, "Could not load organization settings")
	}

	return c.JSON(brandCertificates(certificates, settings))
}

// brandCertificates joins branding onto certificates at read time, so a
// rebrand changes how old certificates render.
func brandCertificates(certificates []models.Certificate, settings models.OrganizationSettings) []fiber.Map {
	result := make([]fiber.Map, 0, len(certificates))
	for _, cert := range certificates {
		result = append(result, fiber.Map{
			"id":             cert.ID,
			"certificate_id": cert.CertificateID,
			"learner_name":   cert.LearnerName,
			"course_name":    cert.CourseName,
			"issue_date":     cert.IssueDate,
			"logo_url":       settings.LogoURL,
			"theme_color":    settings.ThemeColor,
		})
	}
	return result
}
