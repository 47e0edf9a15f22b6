package controllers

import (
	"errors"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentController(db *gorm.DB, cfg *config.Config) *EnrollmentController {
	return &EnrollmentController{DB: db, Cfg: cfg}
}

// Enroll creates an enrollment for a learner. Learners enroll themselves;
// admins and trainers may pass learner_id to assign someone else.
func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseID  uint `json:"course_id"`
		LearnerID uint `json:"learner_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	learnerID := user.ID
	if input.LearnerID != 0 && input.LearnerID != user.ID {
		if !models.IsStaff(models.NormalizeRole(user.Role)) {
			return utils.Forbidden(c, "Only staff may enroll other users")
		}
		var learner models.User
		if err := ec.DB.First(&learner, input.LearnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Learner not found")
			}
			return utils.InternalServerError(c, "Could not query database")
		}
		learnerID = learner.ID
	}

	var course models.Course
	if err := ec.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	enrollment := models.Enrollment{
		UserID:           learnerID,
		CourseID:         course.ID,
		CompletedLessons: "[]",
		CompletedQuizzes: "[]",
		UnlockedLevels:   "[1]",
		Progress:         0,
	}

	// The composite unique index on (user_id, course_id) turns a concurrent
	// double-enroll into a duplicated-key error rather than two rows.
	if err := ec.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Already enrolled in this course")
		}
		return utils.InternalServerError(c, "Could not create enrollment")
	}

	utils.NotifyOne(ec.DB, learnerID, "Enrollment confirmed",
		"You are enrolled in "+course.Title, models.NotificationEnrollment)

	return c.JSON(fiber.Map{
		"message":    "Enrolled",
		"enrollment": enrollment,
	})
}

// GetMyCourses lists the caller's enrollments with course metadata.
func (ec *EnrollmentController) GetMyCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var enrollments []models.Enrollment
	if err := ec.DB.Where("user_id = ?", user.ID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course models.Course
		if err := ec.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order")
		}).First(&course, enrollment.CourseID).Error; err != nil {
			continue
		}

		result = append(result, fiber.Map{
			"enrollment_id":     enrollment.ID,
			"course_id":         course.ID,
			"title":             course.Title,
			"levels":            len(course.Levels),
			"progress":          enrollment.Progress,
			"completed_lessons": enrollment.LessonsDone(),
			"completed_quizzes": enrollment.QuizzesDone(),
			"unlocked_levels":   enrollment.Unlocked(),
		})
	}

	return c.JSON(result)
}

// UpdateProgress marks a level's lesson as completed. Idempotent: re-marking
// a done level changes nothing. May auto-issue a certificate when the last
// lesson completes.
func (ec *EnrollmentController) UpdateProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseID uint `json:"course_id"`
		Level    int  `json:"level"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var enrollment models.Enrollment
	if err := ec.DB.Where("user_id = ? AND course_id = ?", user.ID, input.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var course models.Course
	if err := ec.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Level < 1 || input.Level > len(course.Levels) {
		return utils.BadRequest(c, "Invalid level")
	}

	if enrollment.MarkLessonComplete(input.Level, len(course.Levels)) {
		if err := ec.DB.Save(&enrollment).Error; err != nil {
			return utils.InternalServerError(c, "Could not save progress")
		}
	}

	if enrollment.IsCourseComplete(len(course.Levels)) {
		autoIssueCertificate(ec.DB, user, course)
	}

	return c.JSON(fiber.Map{
		"message":  "Progress updated",
		"progress": enrollment.Progress,
	})
}

// CompleteQuiz marks a level's quiz as completed on the enrollment record.
// The authoritative progress metric keeps the lesson-count denominator.
func (ec *EnrollmentController) CompleteQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseID uint `json:"course_id"`
		Level    int  `json:"level"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var enrollment models.Enrollment
	if err := ec.DB.Where("user_id = ? AND course_id = ?", user.ID, input.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var course models.Course
	if err := ec.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Level < 1 || input.Level > len(course.Levels) {
		return utils.BadRequest(c, "Invalid level")
	}

	if enrollment.MarkQuizComplete(input.Level, len(course.Levels)) {
		if err := ec.DB.Save(&enrollment).Error; err != nil {
			return utils.InternalServerError(c, "Could not save progress")
		}
	}

	if enrollment.IsCourseComplete(len(course.Levels)) {
		autoIssueCertificate(ec.DB, user, course)
	}

	return c.JSON(fiber.Map{
		"message":  "Quiz completion recorded",
		"progress": enrollment.Progress,
	})
}
