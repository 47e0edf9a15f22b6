package controllers

import (
	"errors"
	"strconv"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// GetPublicCourses lists the catalog without authentication.
func (cc *CoursesController) GetPublicCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"levels":      len(course.Levels),
		})
	}

	return c.JSON(result)
}

func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(courses)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Levels", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(course)
}

// CreateCourse creates a course with its levels and fans out a "new course"
// notification to every active learner, best-effort.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type LevelInput struct {
		Name     string `json:"name"`
		VideoURL string `json:"video_url"`
	}
	type CourseInput struct {
		Title       string       `json:"title"`
		Description string       `json:"description"`
		Levels      []LevelInput `json:"levels"`
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    user.ID,
	}
	for i, level := range input.Levels {
		course.Levels = append(course.Levels, models.Level{
			Name:          level.Name,
			VideoURL:      level.VideoURL,
			SequenceOrder: i + 1,
		})
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	var learnerIDs []uint
	cc.DB.Model(&models.User{}).
		Where("role = ? AND active = ?", models.RoleLearner, true).
		Pluck("id", &learnerIDs)
	utils.NotifyMany(cc.DB, learnerIDs, "New course available",
		"A new course has been published: "+course.Title, models.NotificationCourse)

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

// DeleteCourse removes a course. Enrollments and questions referencing it are
// left in place; see the orphan-risk note in the data model.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}

// AddLevel appends a level at the end of the course's level order.
func (cc *CoursesController) AddLevel(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Name     string `json:"name"`
		VideoURL string `json:"video_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Level name is required")
	}

	var course models.Course
	if err := cc.DB.Preload("Levels").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	level := models.Level{
		CourseID:      course.ID,
		Name:          input.Name,
		VideoURL:      input.VideoURL,
		SequenceOrder: len(course.Levels) + 1,
	}

	if err := cc.DB.Create(&level).Error; err != nil {
		return utils.InternalServerError(c, "Could not add level")
	}

	return c.JSON(fiber.Map{
		"message": "Level added",
		"level":   level,
	})
}
