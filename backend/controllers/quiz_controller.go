package controllers

import (
	"errors"
	"math/rand"
	"strconv"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// maxQuizQuestions caps the random sample served per level.
const maxQuizQuestions = 30

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

// AddQuestion stores a question for a (course, level). Trainer/admin only.
func (qc *QuizController) AddQuestion(c *fiber.Ctx) error {
	var input struct {
		CourseID uint            `json:"course_id"`
		Level    string          `json:"level"`
		Question string          `json:"question"`
		Type     string          `json:"type"`
		Options  []models.Option `json:"options"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	level := models.LevelOrdinal(input.Level)
	if level == 0 {
		return utils.BadRequest(c, "Invalid level")
	}
	if input.Question == "" {
		return utils.BadRequest(c, "Question text is required")
	}
	if len(input.Options) < 2 {
		return utils.BadRequest(c, "At least 2 options are required")
	}
	if input.Type != models.QuestionTypeMCQ && input.Type != models.QuestionTypeTrueFalse {
		return utils.BadRequest(c, "Type must be MCQ or TRUE_FALSE")
	}
	correct := 0
	for _, opt := range input.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return utils.BadRequest(c, "Exactly one option must be marked correct")
	}

	var course models.Course
	if err := qc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	question := models.QuizQuestion{
		CourseID: course.ID,
		Level:    level,
		Question: input.Question,
		Type:     input.Type,
		Options:  models.EncodeOptions(input.Options),
	}

	if err := qc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question added",
		"question": question,
	})
}

// Play serves a random sample of up to 30 questions for a level, with
// correctness projected out. The level must be unlocked on the caller's
// enrollment.
func (qc *QuizController) Play(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	level := models.LevelOrdinal(c.Params("level"))
	if level == 0 {
		return utils.BadRequest(c, "Invalid level")
	}

	var enrollment models.Enrollment
	if err := qc.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !enrollment.IsLevelUnlocked(level) {
		return utils.Forbidden(c, "Level is locked - pass the previous level first")
	}

	var questions []models.QuizQuestion
	if err := qc.DB.Where("course_id = ? AND level = ?", courseID, level).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "No questions for this level")
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > maxQuizQuestions {
		questions = questions[:maxQuizQuestions]
	}

	result := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		options := q.DecodeOptions()
		texts := make([]string, 0, len(options))
		for _, opt := range options {
			texts = append(texts, opt.Text)
		}
		result = append(result, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"type":     q.Type,
			"options":  texts,
		})
	}

	return c.JSON(fiber.Map{
		"course_id": courseID,
		"level":     level,
		"questions": result,
	})
}

// Submit scores an attempt and, on a pass, unlocks the next level. Passing a
// level again is allowed and only re-records the attempt.
func (qc *QuizController) Submit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseID uint         `json:"course_id"`
		Level    string       `json:"level"`
		Answers  map[uint]int `json:"answers"` // question id -> chosen option index
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	level := models.LevelOrdinal(input.Level)
	if level == 0 {
		return utils.BadRequest(c, "Invalid level")
	}

	var enrollment models.Enrollment
	if err := qc.DB.Where("user_id = ? AND course_id = ?", user.ID, input.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !enrollment.IsLevelUnlocked(level) {
		return utils.Forbidden(c, "Level is locked - pass the previous level first")
	}

	var questions []models.QuizQuestion
	if err := qc.DB.Where("course_id = ? AND level = ?", input.CourseID, level).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "No questions for this level")
	}

	score := 0
	for _, q := range questions {
		if chosen, ok := input.Answers[q.ID]; ok && chosen == q.CorrectOption() {
			score++
		}
	}

	settings, err := models.GetOrCreateSettings(qc.DB)
	if err != nil {
		return utils.InternalServerError(c, "Could not load organization settings")
	}

	total := len(questions)
	passed := score >= models.PassingScore(total, settings.PassMark)

	attempt := models.QuizAttempt{
		UserID:         user.ID,
		CourseID:       input.CourseID,
		Level:          level,
		Score:          score,
		TotalQuestions: total,
		Percentage:     float64(score) / float64(total) * 100,
		Answers:        models.EncodeAnswers(input.Answers),
		Passed:         passed,
	}
	if err := qc.DB.Create(&attempt).Error; err != nil {
		return utils.InternalServerError(c, "Could not save attempt")
	}

	if passed {
		changed := enrollment.MarkQuizComplete(level, qc.levelCount(input.CourseID))
		if level < models.MaxLevel {
			changed = enrollment.UnlockLevel(level+1) || changed
		}
		if changed {
			if err := qc.DB.Save(&enrollment).Error; err != nil {
				return utils.InternalServerError(c, "Could not save progress")
			}
		}
	}

	return c.JSON(fiber.Map{
		"message":    "Attempt recorded",
		"attempt_id": attempt.ID,
		"score":      score,
		"total":      total,
		"percentage": attempt.Percentage,
		"passed":     passed,
	})
}

// GetResult returns one of the caller's stored attempts.
func (qc *QuizController) GetResult(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	attemptID, err := strconv.Atoi(c.Params("attemptId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid attempt ID")
	}

	var attempt models.QuizAttempt
	if err := qc.DB.Where("id = ? AND user_id = ?", attemptID, user.ID).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Attempt not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(attempt)
}

// GetReview joins an attempt back to its questions to show chosen versus
// correct answers.
func (qc *QuizController) GetReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	attemptID, err := strconv.Atoi(c.Params("attemptId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid attempt ID")
	}

	var attempt models.QuizAttempt
	if err := qc.DB.Where("id = ? AND user_id = ?", attemptID, user.ID).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Attempt not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var questions []models.QuizQuestion
	if err := qc.DB.Where("course_id = ? AND level = ?", attempt.CourseID, attempt.Level).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	answers := attempt.DecodeAnswers()
	review := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		chosen, answered := answers[q.ID]
		entry := fiber.Map{
			"question":       q.Question,
			"options":        q.DecodeOptions(),
			"correct_option": q.CorrectOption(),
			"answered":       answered,
		}
		if answered {
			entry["chosen_option"] = chosen
			entry["correct"] = chosen == q.CorrectOption()
		}
		review = append(review, entry)
	}

	return c.JSON(fiber.Map{
		"attempt": attempt,
		"review":  review,
	})
}

func (qc *QuizController) levelCount(courseID uint) int {
	var count int64
	qc.DB.Model(&models.Level{}).Where("course_id = ?", courseID).Count(&count)
	return int(count)
}
