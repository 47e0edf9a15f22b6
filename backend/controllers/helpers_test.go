package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/routes"
	"lms/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var levelNames = []string{"Beginner", "Intermediate", "Advanced"}

// setupTestApp builds the full app over an in-memory sqlite database. A single
// connection keeps the memory database alive and serializes writers.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.MigrateModels(db))

	cfg := &config.Config{JWTSecret: "test-secret", ServerPort: "8080"}
	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)

	return app, db, cfg
}

// createUser inserts a user directly and returns it with a valid token.
func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, name, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	require.NoError(t, err)

	return user, token
}

// createCourse inserts a course with the given number of ordered levels.
func createCourse(t *testing.T, db *gorm.DB, authorID uint, title string, numLevels int) models.Course {
	t.Helper()

	course := models.Course{Title: title, Description: "test course", AuthorID: authorID}
	for i := 0; i < numLevels; i++ {
		course.Levels = append(course.Levels, models.Level{
			Name:          levelNames[i%len(levelNames)],
			VideoURL:      fmt.Sprintf("https://videos.example.com/%d", i+1),
			SequenceOrder: i + 1,
		})
	}
	require.NoError(t, db.Create(&course).Error)

	return course
}

// addQuestions inserts n MCQ questions for a (course, level); option 0 is the
// correct one.
func addQuestions(t *testing.T, db *gorm.DB, courseID uint, level, n int) []models.QuizQuestion {
	t.Helper()

	questions := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		q := models.QuizQuestion{
			CourseID: courseID,
			Level:    level,
			Question: fmt.Sprintf("Question %d for level %d", i+1, level),
			Type:     models.QuestionTypeMCQ,
			Options: models.EncodeOptions([]models.Option{
				{Text: "right answer", IsCorrect: true},
				{Text: "wrong answer"},
			}),
		}
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}

	return questions
}

// answersFor builds a submit payload answering the given number of questions
// correctly and the rest wrong.
func answersFor(questions []models.QuizQuestion, numCorrect int) map[string]int {
	answers := make(map[string]int, len(questions))
	for i, q := range questions {
		if i < numCorrect {
			answers[fmt.Sprint(q.ID)] = 0
		} else {
			answers[fmt.Sprint(q.ID)] = 1
		}
	}
	return answers
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var result []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
