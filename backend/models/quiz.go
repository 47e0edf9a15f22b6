package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ       = "MCQ"
	QuestionTypeTrueFalse = "TRUE_FALSE"

	// MaxLevel is the highest level ordinal (beginner=1, intermediate=2, advanced=3).
	MaxLevel = 3

	// DefaultPassMark is the pass threshold in percent when the organization
	// settings carry none.
	DefaultPassMark = 60
)

type QuizQuestion struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Level    int    `json:"level" gorm:"not null"`
	Question string `json:"question"`
	Type     string `json:"type"` // MCQ, TRUE_FALSE
	Options  string `json:"-"`    // JSON array of Option
}

type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizAttempt is one scored submission. Immutable once written.
type QuizAttempt struct {
	gorm.Model
	UserID         uint    `json:"user_id" gorm:"index;not null"`
	CourseID       uint    `json:"course_id" gorm:"index;not null"`
	Level          int     `json:"level"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Answers        string  `json:"-"` // JSON map question id -> chosen option index
	Passed         bool    `json:"passed"`
}

// DecodeOptions unpacks the JSON options column.
func (q *QuizQuestion) DecodeOptions() []Option {
	var opts []Option
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}

// EncodeOptions packs options into the JSON column.
func EncodeOptions(opts []Option) string {
	data, _ := json.Marshal(opts)
	return string(data)
}

// CorrectOption returns the index of the option marked correct, or -1.
func (q *QuizQuestion) CorrectOption() int {
	for i, opt := range q.DecodeOptions() {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// DecodeAnswers unpacks the stored answer map.
func (a *QuizAttempt) DecodeAnswers() map[uint]int {
	answers := make(map[uint]int)
	json.Unmarshal([]byte(a.Answers), &answers)
	return answers
}

// EncodeAnswers packs an answer map into the JSON column.
func EncodeAnswers(answers map[uint]int) string {
	data, _ := json.Marshal(answers)
	return string(data)
}

// LevelOrdinal maps a level name to its ordinal. Numeric strings within range
// are accepted as-is. Returns 0 for anything unrecognized.
func LevelOrdinal(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beginner":
		return 1
	case "intermediate":
		return 2
	case "advanced":
		return 3
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil && n >= 1 && n <= MaxLevel {
		return n
	}
	return 0
}

// PassingScore returns the minimum score that passes, ceil(total*passMark/100).
// The comparison is inclusive: scoring exactly the threshold passes.
func PassingScore(total, passMark int) int {
	if passMark <= 0 {
		passMark = DefaultPassMark
	}
	return int(math.Ceil(float64(total) * float64(passMark) / 100))
}
