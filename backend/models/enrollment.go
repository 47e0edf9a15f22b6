package models

import (
	"encoding/json"
	"math"

	"gorm.io/gorm"
)

// Enrollment tracks one learner's participation in one course. The completion
// sets and the unlocked-level set are stored as JSON arrays of level ordinals.
type Enrollment struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"uniqueIndex:idx_learner_course;not null"`
	CourseID         uint   `json:"course_id" gorm:"uniqueIndex:idx_learner_course;not null"`
	CompletedLessons string `json:"completed_lessons" gorm:"default:'[]'"`
	CompletedQuizzes string `json:"completed_quizzes" gorm:"default:'[]'"`
	UnlockedLevels   string `json:"unlocked_levels" gorm:"default:'[1]'"`
	Progress         int    `json:"progress"` // percentage, lesson-count denominator
}

func decodeLevelSet(raw string) []int {
	var levels []int
	if err := json.Unmarshal([]byte(raw), &levels); err != nil {
		return []int{}
	}
	return levels
}

func encodeLevelSet(levels []int) string {
	data, _ := json.Marshal(levels)
	return string(data)
}

func containsLevel(levels []int, level int) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

func appendLevel(raw string, level int) (string, bool) {
	levels := decodeLevelSet(raw)
	if containsLevel(levels, level) {
		return raw, false
	}
	return encodeLevelSet(append(levels, level)), true
}

// LessonsDone returns the ordinals of levels whose lesson is completed.
func (e *Enrollment) LessonsDone() []int {
	return decodeLevelSet(e.CompletedLessons)
}

// QuizzesDone returns the ordinals of levels whose quiz is completed.
func (e *Enrollment) QuizzesDone() []int {
	return decodeLevelSet(e.CompletedQuizzes)
}

// Unlocked returns the ordinals of unlocked levels.
func (e *Enrollment) Unlocked() []int {
	return decodeLevelSet(e.UnlockedLevels)
}

// IsLevelUnlocked reports whether the learner may access the given level.
func (e *Enrollment) IsLevelUnlocked(level int) bool {
	return containsLevel(decodeLevelSet(e.UnlockedLevels), level)
}

// MarkLessonComplete adds a level to the completed-lessons set and recomputes
// progress. Re-adding a present level is a no-op; the return value reports
// whether anything changed.
func (e *Enrollment) MarkLessonComplete(level, totalLevels int) bool {
	updated, changed := appendLevel(e.CompletedLessons, level)
	if changed {
		e.CompletedLessons = updated
		e.Progress = progressPercent(len(e.LessonsDone()), totalLevels)
	}
	return changed
}

// MarkQuizComplete adds a level to the completed-quizzes set. Progress keeps
// the lesson-count denominator, which is the authoritative metric.
func (e *Enrollment) MarkQuizComplete(level, totalLevels int) bool {
	updated, changed := appendLevel(e.CompletedQuizzes, level)
	if changed {
		e.CompletedQuizzes = updated
		e.Progress = progressPercent(len(e.LessonsDone()), totalLevels)
	}
	return changed
}

// UnlockLevel adds a level to the unlocked set, idempotently.
func (e *Enrollment) UnlockLevel(level int) bool {
	updated, changed := appendLevel(e.UnlockedLevels, level)
	if changed {
		e.UnlockedLevels = updated
	}
	return changed
}

// IsCourseComplete reports whether every level's lesson is done. Quiz
// completion gates unlocking, not completion.
func (e *Enrollment) IsCourseComplete(totalLevels int) bool {
	return totalLevels > 0 && len(e.LessonsDone()) == totalLevels
}

func progressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
