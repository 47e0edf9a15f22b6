package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newEnrollment() *Enrollment {
	return &Enrollment{
		CompletedLessons: "[]",
		CompletedQuizzes: "[]",
		UnlockedLevels:   "[1]",
	}
}

func TestMarkLessonCompleteProgress(t *testing.T) {
	e := newEnrollment()

	assert.True(t, e.MarkLessonComplete(1, 3))
	assert.Equal(t, 33, e.Progress)

	assert.True(t, e.MarkLessonComplete(2, 3))
	assert.Equal(t, 67, e.Progress)

	assert.True(t, e.MarkLessonComplete(3, 3))
	assert.Equal(t, 100, e.Progress)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	e := newEnrollment()

	assert.True(t, e.MarkLessonComplete(1, 3))
	progress := e.Progress
	lessons := e.CompletedLessons

	assert.False(t, e.MarkLessonComplete(1, 3))
	assert.Equal(t, progress, e.Progress)
	assert.Equal(t, lessons, e.CompletedLessons)
	assert.Len(t, e.LessonsDone(), 1)
}

func TestMarkQuizCompleteKeepsLessonDenominator(t *testing.T) {
	e := newEnrollment()

	// Quiz completion is tracked but does not move the progress percentage.
	assert.True(t, e.MarkQuizComplete(1, 3))
	assert.Equal(t, 0, e.Progress)
	assert.Len(t, e.QuizzesDone(), 1)

	assert.True(t, e.MarkLessonComplete(1, 3))
	assert.Equal(t, 33, e.Progress)
}

func TestIsCourseComplete(t *testing.T) {
	e := newEnrollment()

	assert.False(t, e.IsCourseComplete(3))

	e.MarkLessonComplete(1, 3)
	e.MarkLessonComplete(2, 3)
	assert.False(t, e.IsCourseComplete(3))

	e.MarkLessonComplete(3, 3)
	assert.True(t, e.IsCourseComplete(3))

	// Quizzes alone never complete a course.
	q := newEnrollment()
	q.MarkQuizComplete(1, 3)
	q.MarkQuizComplete(2, 3)
	q.MarkQuizComplete(3, 3)
	assert.False(t, q.IsCourseComplete(3))
}

func TestUnlockLevel(t *testing.T) {
	e := newEnrollment()

	assert.True(t, e.IsLevelUnlocked(1))
	assert.False(t, e.IsLevelUnlocked(2))

	assert.True(t, e.UnlockLevel(2))
	assert.True(t, e.IsLevelUnlocked(2))

	assert.False(t, e.UnlockLevel(2))
}

func TestDecodeLevelSetBadJSON(t *testing.T) {
	e := &Enrollment{CompletedLessons: "not json"}
	assert.Empty(t, e.LessonsDone())
}
