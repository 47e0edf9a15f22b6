package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AuthorID    uint    `json:"author_id"`
	Levels      []Level `json:"levels"`
}

type Level struct {
	gorm.Model
	CourseID      uint   `json:"course_id"`
	Name          string `json:"name"` // beginner, intermediate, advanced
	VideoURL      string `json:"video_url"`
	SequenceOrder int    `json:"sequence_order"`
}
