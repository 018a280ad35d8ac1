package models

import (
	"time"

	"gorm.io/datatypes"
)

// Topic groups the vocabulary a learner is expected to use for a writing prompt.
type Topic struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Slug      string                      `gorm:"size:128;uniqueIndex" json:"slug"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Prompt    string                      `gorm:"type:text" json:"prompt"`
	Words     datatypes.JSONSlice[string] `json:"words"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
