package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
)

// Evaluation stores one scored learner submission.
type Evaluation struct {
	ID              uint                                 `gorm:"primaryKey" json:"id"`
	StudentID       uint                                 `gorm:"index;not null" json:"student_id"`
	TopicSlug       string                               `gorm:"size:128;index" json:"topic_slug"`
	Text            string                               `gorm:"type:text" json:"text"`
	RequiredWords   datatypes.JSONSlice[string]          `json:"required_words"`
	ClarityScore    int                                  `gorm:"not null" json:"clarity_score"`
	GrammarScore    int                                  `gorm:"not null" json:"grammar_score"`
	VocabularyScore int                                  `gorm:"not null" json:"vocabulary_score"`
	TotalScore      int                                  `gorm:"index;not null" json:"total_score"`
	Tier            string                               `gorm:"size:32;not null" json:"tier"`
	Digest          string                               `gorm:"size:64;index" json:"digest"`
	Report          datatypes.JSONType[evaluator.Report] `json:"report"`
	CreatedAt       time.Time                            `json:"created_at"`
}

// NewEvaluation builds a record from an engine report.
func NewEvaluation(studentID uint, topicSlug, text string, words []string, digest string, report evaluator.Report) Evaluation {
	return Evaluation{
		StudentID:       studentID,
		TopicSlug:       topicSlug,
		Text:            text,
		RequiredWords:   datatypes.JSONSlice[string](words),
		ClarityScore:    report.Clarity.Score,
		GrammarScore:    report.Grammar.Score,
		VocabularyScore: report.Vocabulary.Score,
		TotalScore:      report.Total,
		Tier:            string(report.Tier),
		Digest:          digest,
		Report:          datatypes.NewJSONType(report),
	}
}
