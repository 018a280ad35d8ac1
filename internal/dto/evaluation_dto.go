package dto

import (
	"time"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
	"github.com/noah-isme/gema-writing-api/internal/models"
)

// EvaluationRequest is the payload for scoring a written response.
// RequiredWords takes precedence over the topic vocabulary when both are given.
type EvaluationRequest struct {
	Text          string   `json:"text" validate:"max=20000"`
	TopicSlug     string   `json:"topic_slug" validate:"omitempty,max=128"`
	RequiredWords []string `json:"required_words" validate:"omitempty,dive,required,max=64"`
}

// ReportResponse wraps an engine report with request context.
type ReportResponse struct {
	TopicSlug     string           `json:"topic_slug,omitempty"`
	RequiredWords []string         `json:"required_words"`
	Report        evaluator.Report `json:"report"`
	CacheHit      bool             `json:"cache_hit"`
}

// EvaluationResponse represents a persisted evaluation.
type EvaluationResponse struct {
	ID            uint             `json:"id"`
	StudentID     uint             `json:"student_id"`
	TopicSlug     string           `json:"topic_slug,omitempty"`
	Text          string           `json:"text"`
	RequiredWords []string         `json:"required_words"`
	Report        evaluator.Report `json:"report"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EvaluationSummary is the compact form used in history listings.
type EvaluationSummary struct {
	ID              uint      `json:"id"`
	TopicSlug       string    `json:"topic_slug,omitempty"`
	ClarityScore    int       `json:"clarity_score"`
	GrammarScore    int       `json:"grammar_score"`
	VocabularyScore int       `json:"vocabulary_score"`
	TotalScore      int       `json:"total_score"`
	Tier            string    `json:"tier"`
	CreatedAt       time.Time `json:"created_at"`
}

// EvaluationListResponse is a page of evaluation history.
type EvaluationListResponse struct {
	Items      []EvaluationSummary `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(evaluation models.Evaluation) EvaluationResponse {
	words := []string(evaluation.RequiredWords)
	if words == nil {
		words = []string{}
	}
	return EvaluationResponse{
		ID:            evaluation.ID,
		StudentID:     evaluation.StudentID,
		TopicSlug:     evaluation.TopicSlug,
		Text:          evaluation.Text,
		RequiredWords: words,
		Report:        evaluation.Report.Data(),
		CreatedAt:     evaluation.CreatedAt,
	}
}

// NewEvaluationSummary converts an Evaluation model into its list form.
func NewEvaluationSummary(evaluation models.Evaluation) EvaluationSummary {
	return EvaluationSummary{
		ID:              evaluation.ID,
		TopicSlug:       evaluation.TopicSlug,
		ClarityScore:    evaluation.ClarityScore,
		GrammarScore:    evaluation.GrammarScore,
		VocabularyScore: evaluation.VocabularyScore,
		TotalScore:      evaluation.TotalScore,
		Tier:            evaluation.Tier,
		CreatedAt:       evaluation.CreatedAt,
	}
}
