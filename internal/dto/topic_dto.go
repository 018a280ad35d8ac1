package dto

import "github.com/noah-isme/gema-writing-api/internal/models"

// TopicUpsertRequest creates or replaces a topic's vocabulary list.
type TopicUpsertRequest struct {
	Slug   string   `json:"slug" validate:"required,max=128"`
	Title  string   `json:"title" validate:"required,max=255"`
	Prompt string   `json:"prompt" validate:"max=4000"`
	Words  []string `json:"words" validate:"max=200,dive,required,max=64"`
}

// TopicResponse represents a topic to API consumers.
type TopicResponse struct {
	ID     uint     `json:"id"`
	Slug   string   `json:"slug"`
	Title  string   `json:"title"`
	Prompt string   `json:"prompt"`
	Words  []string `json:"words"`
}

// NewTopicResponse converts a Topic model into a DTO.
func NewTopicResponse(topic models.Topic) TopicResponse {
	words := []string(topic.Words)
	if words == nil {
		words = []string{}
	}
	return TopicResponse{
		ID:     topic.ID,
		Slug:   topic.Slug,
		Title:  topic.Title,
		Prompt: topic.Prompt,
		Words:  words,
	}
}

// NewTopicResponseSlice converts a slice of topics.
func NewTopicResponseSlice(topics []models.Topic) []TopicResponse {
	responses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, NewTopicResponse(topic))
	}
	return responses
}
