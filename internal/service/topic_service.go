package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/dto"
	"github.com/noah-isme/gema-writing-api/internal/models"
	"github.com/noah-isme/gema-writing-api/internal/repository"
)

// ErrTopicNotFound indicates the topic slug is unknown.
var ErrTopicNotFound = errors.New("topic not found")

// TopicService manages the vocabulary topics students write about.
type TopicService interface {
	List(ctx context.Context) ([]dto.TopicResponse, error)
	Get(ctx context.Context, slug string) (dto.TopicResponse, error)
	Upsert(ctx context.Context, payload dto.TopicUpsertRequest) (dto.TopicResponse, error)
}

type topicService struct {
	repo      repository.TopicRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTopicService constructs the topic service.
func NewTopicService(repo repository.TopicRepository, validate *validator.Validate, logger zerolog.Logger) TopicService {
	return &topicService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "topic_service").Logger(),
	}
}

func (s *topicService) List(ctx context.Context) ([]dto.TopicResponse, error) {
	topics, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTopicResponseSlice(topics), nil
}

func (s *topicService) Get(ctx context.Context, slug string) (dto.TopicResponse, error) {
	topic, err := s.repo.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TopicResponse{}, ErrTopicNotFound
		}
		return dto.TopicResponse{}, err
	}
	return dto.NewTopicResponse(topic), nil
}

func (s *topicService) Upsert(ctx context.Context, payload dto.TopicUpsertRequest) (dto.TopicResponse, error) {
	if s.validator != nil {
		if err := s.validator.Struct(payload); err != nil {
			return dto.TopicResponse{}, err
		}
	}

	topic := models.Topic{
		Slug:   normalizeSlug(payload.Slug),
		Title:  strings.TrimSpace(payload.Title),
		Prompt: strings.TrimSpace(payload.Prompt),
		Words:  datatypes.JSONSlice[string](normalizeTopicWords(payload.Words)),
	}

	if err := s.repo.Upsert(ctx, &topic); err != nil {
		return dto.TopicResponse{}, err
	}

	s.logger.Info().Str("slug", topic.Slug).Int("words", len(topic.Words)).Msg("topic saved")

	return dto.NewTopicResponse(topic), nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// normalizeTopicWords trims entries and drops blanks and case-insensitive repeats.
func normalizeTopicWords(words []string) []string {
	trimmed := lo.Map(words, func(word string, _ int) string {
		return strings.TrimSpace(word)
	})
	nonEmpty := lo.Filter(trimmed, func(word string, _ int) bool {
		return word != ""
	})
	return lo.UniqBy(nonEmpty, strings.ToLower)
}
