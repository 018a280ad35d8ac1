package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/dto"
	"github.com/noah-isme/gema-writing-api/internal/evaluator"
	"github.com/noah-isme/gema-writing-api/internal/events"
	"github.com/noah-isme/gema-writing-api/internal/models"
	"github.com/noah-isme/gema-writing-api/internal/observability"
	"github.com/noah-isme/gema-writing-api/internal/repository"
)

const serviceEssay = "Innovation is transforming how we learn today. Our culture has changed a great deal. We use the innovation every day."

type stubEvaluationPublisher struct {
	mu     sync.Mutex
	events []events.EvaluationCompleted
	err    error
}

func (s *stubEvaluationPublisher) PublishEvaluationCompleted(_ context.Context, event events.EvaluationCompleted) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

type evaluationFixture struct {
	db        *gorm.DB
	service   EvaluationService
	publisher *stubEvaluationPublisher
	redis     *miniredis.Miniredis
}

func setupEvaluationService(t *testing.T, cfg EvaluationConfig) evaluationFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Topic{}, &models.Evaluation{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	publisher := &stubEvaluationPublisher{}

	svc := NewEvaluationService(
		repository.NewEvaluationRepository(db),
		repository.NewTopicRepository(db),
		evaluator.New(),
		client,
		publisher,
		validator.New(),
		zerolog.Nop(),
		cfg,
	)

	return evaluationFixture{db: db, service: svc, publisher: publisher, redis: mr}
}

func seedTopic(t *testing.T, db *gorm.DB, slug string, words ...string) {
	t.Helper()
	topic := models.Topic{Slug: slug, Title: slug, Words: words}
	require.NoError(t, db.Create(&topic).Error)
}

func TestEvaluationServiceEvaluateStoresAndPublishes(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{CacheTTL: time.Minute, StripMarkup: true})
	seedTopic(t, fx.db, "technology", "innovation", "culture")

	resp, err := fx.service.Evaluate(context.Background(), 7, dto.EvaluationRequest{Text: serviceEssay, TopicSlug: "Technology"})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, uint(7), resp.StudentID)
	require.Equal(t, "technology", resp.TopicSlug)
	require.Equal(t, []string{"innovation", "culture"}, resp.RequiredWords)

	expected := evaluator.Evaluate(serviceEssay, []string{"innovation", "culture"})
	require.Equal(t, expected.Total, resp.Report.Total)
	require.Equal(t, expected.Vocabulary.Score, resp.Report.Vocabulary.Score)

	var stored models.Evaluation
	require.NoError(t, fx.db.First(&stored, resp.ID).Error)
	require.Equal(t, expected.Total, stored.TotalScore)
	require.Equal(t, string(expected.Tier), stored.Tier)
	require.Len(t, stored.Digest, 64)

	require.Len(t, fx.publisher.events, 1)
	event := fx.publisher.events[0]
	require.Equal(t, resp.ID, event.EvaluationID)
	require.Equal(t, uint(7), event.StudentID)
	require.Equal(t, expected.Total, event.Total)
	require.NotEmpty(t, event.ID)
}

func TestEvaluationServiceRequestWordsOverrideTopic(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})
	seedTopic(t, fx.db, "technology", "innovation", "culture")

	resp, err := fx.service.Preview(context.Background(), dto.EvaluationRequest{
		Text:          serviceEssay,
		TopicSlug:     "technology",
		RequiredWords: []string{" science "},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"science"}, resp.RequiredWords)
	require.Equal(t, 0, resp.Report.Vocabulary.Score)
}

func TestEvaluationServiceWithoutWordsScoresEmptyList(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	resp, err := fx.service.Preview(context.Background(), dto.EvaluationRequest{Text: serviceEssay})
	require.NoError(t, err)
	require.Empty(t, resp.RequiredWords)
	require.Equal(t, 0, resp.Report.Vocabulary.Score)
	require.Empty(t, resp.Report.Vocabulary.Feedback)
}

func TestEvaluationServiceUnknownTopic(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	_, err := fx.service.Evaluate(context.Background(), 1, dto.EvaluationRequest{Text: serviceEssay, TopicSlug: "missing"})
	require.True(t, errors.Is(err, ErrTopicNotFound))

	var count int64
	require.NoError(t, fx.db.Model(&models.Evaluation{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEvaluationServiceRejectsTooManyWords(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{MaxRequiredWords: 2})

	_, err := fx.service.Preview(context.Background(), dto.EvaluationRequest{
		Text:          serviceEssay,
		RequiredWords: []string{"innovation", "culture", "science"},
	})
	require.True(t, errors.Is(err, ErrTooManyWords))
}

func TestEvaluationServiceValidatesPayload(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	_, err := fx.service.Preview(context.Background(), dto.EvaluationRequest{Text: serviceEssay, RequiredWords: []string{""}})
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
}

func TestEvaluationServicePreviewUsesCache(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{CacheTTL: time.Minute})
	payload := dto.EvaluationRequest{Text: serviceEssay, RequiredWords: []string{"innovation"}}

	first, err := fx.service.Preview(context.Background(), payload)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Len(t, fx.redis.Keys(), 1)

	second, err := fx.service.Preview(context.Background(), payload)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Report, second.Report)

	var count int64
	require.NoError(t, fx.db.Model(&models.Evaluation{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEvaluationServiceStripsMarkup(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{StripMarkup: true})

	resp, err := fx.service.Evaluate(context.Background(), 3, dto.EvaluationRequest{
		Text:          "<p>We <b>use</b> the innovation daily.</p><script>alert(1)</script> It's <i>fine</i>.",
		RequiredWords: []string{"innovation"},
	})
	require.NoError(t, err)
	require.Equal(t, "We use the innovation daily. It's fine.", resp.Text)
	require.Equal(t, evaluator.UsageStrong, resp.Report.Words[0].Usage)
}

func TestEvaluationServiceStripMarkupKeepsPlainComparisons(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{StripMarkup: true})

	for _, text := range []string{
		"If a<b then b>a. Math is fun.",
		"Use the <tag> element in HTML.",
		"Scores < 50 need work & practice.",
	} {
		resp, err := fx.service.Evaluate(context.Background(), 3, dto.EvaluationRequest{Text: text})
		require.NoError(t, err)
		require.Equal(t, text, resp.Text)
	}

	resp, err := fx.service.Evaluate(context.Background(), 3, dto.EvaluationRequest{Text: "<b>Bold</b> move."})
	require.NoError(t, err)
	require.Equal(t, "Bold move.", resp.Text)
}

func TestEvaluationServiceKeepsMarkupWhenDisabled(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	resp, err := fx.service.Evaluate(context.Background(), 3, dto.EvaluationRequest{Text: "<b>Bold</b> move."})
	require.NoError(t, err)
	require.Equal(t, "<b>Bold</b> move.", resp.Text)
}

func TestEvaluationServicePublishFailureDoesNotFail(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})
	fx.publisher.err = errors.New("nats down")

	resp, err := fx.service.Evaluate(context.Background(), 4, dto.EvaluationRequest{Text: serviceEssay})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
}

func TestEvaluationServiceGetEnforcesOwnership(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	created, err := fx.service.Evaluate(context.Background(), 10, dto.EvaluationRequest{Text: serviceEssay})
	require.NoError(t, err)

	owned, err := fx.service.Get(context.Background(), created.ID, 10, "student")
	require.NoError(t, err)
	require.Equal(t, created.ID, owned.ID)

	_, err = fx.service.Get(context.Background(), created.ID, 11, "student")
	require.True(t, errors.Is(err, ErrForbidden))

	reviewed, err := fx.service.Get(context.Background(), created.ID, 99, "teacher")
	require.NoError(t, err)
	require.Equal(t, created.Report.Total, reviewed.Report.Total)

	_, err = fx.service.Get(context.Background(), created.ID+100, 10, "student")
	require.True(t, errors.Is(err, ErrEvaluationNotFound))
}

func TestEvaluationServiceListPaginatesHistory(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{})

	for i := 0; i < 3; i++ {
		_, err := fx.service.Evaluate(context.Background(), 5, dto.EvaluationRequest{Text: serviceEssay})
		require.NoError(t, err)
	}
	_, err := fx.service.Evaluate(context.Background(), 6, dto.EvaluationRequest{Text: serviceEssay})
	require.NoError(t, err)

	page, err := fx.service.List(context.Background(), 5, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(3), page.Pagination.TotalItems)
	require.Equal(t, 2, page.Pagination.TotalPages)

	defaults, err := fx.service.List(context.Background(), 5, 0, 0)
	require.NoError(t, err)
	require.Len(t, defaults.Items, 3)
	require.Equal(t, 1, defaults.Pagination.Page)
	require.Equal(t, defaultHistoryPageSize, defaults.Pagination.PageSize)
}

func TestEvaluationServiceRecordsTierMetricsOnCacheHit(t *testing.T) {
	fx := setupEvaluationService(t, EvaluationConfig{CacheTTL: time.Minute})
	payload := dto.EvaluationRequest{Text: serviceEssay, RequiredWords: []string{"innovation"}}

	tier := string(evaluator.Evaluate(serviceEssay, payload.RequiredWords).Tier)
	before := testutil.ToFloat64(observability.Evaluations().WithLabelValues(tier))
	hitsBefore := testutil.ToFloat64(observability.EvaluationCache().WithLabelValues("hit"))

	first, err := fx.service.Evaluate(context.Background(), 8, payload)
	require.NoError(t, err)

	second, err := fx.service.Evaluate(context.Background(), 8, payload)
	require.NoError(t, err)
	require.Equal(t, first.Report, second.Report)

	require.Equal(t, before+2, testutil.ToFloat64(observability.Evaluations().WithLabelValues(tier)))
	require.Equal(t, hitsBefore+1, testutil.ToFloat64(observability.EvaluationCache().WithLabelValues("hit")))
}
