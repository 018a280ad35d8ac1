package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/dto"
	"github.com/noah-isme/gema-writing-api/internal/evaluator"
	"github.com/noah-isme/gema-writing-api/internal/events"
	"github.com/noah-isme/gema-writing-api/internal/models"
	"github.com/noah-isme/gema-writing-api/internal/observability"
	"github.com/noah-isme/gema-writing-api/internal/repository"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
	reportCachePrefix      = "writing:report:"
)

var markupPattern = regexp.MustCompile(`(?i)</[a-z][a-z0-9]*\s*>|<(?:br|hr|img)\b[^<>]*>`)

// ErrEvaluationNotFound indicates the evaluation cannot be located.
var ErrEvaluationNotFound = errors.New("evaluation not found")

// ErrForbidden indicates the caller may not view the evaluation.
var ErrForbidden = errors.New("forbidden")

// ErrTooManyWords indicates the required word list exceeds the configured limit.
var ErrTooManyWords = errors.New("too many required words")

// EvaluationService scores written responses and keeps their history.
type EvaluationService interface {
	Evaluate(ctx context.Context, studentID uint, payload dto.EvaluationRequest) (dto.EvaluationResponse, error)
	Preview(ctx context.Context, payload dto.EvaluationRequest) (dto.ReportResponse, error)
	Get(ctx context.Context, id uint, viewerID uint, role string) (dto.EvaluationResponse, error)
	List(ctx context.Context, studentID uint, page, pageSize int) (dto.EvaluationListResponse, error)
}

// EvaluationConfig describes evaluation knobs.
type EvaluationConfig struct {
	CacheTTL         time.Duration
	StripMarkup      bool
	MaxRequiredWords int
}

type scoredInput struct {
	text      string
	topicSlug string
	words     []string
	digest    string
	report    evaluator.Report
	cacheHit  bool
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	topics      repository.TopicRepository
	engine      *evaluator.Evaluator
	cache       *redis.Client
	publisher   events.Publisher
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	tracer      trace.Tracer
	logger      zerolog.Logger
	config      EvaluationConfig
	now         func() time.Time
}

// NewEvaluationService constructs the evaluation service. cache and publisher may be nil.
func NewEvaluationService(evaluations repository.EvaluationRepository, topics repository.TopicRepository, engine *evaluator.Evaluator, cache *redis.Client, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger, cfg EvaluationConfig) EvaluationService {
	if engine == nil {
		engine = evaluator.New()
	}
	if cfg.MaxRequiredWords <= 0 {
		cfg.MaxRequiredWords = 50
	}

	return &evaluationService{
		evaluations: evaluations,
		topics:      topics,
		engine:      engine,
		cache:       cache,
		publisher:   publisher,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		tracer:      otel.Tracer("github.com/noah-isme/gema-writing-api/internal/service/evaluation"),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		config:      cfg,
		now:         time.Now,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, studentID uint, payload dto.EvaluationRequest) (dto.EvaluationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate", trace.WithAttributes(
		attribute.Int64("evaluation.student_id", int64(studentID)),
		attribute.String("evaluation.topic", payload.TopicSlug),
	))
	defer span.End()

	scored, err := s.score(ctx, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring_failed")
		return dto.EvaluationResponse{}, err
	}

	record := models.NewEvaluation(studentID, scored.topicSlug, scored.text, scored.words, scored.digest, scored.report)
	if err := s.evaluations.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation_persist_failed")
		return dto.EvaluationResponse{}, fmt.Errorf("store evaluation: %w", err)
	}

	if s.publisher != nil {
		event := events.EvaluationCompleted{
			ID:           uuid.NewString(),
			EvaluationID: record.ID,
			StudentID:    studentID,
			TopicSlug:    scored.topicSlug,
			Total:        scored.report.Total,
			Tier:         string(scored.report.Tier),
			OccurredAt:   s.now().UTC(),
		}
		if err := s.publisher.PublishEvaluationCompleted(ctx, event); err != nil {
			s.logger.Warn().Err(err).Uint("evaluation_id", record.ID).Msg("failed to publish evaluation event")
		}
	}

	recordReportMetrics(scored.report)

	span.SetAttributes(
		attribute.Int("evaluation.total", scored.report.Total),
		attribute.String("evaluation.tier", string(scored.report.Tier)),
		attribute.Bool("evaluation.cache_hit", scored.cacheHit),
	)

	s.logger.Info().
		Uint("evaluation_id", record.ID).
		Uint("student_id", studentID).
		Int("total", scored.report.Total).
		Str("tier", string(scored.report.Tier)).
		Msg("evaluation stored")

	return dto.NewEvaluationResponse(record), nil
}

func (s *evaluationService) Preview(ctx context.Context, payload dto.EvaluationRequest) (dto.ReportResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.preview")
	defer span.End()

	scored, err := s.score(ctx, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring_failed")
		return dto.ReportResponse{}, err
	}

	return dto.ReportResponse{
		TopicSlug:     scored.topicSlug,
		RequiredWords: scored.words,
		Report:        scored.report,
		CacheHit:      scored.cacheHit,
	}, nil
}

func (s *evaluationService) Get(ctx context.Context, id uint, viewerID uint, role string) (dto.EvaluationResponse, error) {
	evaluation, err := s.evaluations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	if !canViewEvaluation(viewerID, role, evaluation) {
		return dto.EvaluationResponse{}, ErrForbidden
	}

	return dto.NewEvaluationResponse(evaluation), nil
}

func (s *evaluationService) List(ctx context.Context, studentID uint, page, pageSize int) (dto.EvaluationListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	items, total, err := s.evaluations.List(ctx, repository.EvaluationFilter{
		StudentID: studentID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return dto.EvaluationListResponse{}, err
	}

	summaries := make([]dto.EvaluationSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, dto.NewEvaluationSummary(item))
	}

	return dto.EvaluationListResponse{
		Items:      summaries,
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *evaluationService) score(ctx context.Context, payload dto.EvaluationRequest) (scoredInput, error) {
	if s.validator != nil {
		if err := s.validator.Struct(payload); err != nil {
			return scoredInput{}, err
		}
	}

	topicSlug := strings.ToLower(strings.TrimSpace(payload.TopicSlug))
	words, err := s.resolveWords(ctx, topicSlug, payload.RequiredWords)
	if err != nil {
		return scoredInput{}, err
	}

	text := s.cleanText(payload.Text)
	digest := s.digest(text, words)

	if report, ok := s.cachedReport(ctx, digest); ok {
		return scoredInput{text: text, topicSlug: topicSlug, words: words, digest: digest, report: report, cacheHit: true}, nil
	}

	report := s.engine.Evaluate(text, words)
	s.storeReport(ctx, digest, report)

	return scoredInput{text: text, topicSlug: topicSlug, words: words, digest: digest, report: report}, nil
}

func (s *evaluationService) resolveWords(ctx context.Context, topicSlug string, requested []string) ([]string, error) {
	var words []string
	if topicSlug != "" {
		topic, err := s.topics.GetBySlug(ctx, topicSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTopicNotFound
			}
			return nil, err
		}
		words = []string(topic.Words)
	}

	if len(requested) > 0 {
		words = lo.Map(requested, func(word string, _ int) string {
			return strings.TrimSpace(word)
		})
	}

	if len(words) > s.config.MaxRequiredWords {
		return nil, ErrTooManyWords
	}
	if words == nil {
		words = []string{}
	}

	return words, nil
}

// cleanText strips rich-text markup. Text counts as markup only when it holds a
// closing tag or a void element, so prose like "a<b then b>a" stays intact.
func (s *evaluationService) cleanText(text string) string {
	if !s.config.StripMarkup || !markupPattern.MatchString(text) {
		return text
	}
	return html.UnescapeString(s.sanitizer.Sanitize(text))
}

func (s *evaluationService) digest(text string, words []string) string {
	hash := sha256.New()
	hash.Write([]byte(text))
	hash.Write([]byte{0})
	for _, word := range words {
		hash.Write([]byte(word))
		hash.Write([]byte{0x1f})
	}
	fmt.Fprintf(hash, "%t|%v", s.engine.CapsVocabulary(), s.engine.Scripts())
	return hex.EncodeToString(hash.Sum(nil))
}

func (s *evaluationService) cachedReport(ctx context.Context, digest string) (evaluator.Report, bool) {
	if s.cache == nil {
		return evaluator.Report{}, false
	}

	cached, err := s.cache.Get(ctx, reportCachePrefix+digest).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read report cache")
		}
		observability.EvaluationCache().WithLabelValues("miss").Inc()
		return evaluator.Report{}, false
	}

	var report evaluator.Report
	if err := json.Unmarshal([]byte(cached), &report); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed cached report")
		observability.EvaluationCache().WithLabelValues("miss").Inc()
		return evaluator.Report{}, false
	}

	observability.EvaluationCache().WithLabelValues("hit").Inc()
	s.logger.Debug().Str("digest", digest).Msg("report cache hit")
	return report, true
}

func (s *evaluationService) storeReport(ctx context.Context, digest string, report evaluator.Report) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, reportCachePrefix+digest, payload, s.config.CacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store report cache")
	}
}

func recordReportMetrics(report evaluator.Report) {
	observability.Evaluations().WithLabelValues(string(report.Tier)).Inc()
	scores := observability.EvaluationScores()
	scores.WithLabelValues("clarity").Observe(float64(report.Clarity.Score))
	scores.WithLabelValues("grammar").Observe(float64(report.Grammar.Score))
	scores.WithLabelValues("vocabulary").Observe(float64(report.Vocabulary.Score))
	scores.WithLabelValues("total").Observe(float64(report.Total))
}

func canViewEvaluation(viewerID uint, role string, evaluation models.Evaluation) bool {
	if viewerID != 0 && viewerID == evaluation.StudentID {
		return true
	}
	return models.IsReviewerRole(role)
}
