package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
	"github.com/noah-isme/gema-writing-api/internal/models"
)

func TestTopicRepositoryUpsertAndGet(t *testing.T) {
	db := setupWritingTestDB(t)
	repo := NewTopicRepository(db)

	topic := models.Topic{Slug: "technology", Title: "Technology", Words: []string{"innovation", "culture"}}
	require.NoError(t, repo.Upsert(context.Background(), &topic))
	require.NotZero(t, topic.ID)

	updated := models.Topic{Slug: "technology", Title: "Tech & Society", Words: []string{"innovation"}}
	require.NoError(t, repo.Upsert(context.Background(), &updated))
	require.Equal(t, topic.ID, updated.ID)

	stored, err := repo.GetBySlug(context.Background(), "technology")
	require.NoError(t, err)
	require.Equal(t, "Tech & Society", stored.Title)
	require.Equal(t, []string{"innovation"}, []string(stored.Words))

	_, err = repo.GetBySlug(context.Background(), "missing")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTopicRepositoryListOrdersBySlug(t *testing.T) {
	db := setupWritingTestDB(t)
	repo := NewTopicRepository(db)

	for _, slug := range []string{"travel", "art", "science"} {
		topic := models.Topic{Slug: slug, Title: slug}
		require.NoError(t, repo.Upsert(context.Background(), &topic))
	}

	topics, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 3)
	require.Equal(t, "art", topics[0].Slug)
	require.Equal(t, "travel", topics[2].Slug)
}

func TestEvaluationRepositoryStoresReport(t *testing.T) {
	db := setupWritingTestDB(t)
	repo := NewEvaluationRepository(db)

	report := evaluator.Evaluate("Innovation is transforming our world.", []string{"innovation"})
	record := models.NewEvaluation(7, "technology", "Innovation is transforming our world.", []string{"innovation"}, "digest", report)
	require.NoError(t, repo.Create(context.Background(), &record))
	require.NotZero(t, record.ID)

	stored, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.Equal(t, report.Total, stored.TotalScore)
	require.Equal(t, string(report.Tier), stored.Tier)
	require.Equal(t, []string{"innovation"}, []string(stored.RequiredWords))
	require.Equal(t, report.Vocabulary.Feedback, stored.Report.Data().Vocabulary.Feedback)
}

func TestEvaluationRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupWritingTestDB(t)
	repo := NewEvaluationRepository(db)

	report := evaluator.Evaluate("Short text.", nil)
	for i, student := range []uint{1, 1, 1, 2} {
		topic := "technology"
		if i == 2 {
			topic = "travel"
		}
		record := models.NewEvaluation(student, topic, "Short text.", nil, "d", report)
		require.NoError(t, repo.Create(context.Background(), &record))
	}

	items, total, err := repo.List(context.Background(), EvaluationFilter{StudentID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 3)

	paged, total, err := repo.List(context.Background(), EvaluationFilter{StudentID: 1, Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)

	filtered, total, err := repo.List(context.Background(), EvaluationFilter{StudentID: 1, TopicSlug: "travel"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "travel", filtered[0].TopicSlug)
}

func setupWritingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Topic{}, &models.Evaluation{}))
	return db
}
