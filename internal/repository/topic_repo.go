package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gema-writing-api/internal/models"
)

// TopicRepository exposes persistence helpers for vocabulary topics.
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	GetBySlug(ctx context.Context, slug string) (models.Topic, error)
	Upsert(ctx context.Context, topic *models.Topic) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository constructs a topic repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) List(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) GetBySlug(ctx context.Context, slug string) (models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&topic).Error; err != nil {
		return models.Topic{}, err
	}
	return topic, nil
}

func (r *topicRepository) Upsert(ctx context.Context, topic *models.Topic) error {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "prompt", "words", "updated_at"}),
	})
	if err := tx.Create(topic).Error; err != nil {
		return err
	}

	var stored models.Topic
	if err := r.db.WithContext(ctx).Where("slug = ?", topic.Slug).First(&stored).Error; err != nil {
		return err
	}
	*topic = stored
	return nil
}
