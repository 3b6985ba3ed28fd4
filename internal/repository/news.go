package repository

import (
	"context"

	"veritas/internal/cache"
	"veritas/internal/models"

	"gorm.io/gorm"
)

// NewsRepository defines the interface for news data operations
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.News, error)
	List(ctx context.Context, limit, offset int, status models.NewsStatus) ([]*models.News, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.News, error)
	Update(ctx context.Context, news *models.News) error
	UpdateModeration(ctx context.Context, id uint, fake, notFake int64, status models.NewsStatus) error
	Delete(ctx context.Context, id uint) error
}

// newsRepository implements NewsRepository
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	err := r.db.WithContext(ctx).Create(news).Error
	if err == nil {
		cache.InvalidateNewsList(ctx)
	}
	return err
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	err := cache.Aside(ctx, cache.NewsKey(id), &news, cache.NewsTTL, func() error {
		return r.applyCommentCount(r.db.WithContext(ctx)).
			Preload("User").
			First(&news, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.News, error) {
	var items []*models.News
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *newsRepository) List(ctx context.Context, limit, offset int, status models.NewsStatus) ([]*models.News, error) {
	var items []*models.News
	q := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *newsRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.News, error) {
	var items []*models.News
	like := "%" + query + "%"
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("User").
		Where("title ILIKE ? OR content ILIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// applyCommentCount adds a subquery fetching the comment count in a single query.
func (r *newsRepository) applyCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("news.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.news_id = news.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	if err := r.db.WithContext(ctx).Save(news).Error; err != nil {
		return err
	}
	cache.InvalidateNews(ctx, news.ID)
	cache.InvalidateNewsList(ctx)
	return nil
}

// UpdateModeration overwrites the cached vote counts and the status in one
// atomic update. Counts always come from a fresh recount, never from
// incrementing the stored values.
func (r *newsRepository) UpdateModeration(ctx context.Context, id uint, fake, notFake int64, status models.NewsStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"fake_votes":     fake,
			"not_fake_votes": notFake,
			"status":         status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateNews(ctx, id)
	cache.InvalidateNewsList(ctx)
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.News{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateNews(ctx, id)
	cache.InvalidateNewsList(ctx)
	return nil
}
