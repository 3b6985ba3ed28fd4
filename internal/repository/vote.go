// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"veritas/internal/cache"
	"veritas/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// VoteRepository defines the interface for vote record operations.
//
// Create is the write side of the double-vote guard: the composite unique
// index on (user_id, news_id) rejects the second insert for a pair, and the
// unique-violation is surfaced as a typed duplicate-vote error. An
// invalidated vote still occupies its index slot, so it keeps blocking
// resubmission until the row is hard-deleted.
type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	GetByID(ctx context.Context, id uint) (*models.Vote, error)
	Find(ctx context.Context, userID, newsID uint) (*models.Vote, error)
	SetInvalid(ctx context.Context, voteID uint, invalid bool) (*models.Vote, error)
	ListByNews(ctx context.Context, newsID uint, includeInvalid bool) ([]*models.Vote, error)
	CountByResult(ctx context.Context, newsID uint) (fake, notFake int64, err error)
	Delete(ctx context.Context, voteID uint) error
	DeleteByUser(ctx context.Context, userID uint) (int64, []uint, error)
}

// voteRepository implements VoteRepository
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	err := r.db.WithContext(ctx).Create(vote).Error
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateVoteError(vote.NewsID)
		}
		return err
	}
	cache.InvalidateNews(ctx, vote.NewsID)
	return nil
}

func (r *voteRepository) GetByID(ctx context.Context, id uint) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).First(&vote, id).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) Find(ctx context.Context, userID, newsID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) SetInvalid(ctx context.Context, voteID uint, invalid bool) (*models.Vote, error) {
	vote, err := r.GetByID(ctx, voteID)
	if err != nil {
		return nil, err
	}

	if vote.IsInvalid != invalid {
		if err := r.db.WithContext(ctx).
			Model(vote).
			Update("is_invalid", invalid).Error; err != nil {
			return nil, err
		}
		cache.InvalidateNews(ctx, vote.NewsID)
	}
	return vote, nil
}

func (r *voteRepository) ListByNews(ctx context.Context, newsID uint, includeInvalid bool) ([]*models.Vote, error) {
	var votes []*models.Vote
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("news_id = ?", newsID)
	if !includeInvalid {
		q = q.Where("is_invalid = ?", false)
	}
	err := q.Order("created_at ASC").Find(&votes).Error
	return votes, err
}

func (r *voteRepository) CountByResult(ctx context.Context, newsID uint) (int64, int64, error) {
	var rows []struct {
		Result models.VoteResult
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("result, COUNT(*) as count").
		Where("news_id = ? AND is_invalid = ?", newsID, false).
		Group("result").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var fake, notFake int64
	for _, row := range rows {
		switch row.Result {
		case models.VoteResultFake:
			fake = row.Count
		case models.VoteResultNotFake:
			notFake = row.Count
		}
	}
	return fake, notFake, nil
}

func (r *voteRepository) Delete(ctx context.Context, voteID uint) error {
	vote, err := r.GetByID(ctx, voteID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Vote{}, voteID).Error; err != nil {
		return err
	}
	cache.InvalidateNews(ctx, vote.NewsID)
	return nil
}

func (r *voteRepository) DeleteByUser(ctx context.Context, userID uint) (int64, []uint, error) {
	var newsIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("news_id", &newsIDs).Error; err != nil {
		return 0, nil, err
	}

	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Vote{})
	if res.Error != nil {
		return 0, nil, res.Error
	}

	for _, id := range newsIDs {
		cache.InvalidateNews(ctx, id)
	}
	return res.RowsAffected, newsIDs, nil
}
