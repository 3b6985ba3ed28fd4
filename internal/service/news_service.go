package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"veritas/internal/models"
	"veritas/internal/repository"

	"gorm.io/gorm"
)

// NewsService handles news item CRUD around the voting core.
type NewsService struct {
	newsRepo repository.NewsRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo repository.NewsRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *NewsService {
	return &NewsService{newsRepo: newsRepo, isAdmin: isAdmin}
}

type CreateNewsInput struct {
	UserID    uint
	Title     string
	Content   string
	SourceURL string
}

type ListNewsInput struct {
	Limit  int
	Offset int
	Status models.NewsStatus
}

type UpdateNewsInput struct {
	UserID    uint
	NewsID    uint
	Title     string
	Content   string
	SourceURL string
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// CreateNews validates and stores a new submission. Every item starts
// pending with zero cached counts; only the resolver moves it from there.
func (s *NewsService) CreateNews(ctx context.Context, in CreateNewsInput) (*models.News, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.SourceURL != "" {
		if _, err := url.ParseRequestURI(in.SourceURL); err != nil {
			return nil, models.NewValidationError("source_url must be a valid URL")
		}
	}

	news := &models.News{
		Title:     in.Title,
		Content:   in.Content,
		SourceURL: in.SourceURL,
		UserID:    in.UserID,
		Status:    models.NewsStatusPending,
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) GetNews(ctx context.Context, id uint) (*models.News, error) {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", id)
		}
		return nil, err
	}
	return news, nil
}

func (s *NewsService) ListNews(ctx context.Context, in ListNewsInput) ([]*models.News, error) {
	if in.Status != "" && !models.ValidStatus(in.Status) {
		return nil, models.NewValidationError("status must be one of 'pending', 'fake', 'not_fake'")
	}
	return s.newsRepo.List(ctx, in.Limit, in.Offset, in.Status)
}

func (s *NewsService) SearchNews(ctx context.Context, query string, limit, offset int) ([]*models.News, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.newsRepo.Search(ctx, query, limit, offset)
}

func (s *NewsService) GetUserNews(ctx context.Context, userID uint, limit, offset int) ([]*models.News, error) {
	return s.newsRepo.GetByUserID(ctx, userID, limit, offset)
}

// UpdateNews lets the author amend title, content or source. Vote counts and
// status are owned by recalculation and are never touched here.
func (s *NewsService) UpdateNews(ctx context.Context, in UpdateNewsInput) (*models.News, error) {
	news, err := s.GetNews(ctx, in.NewsID)
	if err != nil {
		return nil, err
	}

	if news.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own news items")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		news.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		news.Content = in.Content
	}
	if in.SourceURL != "" {
		if _, err := url.ParseRequestURI(in.SourceURL); err != nil {
			return nil, models.NewValidationError("source_url must be a valid URL")
		}
		news.SourceURL = in.SourceURL
	}

	if err := s.newsRepo.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) DeleteNews(ctx context.Context, userID, newsID uint) error {
	news, err := s.GetNews(ctx, newsID)
	if err != nil {
		return err
	}

	if news.UserID != userID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own news items")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own news items")
		}
	}

	return s.newsRepo.Delete(ctx, newsID)
}
