package service

import (
	"context"

	"veritas/internal/models"
)

// Function-field stubs so each test overrides only what it cares about.
// Unset fields return zero values.

type stubVoteRepo struct {
	createFn        func(ctx context.Context, vote *models.Vote) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Vote, error)
	findFn          func(ctx context.Context, userID, newsID uint) (*models.Vote, error)
	setInvalidFn    func(ctx context.Context, voteID uint, invalid bool) (*models.Vote, error)
	listByNewsFn    func(ctx context.Context, newsID uint, includeInvalid bool) ([]*models.Vote, error)
	countByResultFn func(ctx context.Context, newsID uint) (int64, int64, error)
	deleteFn        func(ctx context.Context, voteID uint) error
	deleteByUserFn  func(ctx context.Context, userID uint) (int64, []uint, error)
}

func (s *stubVoteRepo) Create(ctx context.Context, vote *models.Vote) error {
	if s.createFn != nil {
		return s.createFn(ctx, vote)
	}
	return nil
}

func (s *stubVoteRepo) GetByID(ctx context.Context, id uint) (*models.Vote, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubVoteRepo) Find(ctx context.Context, userID, newsID uint) (*models.Vote, error) {
	if s.findFn != nil {
		return s.findFn(ctx, userID, newsID)
	}
	return nil, nil
}

func (s *stubVoteRepo) SetInvalid(ctx context.Context, voteID uint, invalid bool) (*models.Vote, error) {
	if s.setInvalidFn != nil {
		return s.setInvalidFn(ctx, voteID, invalid)
	}
	return nil, nil
}

func (s *stubVoteRepo) ListByNews(ctx context.Context, newsID uint, includeInvalid bool) ([]*models.Vote, error) {
	if s.listByNewsFn != nil {
		return s.listByNewsFn(ctx, newsID, includeInvalid)
	}
	return nil, nil
}

func (s *stubVoteRepo) CountByResult(ctx context.Context, newsID uint) (int64, int64, error) {
	if s.countByResultFn != nil {
		return s.countByResultFn(ctx, newsID)
	}
	return 0, 0, nil
}

func (s *stubVoteRepo) Delete(ctx context.Context, voteID uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, voteID)
	}
	return nil
}

func (s *stubVoteRepo) DeleteByUser(ctx context.Context, userID uint) (int64, []uint, error) {
	if s.deleteByUserFn != nil {
		return s.deleteByUserFn(ctx, userID)
	}
	return 0, nil, nil
}

type stubNewsRepo struct {
	createFn           func(ctx context.Context, news *models.News) error
	getByIDFn          func(ctx context.Context, id uint) (*models.News, error)
	getByUserIDFn      func(ctx context.Context, userID uint, limit, offset int) ([]*models.News, error)
	listFn             func(ctx context.Context, limit, offset int, status models.NewsStatus) ([]*models.News, error)
	searchFn           func(ctx context.Context, query string, limit, offset int) ([]*models.News, error)
	updateFn           func(ctx context.Context, news *models.News) error
	updateModerationFn func(ctx context.Context, id uint, fake, notFake int64, status models.NewsStatus) error
	deleteFn           func(ctx context.Context, id uint) error
}

func (s *stubNewsRepo) Create(ctx context.Context, news *models.News) error {
	if s.createFn != nil {
		return s.createFn(ctx, news)
	}
	return nil
}

func (s *stubNewsRepo) GetByID(ctx context.Context, id uint) (*models.News, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.News{ID: id}, nil
}

func (s *stubNewsRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.News, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (s *stubNewsRepo) List(ctx context.Context, limit, offset int, status models.NewsStatus) ([]*models.News, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset, status)
	}
	return nil, nil
}

func (s *stubNewsRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.News, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit, offset)
	}
	return nil, nil
}

func (s *stubNewsRepo) Update(ctx context.Context, news *models.News) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, news)
	}
	return nil
}

func (s *stubNewsRepo) UpdateModeration(ctx context.Context, id uint, fake, notFake int64, status models.NewsStatus) error {
	if s.updateModerationFn != nil {
		return s.updateModerationFn(ctx, id, fake, notFake, status)
	}
	return nil
}

func (s *stubNewsRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	listFn          func(ctx context.Context, limit, offset int) ([]*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
	setAdminFn      func(ctx context.Context, id uint, isAdmin bool) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	if s.setAdminFn != nil {
		return s.setAdminFn(ctx, id, isAdmin)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByNewsFn func(ctx context.Context, newsID uint, limit, offset int) ([]*models.Comment, error)
	updateFn     func(ctx context.Context, comment *models.Comment) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Comment{ID: id}, nil
}

func (s *stubCommentRepo) ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.Comment, error) {
	if s.listByNewsFn != nil {
		return s.listByNewsFn(ctx, newsID, limit, offset)
	}
	return nil, nil
}

func (s *stubCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}
