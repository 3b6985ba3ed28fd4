// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"veritas/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateNews constructs and persists a sample news item authored by the user.
// Items always start pending; the recount moves them from there.
func (f *Factory) CreateNews(user *models.User, overrides ...func(*models.News)) (*models.News, error) {
	news := &models.News{
		Title:     gofakeit.Sentence(6),
		Content:   gofakeit.Paragraph(2, 4, 8, "\n"),
		SourceURL: gofakeit.URL(),
		UserID:    user.ID,
		Status:    models.NewsStatusPending,
	}

	// realistic created_at spread over the last 30 days
	daysBack := f.rand.Intn(30)
	hoursBack := f.rand.Intn(24)
	news.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(news)
	}

	if err := f.db.Create(news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// CreateVote persists a vote by the user on the news item. The composite
// unique index enforces one vote per pair; callers should not pass the same
// pair twice.
func (f *Factory) CreateVote(user *models.User, news *models.News, result models.VoteResult) (*models.Vote, error) {
	vote := &models.Vote{
		UserID: user.ID,
		NewsID: news.ID,
		Result: result,
	}
	if err := f.db.Create(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}

// CreateComment persists a sample comment by the user on the news item.
func (f *Factory) CreateComment(user *models.User, news *models.News) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(12),
		UserID:  user.ID,
		NewsID:  news.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
