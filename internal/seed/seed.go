package seed

import (
	"context"
	"fmt"

	"veritas/internal/middleware"
	"veritas/internal/models"
	"veritas/internal/repository"
	"veritas/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumNews     int
	ShouldClean bool
}

// Run populates the database with demo users, news items, votes and comments,
// then recalculates every item so cached counts and statuses are consistent.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumNews <= 0 {
		opts.NumNews = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}
	// first seeded user doubles as the demo admin
	if err := db.Model(users[0]).Update("is_admin", true).Error; err != nil {
		return err
	}

	items := make([]*models.News, 0, opts.NumNews)
	for i := 0; i < opts.NumNews; i++ {
		author := users[f.rand.Intn(len(users))]
		news, err := f.CreateNews(author)
		if err != nil {
			return fmt.Errorf("seeding news: %w", err)
		}
		items = append(items, news)
	}

	// Each user votes on a random subset of items; the unique pair index is
	// respected by construction.
	for _, user := range users {
		for _, news := range items {
			if f.rand.Float64() > 0.4 {
				continue
			}
			result := models.VoteResultNotFake
			if f.rand.Float64() < 0.5 {
				result = models.VoteResultFake
			}
			if _, err := f.CreateVote(user, news, result); err != nil {
				return fmt.Errorf("seeding vote: %w", err)
			}
			if f.rand.Float64() < 0.2 {
				if _, err := f.CreateComment(user, news); err != nil {
					return fmt.Errorf("seeding comment: %w", err)
				}
			}
		}
	}

	votes := service.NewVoteService(
		repository.NewVoteRepository(db),
		repository.NewNewsRepository(db),
		service.DefaultMinVotes,
		service.DefaultFakeThreshold,
	)
	for _, news := range items {
		if _, err := votes.RecalculateNews(ctx, news.ID, service.RecalcOptions{}); err != nil {
			return fmt.Errorf("recalculating news %d: %w", news.ID, err)
		}
	}

	middleware.Logger.Info("seed complete",
		"users", len(users), "news", len(items))
	return nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"comments", "votes", "news", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
