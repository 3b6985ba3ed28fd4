package service

import (
	"context"
	"errors"
	"time"

	"veritas/internal/models"
	"veritas/internal/observability"
	"veritas/internal/repository"

	"gorm.io/gorm"
)

// VoteService orchestrates vote submission, invalidation and the recount
// that keeps each news item's cached counts and status consistent.
type VoteService struct {
	voteRepo      repository.VoteRepository
	newsRepo      repository.NewsRepository
	minVotes      int
	fakeThreshold float64
}

// NewVoteService creates a vote service with the configured moderation
// thresholds. Out-of-range values fall back to the defaults.
func NewVoteService(voteRepo repository.VoteRepository, newsRepo repository.NewsRepository, minVotes int, fakeThreshold float64) *VoteService {
	if minVotes < 1 {
		minVotes = DefaultMinVotes
	}
	if fakeThreshold <= 0.5 || fakeThreshold > 1.0 {
		fakeThreshold = DefaultFakeThreshold
	}
	return &VoteService{
		voteRepo:      voteRepo,
		newsRepo:      newsRepo,
		minVotes:      minVotes,
		fakeThreshold: fakeThreshold,
	}
}

// SubmitVoteInput is the payload for a vote submission.
type SubmitVoteInput struct {
	UserID uint
	NewsID uint
	Result models.VoteResult
}

// SubmitVoteResult bundles the created vote with the recalculated aggregate.
type SubmitVoteResult struct {
	Vote   *models.Vote      `json:"vote"`
	Stats  models.VoteStats  `json:"vote_stats"`
	Status models.NewsStatus `json:"news_status"`
}

// Recalculation is the outcome of one recount-and-resolve run.
type Recalculation struct {
	NewsID uint              `json:"news_id"`
	Stats  models.VoteStats  `json:"stats"`
	Status models.NewsStatus `json:"status"`
}

// RecalcOptions carries per-call threshold overrides for RecalculateNews.
// Zero values mean "use the configured thresholds"; overrides are never
// persisted.
type RecalcOptions struct {
	MinVotes      int
	FakeThreshold float64
}

// InvalidateVoteResult bundles the updated vote with the recalculation it
// triggered.
type InvalidateVoteResult struct {
	Vote          *models.Vote  `json:"vote"`
	Recalculation Recalculation `json:"recalculation"`
}

// BatchItemResult reports the outcome of invalidating a single vote within a
// batch.
type BatchItemResult struct {
	VoteID uint   `json:"vote_id"`
	NewsID uint   `json:"news_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchInvalidateResult reports per-vote outcomes and the recalculations run
// afterwards, one per distinct news item touched.
type BatchInvalidateResult struct {
	Items          []BatchItemResult `json:"items"`
	Recalculations []Recalculation   `json:"recalculations"`
	RecalcFailures map[uint]string   `json:"recalc_failures,omitempty"`
}

// SubmitVote records a user's judgment on a news item and refreshes the
// item's aggregate. The duplicate check runs twice: a cheap lookup first for
// a clean error, then the unique constraint inside Create, which is what
// actually settles a race between two concurrent submissions for the same
// (user, news) pair.
func (s *VoteService) SubmitVote(ctx context.Context, in SubmitVoteInput) (*SubmitVoteResult, error) {
	if !models.ValidVoteResult(in.Result) {
		observability.VotesRejected.WithLabelValues("invalid_result").Inc()
		return nil, models.NewValidationError("result must be 'fake' or 'not_fake'")
	}

	if _, err := s.newsRepo.GetByID(ctx, in.NewsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.VotesRejected.WithLabelValues("news_not_found").Inc()
			return nil, models.NewNotFoundError("News", in.NewsID)
		}
		return nil, err
	}

	existing, err := s.voteRepo.Find(ctx, in.UserID, in.NewsID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.VotesRejected.WithLabelValues("duplicate").Inc()
		return nil, models.NewDuplicateVoteError(in.NewsID)
	}

	vote := &models.Vote{
		UserID: in.UserID,
		NewsID: in.NewsID,
		Result: in.Result,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if models.IsCode(err, models.CodeDuplicateVote) {
			observability.VotesRejected.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}
	observability.VotesSubmitted.WithLabelValues(string(in.Result)).Inc()

	recalc, err := s.recalculate(ctx, in.NewsID, s.minVotes, s.fakeThreshold)
	if err != nil {
		return nil, err
	}

	return &SubmitVoteResult{
		Vote:   vote,
		Stats:  recalc.Stats,
		Status: recalc.Status,
	}, nil
}

// RetractVote hard-deletes the caller's own vote on a news item and refreshes
// the aggregate. Unlike invalidation this frees the (user, news) slot, so the
// user may vote again afterwards.
func (s *VoteService) RetractVote(ctx context.Context, userID, newsID uint) (*Recalculation, error) {
	vote, err := s.voteRepo.Find(ctx, userID, newsID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, models.NewNotFoundError("Vote", newsID)
	}

	if err := s.voteRepo.Delete(ctx, vote.ID); err != nil {
		return nil, err
	}

	recalc, err := s.recalculate(ctx, newsID, s.minVotes, s.fakeThreshold)
	if err != nil {
		return nil, err
	}
	return &recalc, nil
}

// InvalidateVote flips a vote's invalid flag (admin action) and recalculates
// the affected news item. The vote row is kept; only its weight in the
// aggregate changes.
func (s *VoteService) InvalidateVote(ctx context.Context, voteID uint, invalid bool) (*InvalidateVoteResult, error) {
	vote, err := s.voteRepo.SetInvalid(ctx, voteID, invalid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vote", voteID)
		}
		return nil, err
	}

	action := "invalidate"
	if !invalid {
		action = "restore"
	}
	observability.VotesInvalidated.WithLabelValues(action).Inc()

	recalc, err := s.recalculate(ctx, vote.NewsID, s.minVotes, s.fakeThreshold)
	if err != nil {
		return nil, err
	}

	return &InvalidateVoteResult{Vote: vote, Recalculation: recalc}, nil
}

// BatchInvalidate applies the invalid flag to many votes and then
// recalculates every distinct news item touched, once each. Failures are
// collected per item rather than aborting the batch.
func (s *VoteService) BatchInvalidate(ctx context.Context, voteIDs []uint, invalid bool) (*BatchInvalidateResult, error) {
	result := &BatchInvalidateResult{}

	touched := make(map[uint]struct{})
	var order []uint

	action := "invalidate"
	if !invalid {
		action = "restore"
	}

	for _, voteID := range voteIDs {
		item := BatchItemResult{VoteID: voteID}
		vote, err := s.voteRepo.SetInvalid(ctx, voteID, invalid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item.Error = models.NewNotFoundError("Vote", voteID).Error()
			} else {
				item.Error = err.Error()
			}
			result.Items = append(result.Items, item)
			continue
		}
		observability.VotesInvalidated.WithLabelValues(action).Inc()

		item.NewsID = vote.NewsID
		result.Items = append(result.Items, item)
		if _, seen := touched[vote.NewsID]; !seen {
			touched[vote.NewsID] = struct{}{}
			order = append(order, vote.NewsID)
		}
	}

	for _, newsID := range order {
		recalc, err := s.recalculate(ctx, newsID, s.minVotes, s.fakeThreshold)
		if err != nil {
			if result.RecalcFailures == nil {
				result.RecalcFailures = make(map[uint]string)
			}
			result.RecalcFailures[newsID] = err.Error()
			continue
		}
		result.Recalculations = append(result.Recalculations, recalc)
	}

	return result, nil
}

// RecalculateNews forces a recount and status resolution for one news item,
// whether or not anything changed. Per-call overrides in opts apply to this
// run only.
func (s *VoteService) RecalculateNews(ctx context.Context, newsID uint, opts RecalcOptions) (*Recalculation, error) {
	minVotes := s.minVotes
	if opts.MinVotes > 0 {
		minVotes = opts.MinVotes
	}
	fakeThreshold := s.fakeThreshold
	if opts.FakeThreshold > 0 {
		if opts.FakeThreshold <= 0.5 || opts.FakeThreshold > 1.0 {
			return nil, models.NewValidationError("fake threshold override must be in (0.5, 1.0]")
		}
		fakeThreshold = opts.FakeThreshold
	}

	recalc, err := s.recalculate(ctx, newsID, minVotes, fakeThreshold)
	if err != nil {
		return nil, err
	}
	return &recalc, nil
}

// ComputeStats aggregates the non-invalid votes for a news item. It is a pure
// read: no side effects, safe to call concurrently and repeatedly.
func (s *VoteService) ComputeStats(ctx context.Context, newsID uint) (models.VoteStats, error) {
	fake, notFake, err := s.voteRepo.CountByResult(ctx, newsID)
	if err != nil {
		return models.VoteStats{}, err
	}
	return models.VoteStats{
		FakeCount:    fake,
		NotFakeCount: notFake,
		TotalCount:   fake + notFake,
	}, nil
}

// VoteStatsResult is the public stats payload including percentages.
type VoteStatsResult struct {
	models.VoteStats
	FakePercentage    float64 `json:"fake_percentage"`
	NotFakePercentage float64 `json:"not_fake_percentage"`
}

// GetVoteStats returns the aggregate for a news item, failing with NotFound
// when the item does not exist.
func (s *VoteService) GetVoteStats(ctx context.Context, newsID uint) (*VoteStatsResult, error) {
	if _, err := s.newsRepo.GetByID(ctx, newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", newsID)
		}
		return nil, err
	}

	stats, err := s.ComputeStats(ctx, newsID)
	if err != nil {
		return nil, err
	}

	result := &VoteStatsResult{VoteStats: stats}
	if stats.TotalCount > 0 {
		result.FakePercentage = float64(stats.FakeCount) / float64(stats.TotalCount) * 100
		result.NotFakePercentage = float64(stats.NotFakeCount) / float64(stats.TotalCount) * 100
	}
	return result, nil
}

// ListVotes returns the raw vote records for a news item (admin view),
// optionally including invalidated ones.
func (s *VoteService) ListVotes(ctx context.Context, newsID uint, includeInvalid bool) ([]*models.Vote, error) {
	if _, err := s.newsRepo.GetByID(ctx, newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", newsID)
		}
		return nil, err
	}
	return s.voteRepo.ListByNews(ctx, newsID, includeInvalid)
}

// RemoveUserVotes hard-deletes every vote a user has cast and recalculates
// each touched news item. Used by account deletion.
func (s *VoteService) RemoveUserVotes(ctx context.Context, userID uint) (int64, error) {
	count, newsIDs, err := s.voteRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, newsID := range newsIDs {
		if _, recalcErr := s.recalculate(ctx, newsID, s.minVotes, s.fakeThreshold); recalcErr != nil {
			return count, recalcErr
		}
	}
	return count, nil
}

// recalculate recomputes the aggregate, resolves the status and persists both
// onto the news row. The vote write and the news update are not transactional;
// a crash in between leaves stale cached counts until the next recalculation,
// which is the accepted trade-off.
func (s *VoteService) recalculate(ctx context.Context, newsID uint, minVotes int, fakeThreshold float64) (Recalculation, error) {
	start := time.Now()
	defer observability.ObserveRecalculation(start)

	stats, err := s.ComputeStats(ctx, newsID)
	if err != nil {
		return Recalculation{}, err
	}

	status := ResolveStatus(stats, minVotes, fakeThreshold)

	if err := s.newsRepo.UpdateModeration(ctx, newsID, stats.FakeCount, stats.NotFakeCount, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Recalculation{}, models.NewNotFoundError("News", newsID)
		}
		return Recalculation{}, err
	}
	observability.StatusTransitions.WithLabelValues(string(status)).Inc()

	return Recalculation{NewsID: newsID, Stats: stats, Status: status}, nil
}
