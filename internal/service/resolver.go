// Package service contains the application's business logic, orchestrating
// repositories beneath the HTTP layer.
package service

import "veritas/internal/models"

// Default moderation thresholds, used when the configuration or a per-call
// override does not supply them.
const (
	DefaultMinVotes      = 5
	DefaultFakeThreshold = 0.6
)

// ResolveStatus maps aggregated vote counts to a news verdict.
//
// Below minVotes the item stays pending regardless of the ratio. At or above
// the quorum, a fake-vote share of at least fakeThreshold yields Fake and a
// share of at most 1-fakeThreshold yields NotFake. A ratio strictly between
// the two bounds keeps the item pending: a contested item never flips on a
// near-tie. The boundary comparisons are inclusive (>= and <=); tests pin
// them down because an off-by-one here silently reclassifies items sitting
// exactly on a threshold.
//
// The function is pure: deterministic, order-independent (only counts matter)
// and idempotent under recalculation.
func ResolveStatus(stats models.VoteStats, minVotes int, fakeThreshold float64) models.NewsStatus {
	if stats.TotalCount < int64(minVotes) {
		return models.NewsStatusPending
	}

	ratio := stats.FakeRatio()
	if ratio >= fakeThreshold {
		return models.NewsStatusFake
	}
	if ratio <= 1-fakeThreshold {
		return models.NewsStatusNotFake
	}
	return models.NewsStatusPending
}
