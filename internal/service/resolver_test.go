package service

import (
	"testing"

	"veritas/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus(t *testing.T) {
	t.Parallel()

	stats := func(fake, notFake int64) models.VoteStats {
		return models.VoteStats{
			FakeCount:    fake,
			NotFakeCount: notFake,
			TotalCount:   fake + notFake,
		}
	}

	tests := []struct {
		name  string
		stats models.VoteStats
		want  models.NewsStatus
	}{
		{"no votes stays pending", stats(0, 0), models.NewsStatusPending},
		{"below quorum stays pending even at full agreement", stats(4, 0), models.NewsStatusPending},
		{"quorum with fake ratio exactly at threshold is fake", stats(3, 2), models.NewsStatusFake},
		{"quorum with fake ratio exactly at lower bound is not fake", stats(2, 3), models.NewsStatusNotFake},
		{"contested split stays pending", stats(5, 5), models.NewsStatusPending},
		{"just inside the dead zone from above stays pending", stats(59, 41), models.NewsStatusPending},
		{"just inside the dead zone from below stays pending", stats(41, 59), models.NewsStatusPending},
		{"clear majority fake", stats(9, 1), models.NewsStatusFake},
		{"clear majority not fake", stats(1, 9), models.NewsStatusNotFake},
		{"unanimous fake at quorum", stats(5, 0), models.NewsStatusFake},
		{"unanimous not fake at quorum", stats(0, 5), models.NewsStatusNotFake},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveStatus(tc.stats, DefaultMinVotes, DefaultFakeThreshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveStatus_CustomThresholds(t *testing.T) {
	t.Parallel()

	// Raising the quorum demotes an item that would otherwise be fake.
	s := models.VoteStats{FakeCount: 6, NotFakeCount: 1, TotalCount: 7}
	assert.Equal(t, models.NewsStatusFake, ResolveStatus(s, 5, 0.6))
	assert.Equal(t, models.NewsStatusPending, ResolveStatus(s, 10, 0.6))

	// A stricter threshold widens the dead zone.
	s = models.VoteStats{FakeCount: 7, NotFakeCount: 3, TotalCount: 10}
	assert.Equal(t, models.NewsStatusFake, ResolveStatus(s, 5, 0.6))
	assert.Equal(t, models.NewsStatusPending, ResolveStatus(s, 5, 0.8))
}

func TestResolveStatus_Monotonic(t *testing.T) {
	t.Parallel()

	// Once an item is fake, adding more fake votes never moves it away.
	fake, notFake := int64(3), int64(2)
	assert.Equal(t, models.NewsStatusFake, ResolveStatus(models.VoteStats{
		FakeCount: fake, NotFakeCount: notFake, TotalCount: fake + notFake,
	}, DefaultMinVotes, DefaultFakeThreshold))

	for i := 0; i < 20; i++ {
		fake++
		got := ResolveStatus(models.VoteStats{
			FakeCount: fake, NotFakeCount: notFake, TotalCount: fake + notFake,
		}, DefaultMinVotes, DefaultFakeThreshold)
		assert.Equal(t, models.NewsStatusFake, got, "fake=%d notFake=%d", fake, notFake)
	}
}
