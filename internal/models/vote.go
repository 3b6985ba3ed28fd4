package models

import "time"

// VoteResult is a voter's binary judgment on a news item.
type VoteResult string

const (
	// VoteResultFake marks the news item as fake.
	VoteResultFake VoteResult = "fake"
	// VoteResultNotFake marks the news item as legitimate.
	VoteResultNotFake VoteResult = "not_fake"
)

// ValidVoteResult reports whether r is a legal vote value.
func ValidVoteResult(r VoteResult) bool {
	return r == VoteResultFake || r == VoteResultNotFake
}

// Vote records one user's judgment on one news item.
//
// The composite unique index on (user_id, news_id) is the only guard against
// double voting: concurrent submissions for the same pair race to the insert
// and the loser gets a unique-violation, which the repository surfaces as a
// duplicate-vote error. Invalidated votes keep their row (and keep occupying
// the index slot); retraction removes the row entirely. The two operations
// are deliberately distinct.
type Vote struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_user_news" json:"user_id"`
	NewsID    uint       `gorm:"not null;uniqueIndex:idx_user_news;index" json:"news_id"`
	Result    VoteResult `gorm:"type:varchar(10);not null" json:"result"`
	IsInvalid bool       `gorm:"not null;default:false" json:"is_invalid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	News News `gorm:"foreignKey:NewsID" json:"-"`
}

// VoteStats is the aggregator's output for one news item, counting only
// non-invalid votes.
type VoteStats struct {
	FakeCount    int64 `json:"fake_count"`
	NotFakeCount int64 `json:"not_fake_count"`
	TotalCount   int64 `json:"total_count"`
}

// FakeRatio returns the share of fake votes, or 0 when there are none.
func (s VoteStats) FakeRatio() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.FakeCount) / float64(s.TotalCount)
}
