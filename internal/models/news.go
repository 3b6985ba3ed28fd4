package models

import (
	"time"

	"gorm.io/gorm"
)

// NewsStatus is the authoritative verdict derived from vote aggregation.
type NewsStatus string

const (
	// NewsStatusPending indicates the item has not reached a verdict yet.
	NewsStatusPending NewsStatus = "pending"
	// NewsStatusFake indicates the community judged the item fake.
	NewsStatusFake NewsStatus = "fake"
	// NewsStatusNotFake indicates the community judged the item legitimate.
	NewsStatusNotFake NewsStatus = "not_fake"
)

// News represents a submitted news item under community review.
//
// FakeVotes and NotFakeVotes cache the aggregator's output over non-invalid
// votes. They are always overwritten from a fresh recount, never incremented
// in place, so they stay consistent after admin invalidation.
type News struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	SourceURL    string     `json:"source_url"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user"`
	Status       NewsStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	FakeVotes    int        `gorm:"not null;default:0" json:"fake_votes"`
	NotFakeVotes int        `gorm:"not null;default:0" json:"not_fake_votes"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (News) TableName() string {
	return "news"
}

// ValidStatus reports whether s is one of the known verdicts.
func ValidStatus(s NewsStatus) bool {
	switch s {
	case NewsStatusPending, NewsStatusFake, NewsStatusNotFake:
		return true
	}
	return false
}
