package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	NewsKeyPrefix      = "news:%d"
	NewsStatsKeyPrefix = "news:%d:stats"
	NewsListKey        = "news:list"
)

const (
	UserTTL      = 5 * time.Minute
	NewsTTL      = 10 * time.Minute
	NewsStatsTTL = 1 * time.Minute
	ListTTL      = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func NewsKey(newsID uint) string {
	return fmt.Sprintf(NewsKeyPrefix, newsID)
}

func NewsStatsKey(newsID uint) string {
	return fmt.Sprintf(NewsStatsKeyPrefix, newsID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateNews drops both the cached item and its cached vote stats; the
// two are always written together by recalculation.
func InvalidateNews(ctx context.Context, newsID uint) {
	Invalidate(ctx, NewsKey(newsID))
	Invalidate(ctx, NewsStatsKey(newsID))
}

func InvalidateNewsList(ctx context.Context) {
	Invalidate(ctx, NewsListKey)
}
