package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/service/normalize"
)

// TikTokClient serves fixture data shaped like real platform responses.
// The platform has no usable public API, so trending, search and hashtag
// lookups return deterministic samples; only the shapes and the
// normalization path are real. It implements content.PlatformCollaborator
// and content.HashtagSource.
type TikTokClient struct {
	log *logrus.Logger
	now func() time.Time
}

// NewTikTokClient creates the fixture-backed client.
func NewTikTokClient(log *logrus.Logger) *TikTokClient {
	return &TikTokClient{log: log, now: time.Now}
}

// Name returns the platform this client serves.
func (c *TikTokClient) Name() content.Platform {
	return content.PlatformTikTok
}

// GetTrending returns the fixture trending set, capped at maxResults.
func (c *TikTokClient) GetTrending(ctx context.Context, maxResults int) ([]content.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	records := []content.ContentRecord{
		c.record("tiktok_trend_001", "인기 TikTok 동영상 #1",
			"샘플 트렌딩 동영상입니다.",
			"tiktok_user_1", 1500000, 85000, 3200, 1500,
			[]string{"#trending", "#viral", "#funny"}, now),
		c.record("tiktok_trend_002", "인기 TikTok 동영상 #2",
			"또 다른 샘플 트렌딩 동영상입니다.",
			"tiktok_user_2", 1200000, 72000, 2800, 1200,
			[]string{"#dance", "#music", "#trending"}, now),
		c.record("tiktok_trend_003", "인기 TikTok 동영상 #3",
			"세 번째 샘플 트렌딩 동영상입니다.",
			"tiktok_user_3", 980000, 65000, 2400, 980,
			[]string{"#comedy", "#funny", "#viral"}, now),
	}
	return capRecords(records, maxResults), nil
}

// Search returns fixture results derived from the query.
func (c *TikTokClient) Search(ctx context.Context, query string, maxResults int) ([]content.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	records := []content.ContentRecord{
		c.record(
			fmt.Sprintf("tiktok_search_%s_001", query),
			fmt.Sprintf("'%s' 관련 TikTok 동영상 #1", query),
			fmt.Sprintf("'%s' 키워드로 검색된 샘플 동영상입니다.", query),
			"tiktok_search_user_1", 850000, 45000, 1800, 0,
			[]string{"#" + query, "#search", "#viral"}, now),
		c.record(
			fmt.Sprintf("tiktok_search_%s_002", query),
			fmt.Sprintf("'%s' 관련 TikTok 동영상 #2", query),
			fmt.Sprintf("'%s' 키워드로 검색된 또 다른 샘플 동영상입니다.", query),
			"tiktok_search_user_2", 720000, 38000, 1500, 0,
			[]string{"#" + query, "#trending", "#funny"}, now),
	}
	return capRecords(records, maxResults), nil
}

// TrendingHashtags returns the fixture hashtag ranking. Scores descend in
// 0.1 steps from 1.0 and each entry relates to the next three.
func (c *TikTokClient) TrendingHashtags(ctx context.Context, maxResults int) ([]content.HashtagStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tags := []struct {
		tag   string
		posts int64
		views int64
	}{
		{"#trending", 1500000, 50000000},
		{"#viral", 1200000, 45000000},
		{"#funny", 980000, 38000000},
		{"#dance", 850000, 32000000},
		{"#music", 720000, 28000000},
		{"#comedy", 650000, 25000000},
		{"#fyp", 580000, 22000000},
		{"#foryou", 520000, 20000000},
	}
	return fixtureHashtags(content.PlatformTikTok, tags, maxResults), nil
}

// record builds one fixture payload and runs it through the shared map
// normalizer, the same path a real API response would take.
func (c *TikTokClient) record(id, title, description, author string, views, likes, comments, shares int64, hashtags []string, now time.Time) content.ContentRecord {
	fields := map[string]interface{}{
		"id":            id,
		"title":         title,
		"description":   description,
		"url":           fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", author, id),
		"author":        author,
		"author_url":    "https://www.tiktok.com/@" + author,
		"view_count":    views,
		"like_count":    likes,
		"comment_count": comments,
		"published_at":  now,
		"hashtags":      hashtags,
		"language":      "ko",
		"region":        "KR",
	}
	if shares > 0 {
		fields["share_count"] = shares
	}
	return normalize.Record(fields, content.PlatformTikTok)
}

func capRecords(records []content.ContentRecord, maxResults int) []content.ContentRecord {
	if maxResults > 0 && len(records) > maxResults {
		records = records[:maxResults]
	}
	return records
}

func fixtureHashtags(platform content.Platform, tags []struct {
	tag   string
	posts int64
	views int64
}, maxResults int) []content.HashtagStat {
	n := len(tags)
	if maxResults > 0 && maxResults < n {
		n = maxResults
	}

	stats := make([]content.HashtagStat, 0, n)
	for i := 0; i < n; i++ {
		t := tags[i]
		posts, views := t.posts, t.views

		var related []string
		for j := i + 1; j < i+4 && j < len(tags); j++ {
			related = append(related, tags[j].tag)
		}

		stats = append(stats, content.HashtagStat{
			Hashtag:         t.tag,
			PostCount:       &posts,
			ViewCount:       &views,
			Platform:        platform,
			TrendingScore:   1.0 - float64(i)*0.1,
			RelatedHashtags: related,
		})
	}
	return stats
}
