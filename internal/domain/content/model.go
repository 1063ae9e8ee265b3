package content

import (
	"time"
)

// Platform identifies a supported content source.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

// PlatformOrder is the canonical iteration order for multi-platform
// operations. Aggregation results must not depend on map iteration order,
// so every fan-in walks platforms in this order.
var PlatformOrder = []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram}

// ParsePlatform validates a platform name from a request parameter.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram:
		return Platform(s), true
	}
	return "", false
}

// ContentRecord is the canonical form of any trending or search item,
// regardless of source platform. Identity is (platform, id); IDs may
// collide across platforms.
type ContentRecord struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	URL          string     `json:"url"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	Platform     Platform   `json:"platform"`
	Author       *string    `json:"author,omitempty"`
	AuthorURL    *string    `json:"author_url,omitempty"`
	ViewCount    *int64     `json:"view_count,omitempty"`
	LikeCount    *int64     `json:"like_count,omitempty"`
	CommentCount *int64     `json:"comment_count,omitempty"`
	ShareCount   *int64     `json:"share_count,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Hashtags     []string   `json:"hashtags,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Language     *string    `json:"language,omitempty"`
	Region       *string    `json:"region,omitempty"`
}

// DescriptionText returns the description or "" when absent.
func (r ContentRecord) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// VideoItem is a content record enriched with the owning channel ID,
// which the video platform exposes but the canonical record does not carry.
type VideoItem struct {
	ContentRecord
	ChannelID string `json:"channel_id,omitempty"`
}

// HashtagStat describes one trending hashtag on a single platform.
type HashtagStat struct {
	Hashtag         string   `json:"hashtag"`
	PostCount       *int64   `json:"post_count,omitempty"`
	ViewCount       *int64   `json:"view_count,omitempty"`
	Platform        Platform `json:"platform"`
	TrendingScore   float64  `json:"trending_score"`
	RelatedHashtags []string `json:"related_hashtags,omitempty"`
}

// ChannelInfo describes a channel or account on a platform.
type ChannelInfo struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	URL            string     `json:"url"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	Platform       Platform   `json:"platform"`
	FollowerCount  *int64     `json:"follower_count,omitempty"`
	FollowingCount *int64     `json:"following_count,omitempty"`
	PostCount      *int64     `json:"post_count,omitempty"`
	Verified       *bool      `json:"verified,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// TrendingSearch is one entry of a web-search-trends ranking.
type TrendingSearch struct {
	Keyword   string    `json:"keyword"`
	Rank      int       `json:"rank"`
	Region    string    `json:"region"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}
