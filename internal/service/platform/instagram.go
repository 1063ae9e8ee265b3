package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/service/normalize"
)

// InstagramConfig configures the photo-platform client. Only the
// authenticated user-media lookup talks to the real Graph API; trending,
// search and hashtags are fixture data since the official API exposes
// none of them.
type InstagramConfig struct {
	AccessToken string
}

// InstagramClient implements content.PlatformCollaborator and
// content.HashtagSource.
type InstagramClient struct {
	config     InstagramConfig
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
	now        func() time.Time
}

// NewInstagramClient creates a new photo-platform client.
func NewInstagramClient(config InstagramConfig, log *logrus.Logger) *InstagramClient {
	if config.AccessToken == "" {
		log.Warn("instagram access token not configured, user media lookups will fail")
	}
	return &InstagramClient{
		config:  config,
		baseURL: "https://graph.instagram.com/v12.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// Name returns the platform this client serves.
func (c *InstagramClient) Name() content.Platform {
	return content.PlatformInstagram
}

// GetTrending returns the fixture trending set, capped at maxResults.
func (c *InstagramClient) GetTrending(ctx context.Context, maxResults int) ([]content.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	records := []content.ContentRecord{
		c.record("instagram_trend_001", "인기 Instagram 게시물 #1",
			"샘플 트렌딩 게시물입니다.",
			"instagram_user_1", 850000, 45000, 1800, 1200,
			[]string{"#trending", "#viral", "#instagram"}, now),
		c.record("instagram_trend_002", "인기 Instagram 게시물 #2",
			"또 다른 샘플 트렌딩 게시물입니다.",
			"instagram_user_2", 720000, 38000, 1500, 980,
			[]string{"#fashion", "#style", "#trending"}, now),
		c.record("instagram_trend_003", "인기 Instagram 게시물 #3",
			"세 번째 샘플 트렌딩 게시물입니다.",
			"instagram_user_3", 650000, 32000, 1200, 850,
			[]string{"#food", "#delicious", "#viral"}, now),
	}
	return capRecords(records, maxResults), nil
}

// Search returns fixture results derived from the query.
func (c *InstagramClient) Search(ctx context.Context, query string, maxResults int) ([]content.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	records := []content.ContentRecord{
		c.record(
			fmt.Sprintf("instagram_search_%s_001", query),
			fmt.Sprintf("'%s' 관련 Instagram 게시물 #1", query),
			fmt.Sprintf("'%s' 키워드로 검색된 샘플 게시물입니다.", query),
			"instagram_search_user_1", 450000, 25000, 800, 0,
			[]string{"#" + query, "#search", "#instagram"}, now),
		c.record(
			fmt.Sprintf("instagram_search_%s_002", query),
			fmt.Sprintf("'%s' 관련 Instagram 게시물 #2", query),
			fmt.Sprintf("'%s' 키워드로 검색된 또 다른 샘플 게시물입니다.", query),
			"instagram_search_user_2", 380000, 22000, 650, 0,
			[]string{"#" + query, "#trending", "#viral"}, now),
	}
	return capRecords(records, maxResults), nil
}

// TrendingHashtags returns the fixture hashtag ranking.
func (c *InstagramClient) TrendingHashtags(ctx context.Context, maxResults int) ([]content.HashtagStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tags := []struct {
		tag   string
		posts int64
		views int64
	}{
		{"#instagram", 2500000, 80000000},
		{"#trending", 1800000, 60000000},
		{"#viral", 1500000, 50000000},
		{"#fashion", 1200000, 40000000},
		{"#food", 980000, 35000000},
		{"#travel", 850000, 30000000},
		{"#beauty", 720000, 25000000},
		{"#lifestyle", 650000, 22000000},
	}
	return fixtureHashtags(content.PlatformInstagram, tags, maxResults), nil
}

// UserMedia fetches the authenticated user's media via the Graph API.
// The API caps pages at 25 items.
func (c *InstagramClient) UserMedia(ctx context.Context, userID string, maxResults int) ([]content.ContentRecord, error) {
	if c.config.AccessToken == "" {
		return nil, c.wrap("user media", fmt.Errorf("access token not configured"))
	}
	if userID == "" {
		userID = "me"
	}

	params := url.Values{}
	params.Set("access_token", c.config.AccessToken)
	params.Set("fields", "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp,like_count,comments_count")
	params.Set("limit", fmt.Sprintf("%d", capResults(maxResults, 25)))

	var resp instagramMediaResponse
	reqURL := fmt.Sprintf("%s/%s/media?%s", c.baseURL, userID, params.Encode())
	if err := getJSON(ctx, c.httpClient, reqURL, nil, &resp); err != nil {
		return nil, c.wrap("user media", err)
	}

	records := make([]content.ContentRecord, 0, len(resp.Data))
	for _, item := range resp.Data {
		records = append(records, c.mediaToRecord(item))
	}
	return records, nil
}

func (c *InstagramClient) mediaToRecord(item instagramMedia) content.ContentRecord {
	title := item.Caption
	if title == "" {
		title = "Instagram 게시물"
	} else if len([]rune(title)) > 100 {
		title = string([]rune(title)[:100])
	}

	author := "me"
	authorURL := "https://www.instagram.com/me/"
	lang, region := "ko", "KR"

	rec := content.ContentRecord{
		ID:           item.ID,
		Title:        title,
		URL:          item.Permalink,
		Platform:     content.PlatformInstagram,
		Author:       &author,
		AuthorURL:    &authorURL,
		LikeCount:    normalize.SafeInt64(item.LikeCount),
		CommentCount: normalize.SafeInt64(item.CommentsCount),
		Hashtags:     normalize.ExtractHashtags(item.Caption),
		Language:     &lang,
		Region:       &region,
	}

	if item.Caption != "" {
		d := normalize.TruncateText(item.Caption, normalize.MaxDescriptionLength)
		rec.Description = &d
	}
	if item.ThumbnailURL != "" {
		rec.ThumbnailURL = &item.ThumbnailURL
	} else if item.MediaURL != "" {
		rec.ThumbnailURL = &item.MediaURL
	}
	if item.MediaType != "" {
		rec.Category = &item.MediaType
	}
	if ts, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
		rec.PublishedAt = &ts
	}
	return rec
}

// record builds one fixture payload and runs it through the shared map
// normalizer, the same path a real API response would take.
func (c *InstagramClient) record(id, title, description, author string, views, likes, comments, shares int64, hashtags []string, now time.Time) content.ContentRecord {
	fields := map[string]interface{}{
		"id":            id,
		"title":         title,
		"description":   description,
		"url":           fmt.Sprintf("https://www.instagram.com/p/%s/", id),
		"author":        author,
		"author_url":    fmt.Sprintf("https://www.instagram.com/%s/", author),
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
	return normalize.Record(fields, content.PlatformInstagram)
}

func (c *InstagramClient) wrap(op string, err error) error {
	return &content.CollaboratorError{Platform: content.PlatformInstagram, Op: op, Err: err}
}

type instagramMediaResponse struct {
	Data []instagramMedia `json:"data"`
}

type instagramMedia struct {
	ID            string      `json:"id"`
	Caption       string      `json:"caption"`
	MediaType     string      `json:"media_type"`
	MediaURL      string      `json:"media_url"`
	ThumbnailURL  string      `json:"thumbnail_url"`
	Permalink     string      `json:"permalink"`
	Timestamp     string      `json:"timestamp"`
	LikeCount     interface{} `json:"like_count"`
	CommentsCount interface{} `json:"comments_count"`
}
