package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"trendlens/internal/domain/content"
	"trendlens/internal/service/normalize"
)

// youtubeAPIMaxResults is the API's per-page ceiling.
const youtubeAPIMaxResults = 50

// YouTubeConfig configures the video-platform client.
type YouTubeConfig struct {
	APIKey string
	Region string
	// RequestsPerSecond is the advisory client-side rate limit toward the
	// API. Zero disables limiting.
	RequestsPerSecond float64
}

// YouTubeClient talks to the YouTube Data API v3. It implements
// content.VideoCollaborator and content.HashtagSource.
type YouTubeClient struct {
	config     YouTubeConfig
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger
}

// NewYouTubeClient creates a new video-platform client.
func NewYouTubeClient(config YouTubeConfig, log *logrus.Logger) *YouTubeClient {
	if config.Region == "" {
		config.Region = "KR"
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &YouTubeClient{
		config:  config,
		baseURL: "https://www.googleapis.com/youtube/v3",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: limiter,
		log:     log,
	}
}

// Name returns the platform this client serves.
func (c *YouTubeClient) Name() content.Platform {
	return content.PlatformYouTube
}

// GetTrending returns the region's most popular videos.
func (c *YouTubeClient) GetTrending(ctx context.Context, maxResults int) ([]content.ContentRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", c.config.Region)
	params.Set("maxResults", fmt.Sprintf("%d", capResults(maxResults, youtubeAPIMaxResults)))

	var resp youtubeVideoListResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, c.wrap("trending", err)
	}

	records := make([]content.ContentRecord, 0, len(resp.Items))
	for _, v := range resp.Items {
		records = append(records, c.toRecord(v))
	}
	return records, nil
}

// TrendingHashtags derives a hashtag ranking from the current trending
// videos, since the API exposes no hashtag trends directly. A tag's score
// is the fraction of trending videos mentioning it; per-hashtag view
// counts are not available from this source.
func (c *YouTubeClient) TrendingHashtags(ctx context.Context, maxResults int) ([]content.HashtagStat, error) {
	videos, err := c.GetTrending(ctx, youtubeAPIMaxResults)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return []content.HashtagStat{}, nil
	}

	counts := make(map[string]int64)
	var firstSeen []string
	for _, v := range videos {
		for _, tag := range v.Hashtags {
			if counts[tag] == 0 {
				firstSeen = append(firstSeen, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})
	if maxResults <= 0 {
		maxResults = 20
	}
	if len(firstSeen) > maxResults {
		firstSeen = firstSeen[:maxResults]
	}

	stats := make([]content.HashtagStat, 0, len(firstSeen))
	for _, tag := range firstSeen {
		n := counts[tag]
		stats = append(stats, content.HashtagStat{
			Hashtag:       tag,
			PostCount:     &n,
			Platform:      content.PlatformYouTube,
			TrendingScore: float64(n) / float64(len(videos)),
		})
	}
	return stats, nil
}

// Search returns relevance-ordered video results for the query.
func (c *YouTubeClient) Search(ctx context.Context, query string, maxResults int) ([]content.ContentRecord, error) {
	items, err := c.searchVideos(ctx, query, "", "relevance", maxResults)
	if err != nil {
		return nil, err
	}

	records := make([]content.ContentRecord, 0, len(items))
	for _, item := range items {
		records = append(records, item.ContentRecord)
	}
	return records, nil
}

// SearchRecent returns date-ordered results for the query.
func (c *YouTubeClient) SearchRecent(ctx context.Context, query string, maxResults int) ([]content.VideoItem, error) {
	return c.searchVideos(ctx, query, "", "date", maxResults)
}

// RecentItemsByChannel returns the channel's newest uploads.
func (c *YouTubeClient) RecentItemsByChannel(ctx context.Context, channelID string, maxResults int, region string) ([]content.VideoItem, error) {
	return c.searchVideos(ctx, "", channelID, "date", maxResults)
}

// ResolveChannelID resolves a channel handle via channel search, taking
// the first match.
func (c *YouTubeClient) ResolveChannelID(ctx context.Context, handle string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("q", handle)
	params.Set("maxResults", "1")

	var resp youtubeSearchResponse
	if err := c.get(ctx, "search", params, &resp); err != nil {
		return "", c.wrap("resolve channel", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ID.ChannelID == "" {
		return "", fmt.Errorf("channel %q: %w", handle, content.ErrNotFound)
	}
	return resp.Items[0].ID.ChannelID, nil
}

// ChannelSubscriberCounts batch-fetches subscriber counts for up to 50
// channels per call (the API page-size ceiling); callers chunk larger
// sets.
func (c *YouTubeClient) ChannelSubscriberCounts(ctx context.Context, ids []string) (map[string]*int64, error) {
	if len(ids) == 0 {
		return map[string]*int64{}, nil
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", fmt.Sprintf("%d", youtubeAPIMaxResults))

	var resp youtubeChannelListResponse
	if err := c.get(ctx, "channels", params, &resp); err != nil {
		return nil, c.wrap("channel stats", err)
	}

	counts := make(map[string]*int64, len(resp.Items))
	for _, ch := range resp.Items {
		counts[ch.ID] = normalize.SafeInt64(ch.Statistics.SubscriberCount)
	}
	return counts, nil
}

// ChannelInfo returns profile details for one channel.
func (c *YouTubeClient) ChannelInfo(ctx context.Context, channelID string) (*content.ChannelInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var resp youtubeChannelListResponse
	if err := c.get(ctx, "channels", params, &resp); err != nil {
		return nil, c.wrap("channel info", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %q: %w", channelID, content.ErrNotFound)
	}

	ch := resp.Items[0]
	info := &content.ChannelInfo{
		ID:            channelID,
		Name:          ch.Snippet.Title,
		URL:           "https://www.youtube.com/channel/" + channelID,
		Platform:      content.PlatformYouTube,
		FollowerCount: normalize.SafeInt64(ch.Statistics.SubscriberCount),
		PostCount:     normalize.SafeInt64(ch.Statistics.VideoCount),
	}
	if ch.Snippet.Description != "" {
		d := ch.Snippet.Description
		info.Description = &d
	}
	if u := ch.Snippet.Thumbnails.Default.URL; u != "" {
		info.AvatarURL = &u
	}
	if ts, err := time.Parse(time.RFC3339, ch.Snippet.PublishedAt); err == nil {
		info.CreatedAt = &ts
	}
	return info, nil
}

// searchVideos runs a search and hydrates the hits with statistics and
// durations via a second videos call, since search results carry neither.
func (c *YouTubeClient) searchVideos(ctx context.Context, query, channelID, order string, maxResults int) ([]content.VideoItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("order", order)
	params.Set("maxResults", fmt.Sprintf("%d", capResults(maxResults, youtubeAPIMaxResults)))
	if query != "" {
		params.Set("q", query)
	}
	if channelID != "" {
		params.Set("channelId", channelID)
	}

	var searchResp youtubeSearchResponse
	if err := c.get(ctx, "search", params, &searchResp); err != nil {
		return nil, c.wrap("search", err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return []content.VideoItem{}, nil
	}

	detailParams := url.Values{}
	detailParams.Set("part", "snippet,statistics,contentDetails")
	detailParams.Set("id", strings.Join(ids, ","))

	var videosResp youtubeVideoListResponse
	if err := c.get(ctx, "videos", detailParams, &videosResp); err != nil {
		return nil, c.wrap("search", err)
	}

	items := make([]content.VideoItem, 0, len(videosResp.Items))
	for _, v := range videosResp.Items {
		items = append(items, content.VideoItem{
			ContentRecord: c.toRecord(v),
			ChannelID:     v.Snippet.ChannelID,
		})
	}
	return items, nil
}

// toRecord normalizes one API video resource into the canonical record
// shape. Statistics arrive as strings and convert safely; a missing or
// malformed counter maps to nil.
func (c *YouTubeClient) toRecord(v youtubeVideo) content.ContentRecord {
	title := v.Snippet.Title
	description := v.Snippet.Description

	rec := content.ContentRecord{
		ID:           v.ID,
		Title:        title,
		URL:          "https://www.youtube.com/watch?v=" + v.ID,
		Platform:     content.PlatformYouTube,
		ViewCount:    normalize.SafeInt64(v.Statistics.ViewCount),
		LikeCount:    normalize.SafeInt64(v.Statistics.LikeCount),
		CommentCount: normalize.SafeInt64(v.Statistics.CommentCount),
		Duration:     normalize.ParseISODuration(v.ContentDetails.Duration),
		Hashtags:     normalize.ExtractHashtags(description + " " + title),
	}

	if description != "" {
		d := normalize.TruncateText(description, normalize.MaxDescriptionLength)
		rec.Description = &d
	}
	if v.Snippet.ChannelTitle != "" {
		a := v.Snippet.ChannelTitle
		rec.Author = &a
	}
	if v.Snippet.ChannelID != "" {
		u := "https://www.youtube.com/channel/" + v.Snippet.ChannelID
		rec.AuthorURL = &u
	}
	if u := v.Snippet.Thumbnails.High.URL; u != "" {
		rec.ThumbnailURL = &u
	}
	if ts, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
		rec.PublishedAt = &ts
	}
	if v.Snippet.CategoryID != "" {
		cat := v.Snippet.CategoryID
		rec.Category = &cat
	}
	if v.Snippet.DefaultLanguage != "" {
		lang := v.Snippet.DefaultLanguage
		rec.Language = &lang
	}
	if v.Snippet.DefaultAudioLanguage != "" {
		region := v.Snippet.DefaultAudioLanguage
		rec.Region = &region
	}

	return rec
}

func (c *YouTubeClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.config.APIKey == "" {
		return fmt.Errorf("API key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.config.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	return getJSON(ctx, c.httpClient, reqURL, nil, out)
}

func (c *YouTubeClient) wrap(op string, err error) error {
	return &content.CollaboratorError{Platform: content.PlatformYouTube, Op: op, Err: err}
}

func capResults(n, max int) int {
	if n <= 0 || n > max {
		return max
	}
	return n
}

// API resource shapes, limited to the fields the normalizer reads.

type youtubeVideoListResponse struct {
	Items []youtubeVideo `json:"items"`
}

type youtubeVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		Title                string `json:"title"`
		Description          string `json:"description"`
		ChannelID            string `json:"channelId"`
		ChannelTitle         string `json:"channelTitle"`
		PublishedAt          string `json:"publishedAt"`
		CategoryID           string `json:"categoryId"`
		DefaultLanguage      string `json:"defaultLanguage"`
		DefaultAudioLanguage string `json:"defaultAudioLanguage"`
		Thumbnails           struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
}

type youtubeChannelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}
