package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"trendlens/internal/domain/content"
)

// SearchTrendsConfig configures the web-search-trends source.
type SearchTrendsConfig struct {
	Region            string
	RequestsPerSecond float64
}

// SearchTrendsClient fetches realtime trending search keywords from the
// public daily-trends endpoint. When the upstream call fails it degrades
// to a fixed fallback ranking marked with a distinct source tag, so
// downstream consumers keep working.
type SearchTrendsClient struct {
	config     SearchTrendsConfig
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger
	now        func() time.Time
}

// NewSearchTrendsClient creates a new search-trends source.
func NewSearchTrendsClient(config SearchTrendsConfig, log *logrus.Logger) *SearchTrendsClient {
	if config.Region == "" {
		config.Region = "KR"
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &SearchTrendsClient{
		config:  config,
		baseURL: "https://trends.google.com/trends/api/dailytrends",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: limiter,
		log:     log,
		now:     time.Now,
	}
}

// sourceLive and sourceFallback tag each result with how it was obtained.
const (
	sourceLive     = "google_trends"
	sourceFallback = "google_trends_dummy"
)

// fallbackKeywords is the fixed ranking served when the upstream is
// unreachable.
var fallbackKeywords = []string{
	"뉴진스", "르세라핌", "아이브", "게임", "애니메이션",
	"취업", "이력서", "면접", "스타트업", "투자",
	"결혼", "육아", "집", "아파트", "건강",
	"운동", "다이어트", "요리", "여행", "맛집",
}

// TrendingSearches returns the region's realtime trending search
// keywords, rank-ordered from 1.
func (c *SearchTrendsClient) TrendingSearches(ctx context.Context, region string) ([]content.TrendingSearch, error) {
	if region == "" {
		region = c.config.Region
	}

	keywords, err := c.fetchDailyTrends(ctx, region)
	if err != nil {
		c.log.WithField("region", region).WithError(err).Warn("search trends fetch failed, serving fallback ranking")
		return c.ranking(fallbackKeywords, region, sourceFallback), nil
	}
	return c.ranking(keywords, region, sourceLive), nil
}

func (c *SearchTrendsClient) fetchDailyTrends(ctx context.Context, region string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("hl", "ko")
	params.Set("tz", "-540")
	params.Set("geo", region)

	body, err := getBody(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	// The endpoint prefixes its JSON with an anti-XSSI guard line.
	body = bytes.TrimPrefix(body, []byte(")]}',"))
	body = bytes.TrimLeft(body, "\n")

	var resp dailyTrendsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode daily trends: %w", err)
	}

	var keywords []string
	for _, day := range resp.Default.TrendingSearchesDays {
		for _, ts := range day.TrendingSearches {
			if ts.Title.Query != "" {
				keywords = append(keywords, ts.Title.Query)
			}
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("daily trends response contained no keywords")
	}
	return keywords, nil
}

func (c *SearchTrendsClient) ranking(keywords []string, region, source string) []content.TrendingSearch {
	now := c.now()
	results := make([]content.TrendingSearch, 0, len(keywords))
	for i, keyword := range keywords {
		results = append(results, content.TrendingSearch{
			Keyword:   keyword,
			Rank:      i + 1,
			Region:    region,
			Timestamp: now,
			Source:    source,
		})
	}
	return results
}

type dailyTrendsResponse struct {
	Default struct {
		TrendingSearchesDays []struct {
			TrendingSearches []struct {
				Title struct {
					Query string `json:"query"`
				} `json:"title"`
			} `json:"trendingSearches"`
		} `json:"trendingSearchesDays"`
	} `json:"default"`
}
