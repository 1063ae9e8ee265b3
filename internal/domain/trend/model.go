package trend

import (
	"time"

	"trendlens/internal/domain/content"
)

// Batches groups normalized records by the platform that produced them.
// An absent or empty batch means that platform contributed nothing.
type Batches map[content.Platform][]content.ContentRecord

// KeywordStat accumulates per-keyword statistics during aggregation.
// A keyword is counted once per contributing record, even when it repeats
// within that record's text.
type KeywordStat struct {
	Keyword    string
	Count      int
	TotalViews int64
	Platforms  map[content.Platform]struct{}
}

// TrendingScore combines occurrence count, cumulative views and platform
// breadth into the ranking metric. Division truncates toward zero.
func (s *KeywordStat) TrendingScore() int64 {
	return int64(s.Count)*10 + s.TotalViews/1000 + int64(len(s.Platforms))*5
}

// RankedKeyword is one entry of the cross-platform trending ranking.
type RankedKeyword struct {
	Keyword       string   `json:"keyword"`
	TrendingScore int64    `json:"trending_score"`
	Count         int      `json:"count"`
	TotalViews    int64    `json:"total_views"`
	Platforms     []string `json:"platforms"`
	PlatformCount int      `json:"platform_count"`
}

// KeywordSnapshot is the event payload published after each ranking run.
type KeywordSnapshot struct {
	ID        string          `json:"id"`
	Keywords  []RankedKeyword `json:"trending_keywords"`
	Total     int             `json:"total_keywords"`
	Timestamp time.Time       `json:"timestamp"`
}

// AgeGroupProfile is static configuration associating an age cohort with
// a curated keyword dictionary, preferred platforms and a global weight
// multiplier. Profiles are data, not logic; tests substitute smaller ones.
type AgeGroupProfile struct {
	AgeGroup  string             `yaml:"age_group"`
	Keywords  []string           `yaml:"keywords"`
	Platforms []content.Platform `yaml:"platforms"`
	Weight    float64            `yaml:"weight"`
}

// AgeKeyword is one scored dictionary keyword for an age group. The
// search count is a presentation proxy derived from the score, not a real
// search-volume figure.
type AgeKeyword struct {
	Keyword       string  `json:"keyword"`
	Score         float64 `json:"score"`
	SearchCount   int     `json:"search_count"`
	TrendingLevel string  `json:"trending_level"`
}

// AgeGroupKeywordResult is the affinity estimate for one age group.
type AgeGroupKeywordResult struct {
	AgeGroup             string         `json:"age_group"`
	Keywords             []AgeKeyword   `json:"keywords"`
	TotalSearches        int            `json:"total_searches"`
	PlatformDistribution map[string]int `json:"platform_distribution"`
	TrendingScore        float64        `json:"trending_score"`
	Timestamp            time.Time      `json:"timestamp"`
}

// AgeGroupAnalysis is one age group's slice of a keyword analysis.
type AgeGroupAnalysis struct {
	Mentions         int            `json:"mentions"`
	PlatformMentions map[string]int `json:"platform_mentions"`
	EngagementScore  float64        `json:"engagement_score"`
	RelevanceScore   float64        `json:"relevance_score"`
	TrendingLevel    string         `json:"trending_level"`
}

// KeywordAnalysis is the cross-platform, cross-age-group footprint of a
// single keyword.
type KeywordAnalysis struct {
	Keyword           string                      `json:"keyword"`
	AgeGroups         map[string]AgeGroupAnalysis `json:"age_groups"`
	TotalMentions     int                         `json:"total_mentions"`
	PlatformBreakdown map[string]int              `json:"platform_breakdown"`
	TrendingTrend     string                      `json:"trending_trend"`
	RelatedKeywords   []string                    `json:"related_keywords"`
	SentimentScore    float64                     `json:"sentiment_score"`
	Timestamp         time.Time                   `json:"timestamp"`
}

// TopKeyword is one entry of an age group's trend report.
type TopKeyword struct {
	Keyword       string  `json:"keyword"`
	Score         float64 `json:"score"`
	TrendingLevel string  `json:"trending_level"`
}

// TopicStat aggregates engagement per content category.
type TopicStat struct {
	Topic         string  `json:"topic"`
	Count         int     `json:"count"`
	Engagement    float64 `json:"engagement"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// AgeGroupTrendReport is the trend deep-dive for a single age group.
type AgeGroupTrendReport struct {
	AgeGroup            string             `json:"age_group"`
	TopKeywords         []TopKeyword       `json:"top_keywords"`
	TrendingTopics      []TopicStat        `json:"trending_topics"`
	PlatformPreferences map[string]float64 `json:"platform_preferences"`
	ContentCategories   map[string]int     `json:"content_categories"`
	Timestamp           time.Time          `json:"timestamp"`
}

// FormFilter selects the content-length class of analyzer rows.
type FormFilter string

const (
	FormShorts FormFilter = "shorts"
	FormLong   FormFilter = "long"
	FormBoth   FormFilter = "both"
)

// AnalyzeRequest parameterizes one timeframe analysis run. Zero values
// take the configured defaults; the effective values are echoed back in
// the result settings.
type AnalyzeRequest struct {
	Channels            []string   `json:"channels,omitempty"`
	Keywords            []string   `json:"keywords,omitempty"`
	TimeframeDays       int        `json:"timeframe_days"`
	Form                FormFilter `json:"form"`
	MinViewCount        int64      `json:"min_view_count"`
	MinViewsPerHour     float64    `json:"min_views_per_hour"`
	MaxPerChannel       int        `json:"max_per_channel"`
	MaxPerKeyword       int        `json:"max_per_keyword"`
	ShortFormMaxSeconds int        `json:"short_form_max_seconds"`
	Region              string     `json:"region,omitempty"`
}

// AnalyzeRow is one video of a timeframe analysis. Subscriber count and
// the view-to-subscriber ratio are backfilled in place during enrichment.
type AnalyzeRow struct {
	VideoID               string     `json:"video_id"`
	ChannelID             string     `json:"channel_id,omitempty"`
	ChannelName           string     `json:"channel_name"`
	Title                 string     `json:"title"`
	PublishedAt           *time.Time `json:"published_at,omitempty"`
	ViewCount             *int64     `json:"view_count,omitempty"`
	ViewsPerHour          *float64   `json:"views_per_hour,omitempty"`
	SubscriberCount       *int64     `json:"subscriber_count,omitempty"`
	ViewToSubscriberRatio *float64   `json:"view_to_subscriber_ratio,omitempty"`
	Duration              string     `json:"duration,omitempty"`
	VideoURL              string     `json:"video_url"`
	ThumbnailURL          *string    `json:"thumbnail_url,omitempty"`
}

// AnalyzeResult reports the surviving rows plus the row counts before and
// after the threshold filter and the effective request settings.
type AnalyzeResult struct {
	Rows     []AnalyzeRow   `json:"rows"`
	Total    int            `json:"total"`
	Filtered int            `json:"filtered"`
	Settings AnalyzeRequest `json:"settings"`
}
