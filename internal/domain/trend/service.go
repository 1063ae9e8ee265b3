package trend

import (
	"context"

	"trendlens/internal/domain/content"
)

// Collector fans a request out to platform collaborators and fans the
// normalized batches back in. Individual collaborator failures degrade
// that platform's batch to empty; they never abort the collection.
type Collector interface {
	// CollectTrending gathers trending batches from the given platforms
	// (all registered platforms when nil).
	CollectTrending(ctx context.Context, platforms []content.Platform, maxPerPlatform int) Batches

	// CollectSearch gathers search-result batches for the query.
	CollectSearch(ctx context.Context, query string, platforms []content.Platform, maxPerPlatform int) Batches
}

// Aggregator derives the cross-platform trending-keyword ranking.
type Aggregator interface {
	Collector

	// RankKeywords extracts and scores keywords from the batches and
	// returns the full ranking, best first. Callers slice the top N.
	RankKeywords(batches Batches) []RankedKeyword

	// TrendingKeywords collects fresh batches, ranks them and publishes
	// a snapshot event when an event bus is configured.
	TrendingKeywords(ctx context.Context, maxPerPlatform int) (*KeywordSnapshot, error)
}

// AgeAnalyzer estimates age-cohort keyword affinities.
type AgeAnalyzer interface {
	// KeywordsByAgeGroup scores every configured age group's dictionary
	// against freshly collected trending batches.
	KeywordsByAgeGroup(ctx context.Context, limit int) ([]AgeGroupKeywordResult, error)

	// AnalyzeKeyword reports one keyword's cross-platform, cross-age-group
	// footprint based on search results.
	AnalyzeKeyword(ctx context.Context, keyword string) (*KeywordAnalysis, error)

	// AgeGroupTrends builds the trend report for a single age group.
	// Returns ErrInvalidArgument for an unconfigured group.
	AgeGroupTrends(ctx context.Context, ageGroup string, limit int) (*AgeGroupTrendReport, error)
}

// TimeframeAnalyzer runs the channel/keyword deep-dive pipeline.
type TimeframeAnalyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)
}
