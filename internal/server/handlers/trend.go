package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
)

// SearchTrendsSource reports realtime web-search trends for a region.
type SearchTrendsSource interface {
	TrendingSearches(ctx context.Context, region string) ([]content.TrendingSearch, error)
}

// TrendHandler handles the integrated cross-platform endpoints.
type TrendHandler struct {
	aggregator    trend.Aggregator
	searchTrends  SearchTrendsSource
	defaultRegion string
	log           *logrus.Logger
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(aggregator trend.Aggregator, searchTrends SearchTrendsSource, defaultRegion string, log *logrus.Logger) *TrendHandler {
	if defaultRegion == "" {
		defaultRegion = "KR"
	}
	return &TrendHandler{
		aggregator:    aggregator,
		searchTrends:  searchTrends,
		defaultRegion: defaultRegion,
		log:           log,
	}
}

// GetGlobalTrends returns trending content merged across every platform.
func (h *TrendHandler) GetGlobalTrends(w http.ResponseWriter, r *http.Request) {
	maxResults := queryInt(r, "max_results", 20)
	batches := h.aggregator.CollectTrending(r.Context(), nil, maxResults)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"platforms": batchesByPlatform(batches),
		"timestamp": time.Now(),
	})
}

// GlobalSearch searches every platform for the query.
func (h *TrendHandler) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	maxResults := queryInt(r, "max_results", 20)
	batches := h.aggregator.CollectSearch(r.Context(), query, nil, maxResults)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"query":     query,
		"platforms": batchesByPlatform(batches),
		"timestamp": time.Now(),
	})
}

// GetTrendingKeywords returns the cross-platform keyword ranking.
func (h *TrendHandler) GetTrendingKeywords(w http.ResponseWriter, r *http.Request) {
	maxPerPlatform := queryInt(r, "max_per_platform", 0)
	limit := queryInt(r, "limit", 20)

	snapshot, err := h.aggregator.TrendingKeywords(r.Context(), maxPerPlatform)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to rank trending keywords")
		return
	}

	if limit > 0 && len(snapshot.Keywords) > limit {
		snapshot.Keywords = snapshot.Keywords[:limit]
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

// GetRealtimeSearches returns the region's realtime trending search
// keywords.
func (h *TrendHandler) GetRealtimeSearches(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = h.defaultRegion
	}

	searches, err := h.searchTrends.TrendingSearches(r.Context(), region)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to get realtime searches")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"region":  region,
		"results": searches,
		"total":   len(searches),
	})
}

// batchesByPlatform reshapes collected batches for the response body,
// walking platforms in canonical order.
func batchesByPlatform(batches trend.Batches) map[string]interface{} {
	out := make(map[string]interface{}, len(batches))
	for _, p := range content.PlatformOrder {
		records, ok := batches[p]
		if !ok {
			continue
		}
		out[string(p)] = map[string]interface{}{
			"results": records,
			"total":   len(records),
		}
	}
	return out
}
