package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/trend"
)

// AgeGroupHandler handles age-cohort affinity endpoints.
type AgeGroupHandler struct {
	analyzer trend.AgeAnalyzer
	log      *logrus.Logger
}

// NewAgeGroupHandler creates a new age-group handler.
func NewAgeGroupHandler(analyzer trend.AgeAnalyzer, log *logrus.Logger) *AgeGroupHandler {
	return &AgeGroupHandler{
		analyzer: analyzer,
		log:      log,
	}
}

// GetKeywordsByAgeGroup returns every age group's scored dictionary
// keywords.
func (h *AgeGroupHandler) GetKeywordsByAgeGroup(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	results, err := h.analyzer.KeywordsByAgeGroup(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to analyze age-group keywords")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"age_groups": results,
		"total":      len(results),
	})
}

// GetAgeGroupTrends returns the trend report for a single age group.
func (h *AgeGroupHandler) GetAgeGroupTrends(w http.ResponseWriter, r *http.Request) {
	group, err := url.PathUnescape(chi.URLParam(r, "group"))
	if err != nil || group == "" {
		respondWithError(w, http.StatusBadRequest, "Missing age group")
		return
	}

	limit := queryInt(r, "limit", 15)
	report, err := h.analyzer.AgeGroupTrends(r.Context(), group, limit)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to build age-group trend report")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// AnalyzeKeyword returns one keyword's cross-platform, cross-age-group
// footprint.
func (h *AgeGroupHandler) AnalyzeKeyword(w http.ResponseWriter, r *http.Request) {
	keyword, err := url.PathUnescape(chi.URLParam(r, "keyword"))
	if err != nil || keyword == "" {
		respondWithError(w, http.StatusBadRequest, "Missing keyword")
		return
	}

	analysis, err := h.analyzer.AnalyzeKeyword(r.Context(), keyword)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to analyze keyword")
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}
