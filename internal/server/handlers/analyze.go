package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/trend"
)

// AnalyzeHandler handles the timeframe-analysis endpoint.
type AnalyzeHandler struct {
	analyzer trend.TimeframeAnalyzer
	log      *logrus.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer trend.TimeframeAnalyzer, log *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		log:      log,
	}
}

// Analyze runs the channel/keyword deep-dive pipeline for the posted
// request.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req trend.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to run analysis")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
