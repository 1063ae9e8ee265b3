package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
)

// CollaboratorRegistry looks up the registered collaborator for a
// platform.
type CollaboratorRegistry interface {
	Collaborator(p content.Platform) (content.PlatformCollaborator, bool)
}

// PlatformHandler handles the per-platform facade endpoints. Unlike the
// integrated endpoints, a failure of the requested platform is the
// failure of the whole request.
type PlatformHandler struct {
	registry CollaboratorRegistry
	video    content.VideoCollaborator
	log      *logrus.Logger
}

// NewPlatformHandler creates a new platform handler.
func NewPlatformHandler(registry CollaboratorRegistry, video content.VideoCollaborator, log *logrus.Logger) *PlatformHandler {
	return &PlatformHandler{
		registry: registry,
		video:    video,
		log:      log,
	}
}

// GetTrending returns one platform's trending content.
func (h *PlatformHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	collaborator, ok := h.collaborator(w, r)
	if !ok {
		return
	}

	maxResults := queryInt(r, "max_results", 20)
	records, err := collaborator.GetTrending(r.Context(), maxResults)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to get trending content")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"platform": collaborator.Name(),
		"results":  records,
		"total":    len(records),
	})
}

// Search returns one platform's search results.
func (h *PlatformHandler) Search(w http.ResponseWriter, r *http.Request) {
	collaborator, ok := h.collaborator(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	maxResults := queryInt(r, "max_results", 20)
	records, err := collaborator.Search(r.Context(), query, maxResults)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to search content")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"platform": collaborator.Name(),
		"query":    query,
		"results":  records,
		"total":    len(records),
	})
}

// GetHashtags returns one platform's trending hashtags. Platforms without
// a hashtag source yield 404.
func (h *PlatformHandler) GetHashtags(w http.ResponseWriter, r *http.Request) {
	collaborator, ok := h.collaborator(w, r)
	if !ok {
		return
	}

	source, ok := collaborator.(content.HashtagSource)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Platform does not report hashtags")
		return
	}

	maxResults := queryInt(r, "max_results", 20)
	hashtags, err := source.TrendingHashtags(r.Context(), maxResults)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to get trending hashtags")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"platform": collaborator.Name(),
		"hashtags": hashtags,
		"total":    len(hashtags),
	})
}

// GetChannelInfo returns video-platform channel details.
func (h *PlatformHandler) GetChannelInfo(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "id")
	if channelID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing channel ID")
		return
	}

	info, err := h.video.ChannelInfo(r.Context(), channelID)
	if err != nil {
		respondWithServiceError(w, h.log, err, "Failed to get channel info")
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (h *PlatformHandler) collaborator(w http.ResponseWriter, r *http.Request) (content.PlatformCollaborator, bool) {
	name := chi.URLParam(r, "platform")
	platform, ok := content.ParsePlatform(name)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Unknown platform: "+name)
		return nil, false
	}

	collaborator, ok := h.registry.Collaborator(platform)
	if !ok {
		respondWithError(w, http.StatusNotFound, "No collaborator registered for platform: "+name)
		return nil, false
	}
	return collaborator, true
}
