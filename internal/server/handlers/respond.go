package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
)

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps domain errors onto HTTP statuses: upstream
// collaborator failures become 502, unknown resources 404, bad input 400,
// everything else 500.
func respondWithServiceError(w http.ResponseWriter, log *logrus.Logger, err error, message string) {
	var collabErr *content.CollaboratorError

	switch {
	case errors.Is(err, content.ErrInvalidArgument):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, content.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &collabErr):
		log.WithError(err).Error(message)
		respondWithError(w, http.StatusBadGateway, message)
	default:
		log.WithError(err).Error(message)
		respondWithError(w, http.StatusInternalServerError, message)
	}
}

// queryInt parses an integer query parameter, returning the default for a
// missing or malformed value.
func queryInt(r *http.Request, key string, defaultValue int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
