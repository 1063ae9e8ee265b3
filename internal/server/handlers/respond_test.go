package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRespondWithServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid argument",
			err:  fmt.Errorf("%w: empty keyword", content.ErrInvalidArgument),
			want: 400,
		},
		{
			name: "not found",
			err:  fmt.Errorf("channel: %w", content.ErrNotFound),
			want: 404,
		},
		{
			name: "collaborator failure",
			err: &content.CollaboratorError{
				Platform: content.PlatformYouTube,
				Op:       "trending",
				Err:      errors.New("status 500"),
			},
			want: 502,
		},
		{
			name: "unclassified",
			err:  errors.New("boom"),
			want: 500,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithServiceError(rec, quietLogger(), c.err, "failed")
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
		})
	}
}

func TestRespondWithServiceError_WrappedCollaboratorError(t *testing.T) {
	// NotFound wrapped inside a collaborator error still maps to 404;
	// the more specific classification wins.
	err := &content.CollaboratorError{
		Platform: content.PlatformYouTube,
		Op:       "channel info",
		Err:      content.ErrNotFound,
	}
	rec := httptest.NewRecorder()
	respondWithServiceError(rec, quietLogger(), err, "failed")
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
