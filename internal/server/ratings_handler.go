package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/airwave/internal/ratings"
	"github.com/desertthunder/airwave/internal/shared"
)

// RatingsHandler serves the rating endpoints for both kinds.
// Implements the [Handler] interface for registration with a [Router].
//
//	POST /api/ratings            → submit a sentiment vote
//	GET  /api/ratings/{songId}   → sentiment aggregate (+ caller's own vote)
//	POST /api/star-ratings       → submit a star vote
//	GET  /api/star-ratings/{songId} → star aggregate (+ caller's own vote)
type RatingsHandler struct {
	repo   *ratings.Repository
	logger *log.Logger
}

// NewRatingsHandler creates a RatingsHandler backed by the given repository.
func NewRatingsHandler(repo *ratings.Repository, logger *log.Logger) *RatingsHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RatingsHandler{repo: repo, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *RatingsHandler) Routes() []string {
	return []string{
		"POST /api/ratings",
		"GET /api/ratings/{songId}",
		"POST /api/star-ratings",
		"GET /api/star-ratings/{songId}",
	}
}

// kindFromPath maps the route prefix to the rating kind.
func kindFromPath(path string) ratings.Kind {
	if strings.HasPrefix(path, "/api/star-ratings") {
		return ratings.KindStar
	}
	return ratings.KindSentiment
}

// ServeHTTP dispatches to the submit or aggregate handler by method.
func (h *RatingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind := kindFromPath(r.URL.Path)

	switch r.Method {
	case http.MethodPost:
		h.submit(w, r, kind)
	case http.MethodGet:
		h.aggregate(w, r, kind)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// submit validates the payload and upserts the caller's vote.
func (h *RatingsHandler) submit(w http.ResponseWriter, r *http.Request, kind ratings.Kind) {
	var submission ratings.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, decodeError(err))
		return
	}

	value, err := ratings.Validate(kind, submission)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := h.repo.Submit(r.Context(), kind, submission.SongID, submission.UserID, value)
	if err != nil {
		h.logger.Error("rating submission failed", "kind", kind, "song_id", submission.SongID, "error", err)
		writeError(w, err)
		return
	}
	if !ok {
		// Should not happen: the upsert always inserts or updates.
		h.logger.Warn("rating submission affected no rows", "kind", kind, "song_id", submission.SongID)
		writeError(w, fmt.Errorf("rating was not recorded"))
		return
	}

	writeMessage(w, fmt.Sprintf("%s rating recorded", kind))
}

// aggregate returns the song's aggregate plus the caller's own vote when a
// userId query parameter is present. Without one, userRating is always null.
func (h *RatingsHandler) aggregate(w http.ResponseWriter, r *http.Request, kind ratings.Kind) {
	songID := r.PathValue("songId")
	userID := r.URL.Query().Get("userId")

	var userRating *int
	if userID != "" {
		var err error
		userRating, err = h.repo.UserValue(r.Context(), kind, songID, userID)
		if err != nil {
			h.logger.Error("rating lookup failed", "kind", kind, "song_id", songID, "error", err)
			writeError(w, err)
			return
		}
	}

	switch kind {
	case ratings.KindStar:
		summary, err := h.repo.StarSummary(r.Context(), songID)
		if err != nil {
			h.logger.Error("star aggregation failed", "song_id", songID, "error", err)
			writeError(w, err)
			return
		}
		writeData(w, starData{
			AverageRating: decimal(summary.Average),
			TotalRatings:  summary.Total,
			UserRating:    userRating,
		})
	default:
		summary, err := h.repo.SentimentSummary(r.Context(), songID)
		if err != nil {
			h.logger.Error("sentiment aggregation failed", "song_id", songID, "error", err)
			writeError(w, err)
			return
		}
		writeData(w, sentimentData{
			ThumbsUp:   summary.ThumbsUp,
			ThumbsDown: summary.ThumbsDown,
			UserRating: userRating,
		})
	}
}

// sentimentData is the read payload for the sentiment endpoint.
type sentimentData struct {
	ThumbsUp   int  `json:"thumbs_up"`
	ThumbsDown int  `json:"thumbs_down"`
	UserRating *int `json:"userRating"`
}

// starData is the read payload for the star endpoint.
type starData struct {
	AverageRating decimal `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
	UserRating    *int    `json:"userRating"`
}

// decodeError maps JSON decoding failures to validation errors so malformed
// bodies (including string-typed ratings) surface as 400s.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "rating" {
		return fmt.Errorf("%w: rating must be a number", shared.ErrInvalidInput)
	}
	return fmt.Errorf("%w: malformed request body", shared.ErrInvalidInput)
}
