package ratings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/airwave/internal/shared"
)

// Submission is an inbound rating payload before validation. Rating is kept
// as [json.Number] so the validator can reject fractional values and so
// string-typed numerals fail JSON decoding before reaching it.
type Submission struct {
	SongID string      `json:"songId"`
	UserID string      `json:"userId"`
	Rating json.Number `json:"rating"`
}

// Validate gates a submission against the kind's contract: non-empty songId
// and userId, and a value strictly in the kind's domain (sentiment {-1, +1};
// star an integer in [1,5], decimals rejected). Validation is all-or-nothing
// with the first failing check's reason; a passing submission yields the
// parsed value.
func Validate(kind Kind, s Submission) (int, error) {
	if strings.TrimSpace(s.SongID) == "" {
		return 0, fmt.Errorf("%w: songId is required", shared.ErrInvalidInput)
	}

	if strings.TrimSpace(s.UserID) == "" {
		return 0, fmt.Errorf("%w: userId is required", shared.ErrInvalidInput)
	}

	if s.Rating == "" {
		return 0, fmt.Errorf("%w: rating is required", shared.ErrInvalidInput)
	}

	value, err := strconv.Atoi(s.Rating.String())
	if err != nil {
		return 0, fmt.Errorf("%w: rating must be an integer", shared.ErrInvalidInput)
	}

	if !kind.Valid(value) {
		switch kind {
		case KindSentiment:
			return 0, fmt.Errorf("%w: rating must be 1 or -1", shared.ErrInvalidInput)
		default:
			return 0, fmt.Errorf("%w: rating must be between %d and %d", shared.ErrInvalidInput, MinStars, MaxStars)
		}
	}

	return value, nil
}
