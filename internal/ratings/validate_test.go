package ratings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/airwave/internal/shared"
)

func TestValidate(t *testing.T) {
	submission := func(songID, userID, rating string) Submission {
		return Submission{SongID: songID, UserID: userID, Rating: json.Number(rating)}
	}

	t.Run("accepts valid sentiment values", func(t *testing.T) {
		for _, rating := range []string{"1", "-1"} {
			value, err := Validate(KindSentiment, submission("songA", "user1", rating))
			if err != nil {
				t.Errorf("rating %s: unexpected error %v", rating, err)
			}
			if value != 1 && value != -1 {
				t.Errorf("rating %s: unexpected parsed value %d", rating, value)
			}
		}
	})

	t.Run("accepts valid star values", func(t *testing.T) {
		for _, rating := range []string{"1", "2", "3", "4", "5"} {
			if _, err := Validate(KindStar, submission("songA", "user1", rating)); err != nil {
				t.Errorf("rating %s: unexpected error %v", rating, err)
			}
		}
	})

	t.Run("rejects out-of-domain sentiment values", func(t *testing.T) {
		for _, rating := range []string{"0", "2", "-2"} {
			_, err := Validate(KindSentiment, submission("songA", "user1", rating))
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("rating %s: expected ErrInvalidInput, got %v", rating, err)
			}
		}
	})

	t.Run("rejects out-of-range and fractional star values", func(t *testing.T) {
		for _, rating := range []string{"0", "6", "-1", "3.5", "4.0"} {
			_, err := Validate(KindStar, submission("songA", "user1", rating))
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("rating %s: expected ErrInvalidInput, got %v", rating, err)
			}
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		cases := map[string]Submission{
			"empty songId":      submission("", "user1", "3"),
			"blank songId":      submission("   ", "user1", "3"),
			"empty userId":      submission("songA", "", "3"),
			"missing rating":    submission("songA", "user1", ""),
			"non-numeric value": submission("songA", "user1", "five"),
		}

		for name, s := range cases {
			if _, err := Validate(KindStar, s); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
			}
		}
	})
}
