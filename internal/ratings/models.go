// package ratings implements the rating data model, validation, and the
// upsert-and-aggregate repository for both rating kinds.
package ratings

import "time"

// Kind selects which rating table an operation targets.
type Kind string

const (
	// KindSentiment is the binary up/down vote, value in {-1, +1}.
	KindSentiment Kind = "sentiment"
	// KindStar is the 1-5 scale vote.
	KindStar Kind = "star"
)

// table returns the persisted table name for the kind.
func (k Kind) table() string {
	switch k {
	case KindSentiment:
		return "sentiment_ratings"
	case KindStar:
		return "star_ratings"
	}
	return ""
}

// Valid reports whether value is in the kind's domain.
func (k Kind) Valid(value int) bool {
	switch k {
	case KindSentiment:
		return value == ThumbsUp || value == ThumbsDown
	case KindStar:
		return value >= MinStars && value <= MaxStars
	}
	return false
}

// Sentiment values.
const (
	ThumbsUp   = 1
	ThumbsDown = -1
)

// Star value bounds.
const (
	MinStars = 1
	MaxStars = 5
)

// Rating is one user's stored vote for a song. SongID is an opaque track
// identifier composed by the caller; UserID is an opaque client-generated
// token. At most one row exists per (SongID, UserID) pair and kind.
type Rating struct {
	ID        int64
	SongID    string
	UserID    string
	Value     int
	CreatedAt time.Time
}

// SentimentSummary aggregates the binary votes for one song.
type SentimentSummary struct {
	ThumbsUp   int
	ThumbsDown int
}

// StarSummary aggregates the 1-5 votes for one song.
//
// Average is the arithmetic mean rounded half-away-from-zero to one decimal
// place, or exactly zero when Total is zero.
type StarSummary struct {
	Average float64
	Total   int
}

// SongSummary combines both aggregates for one song, for the stats command
// and the dashboard.
type SongSummary struct {
	SongID    string
	Sentiment SentimentSummary
	Star      StarSummary
}
