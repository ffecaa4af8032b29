package ratings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/desertthunder/airwave/internal/shared"
	"github.com/desertthunder/airwave/internal/storage"
)

// Repository owns reads and writes for both rating tables. All operations are
// single statements; atomicity for concurrent submissions on the same
// (song_id, user_id) key is the engine's single-statement atomicity.
type Repository struct {
	driver storage.Driver
}

// NewRepository creates a Repository backed by the given driver.
func NewRepository(driver storage.Driver) *Repository {
	return &Repository{driver: driver}
}

// Submit records value for (songID, userID), inserting a new row or
// overwriting the existing one and refreshing created_at in one atomic
// statement. Returns true when a row was inserted or updated.
//
// Validation is the caller's responsibility; the domain check here only
// guards against values that bypassed it.
func (r *Repository) Submit(ctx context.Context, kind Kind, songID, userID string, value int) (bool, error) {
	if !kind.Valid(value) {
		return false, fmt.Errorf("%w: %s rating %d out of range", shared.ErrInvalidInput, kind, value)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (song_id, user_id, value, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (song_id, user_id)
		DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP
	`, kind.table())

	result, err := r.driver.Execute(ctx, query, songID, userID, value)
	if err != nil {
		return false, fmt.Errorf("failed to submit %s rating: %w", kind, err)
	}

	return result.Affected > 0, nil
}

// SentimentSummary returns the up/down counts for songID. A song with no
// votes yields zero counts, not an error.
func (r *Repository) SentimentSummary(ctx context.Context, songID string) (SentimentSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END), 0)
		FROM sentiment_ratings
		WHERE song_id = ?
	`

	var summary SentimentSummary
	err := r.driver.QueryOne(ctx, query, songID).Scan(&summary.ThumbsUp, &summary.ThumbsDown)
	if err != nil {
		return SentimentSummary{}, fmt.Errorf("failed to aggregate sentiment ratings: %w", r.driver.Classify(err))
	}

	return summary, nil
}

// StarSummary returns the mean star value for songID rounded to one decimal
// place, with the vote count. A song with no votes yields {0, 0}.
func (r *Repository) StarSummary(ctx context.Context, songID string) (StarSummary, error) {
	query := `
		SELECT COALESCE(AVG(value), 0), COUNT(*)
		FROM star_ratings
		WHERE song_id = ?
	`

	var average float64
	var total int
	err := r.driver.QueryOne(ctx, query, songID).Scan(&average, &total)
	if err != nil {
		return StarSummary{}, fmt.Errorf("failed to aggregate star ratings: %w", r.driver.Classify(err))
	}

	return StarSummary{Average: roundTenth(average), Total: total}, nil
}

// UserValue returns the caller's stored value for (songID, userID), or nil
// when the user has not rated that song. nil is distinct from any valid
// value; star ratings start at 1 and sentiment is never 0.
func (r *Repository) UserValue(ctx context.Context, kind Kind, songID, userID string) (*int, error) {
	query := fmt.Sprintf("SELECT value FROM %s WHERE song_id = ? AND user_id = ?", kind.table())

	var value int
	err := r.driver.QueryOne(ctx, query, songID, userID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s rating: %w", kind, r.driver.Classify(err))
	}

	return &value, nil
}

// Summary combines both aggregates for one song.
func (r *Repository) Summary(ctx context.Context, songID string) (SongSummary, error) {
	sentiment, err := r.SentimentSummary(ctx, songID)
	if err != nil {
		return SongSummary{}, err
	}

	star, err := r.StarSummary(ctx, songID)
	if err != nil {
		return SongSummary{}, err
	}

	return SongSummary{SongID: songID, Sentiment: sentiment, Star: star}, nil
}

// AllSummaries returns the combined aggregates for every song with at least
// one rating of either kind, sorted by song id.
func (r *Repository) AllSummaries(ctx context.Context) ([]SongSummary, error) {
	bySong := make(map[string]*SongSummary)

	get := func(songID string) *SongSummary {
		if s, ok := bySong[songID]; ok {
			return s
		}
		s := &SongSummary{SongID: songID}
		bySong[songID] = s
		return s
	}

	sentimentQuery := `
		SELECT song_id,
			SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END)
		FROM sentiment_ratings
		GROUP BY song_id
	`

	rows, err := r.driver.QueryMany(ctx, sentimentQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list sentiment ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var songID string
		var up, down int
		if err := rows.Scan(&songID, &up, &down); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment summary: %w", err)
		}
		s := get(songID)
		s.Sentiment = SentimentSummary{ThumbsUp: up, ThumbsDown: down}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sentiment ratings: %w", r.driver.Classify(err))
	}

	starQuery := `
		SELECT song_id, AVG(value), COUNT(*)
		FROM star_ratings
		GROUP BY song_id
	`

	rows, err = r.driver.QueryMany(ctx, starQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list star ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var songID string
		var average float64
		var total int
		if err := rows.Scan(&songID, &average, &total); err != nil {
			return nil, fmt.Errorf("failed to scan star summary: %w", err)
		}
		s := get(songID)
		s.Star = StarSummary{Average: roundTenth(average), Total: total}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list star ratings: %w", r.driver.Classify(err))
	}

	summaries := make([]SongSummary, 0, len(bySong))
	for _, s := range bySong {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SongID < summaries[j].SongID
	})

	return summaries, nil
}

// roundTenth rounds half away from zero to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
