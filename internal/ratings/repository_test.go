package ratings

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/airwave/internal/shared"
	testutil "github.com/desertthunder/airwave/internal/testing"
)

func TestSubmit(t *testing.T) {
	t.Run("inserts a new row", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))
		ctx := context.Background()

		ok, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp)
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if !ok {
			t.Error("expected submit to report an affected row")
		}
	})

	t.Run("overwrites on resubmission", func(t *testing.T) {
		driver := testutil.MemoryDriver(t)
		repo := NewRepository(driver)
		ctx := context.Background()

		for _, value := range []int{5, 2} {
			if _, err := repo.Submit(ctx, KindStar, "songB", "user1", value); err != nil {
				t.Fatalf("submit %d failed: %v", value, err)
			}
		}

		var count int
		err := driver.QueryOne(ctx, "SELECT COUNT(*) FROM star_ratings WHERE song_id = ? AND user_id = ?",
			"songB", "user1").Scan(&count)
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one row for the key, got %d", count)
		}

		value, err := repo.UserValue(ctx, KindStar, "songB", "user1")
		if err != nil {
			t.Fatalf("user value failed: %v", err)
		}
		if value == nil || *value != 2 {
			t.Errorf("expected stored value 2, got %v", value)
		}
	})

	t.Run("rejects out-of-domain values", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))
		ctx := context.Background()

		cases := []struct {
			kind  Kind
			value int
		}{
			{KindSentiment, 0},
			{KindSentiment, 2},
			{KindStar, 0},
			{KindStar, 6},
			{KindStar, -1},
		}

		for _, tc := range cases {
			_, err := repo.Submit(ctx, tc.kind, "songA", "user1", tc.value)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("%s %d: expected ErrInvalidInput, got %v", tc.kind, tc.value, err)
			}
		}
	})

	t.Run("sentiment and star are independent", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))
		ctx := context.Background()

		if _, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp); err != nil {
			t.Fatalf("sentiment submit failed: %v", err)
		}
		if _, err := repo.Submit(ctx, KindStar, "songA", "user1", 3); err != nil {
			t.Fatalf("star submit failed: %v", err)
		}

		sentiment, err := repo.UserValue(ctx, KindSentiment, "songA", "user1")
		if err != nil || sentiment == nil || *sentiment != ThumbsUp {
			t.Errorf("expected sentiment +1, got %v (%v)", sentiment, err)
		}

		star, err := repo.UserValue(ctx, KindStar, "songA", "user1")
		if err != nil || star == nil || *star != 3 {
			t.Errorf("expected star 3, got %v (%v)", star, err)
		}
	})
}

func TestSentimentSummary(t *testing.T) {
	t.Run("counts votes per song", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))
		ctx := context.Background()

		submissions := []struct {
			user  string
			value int
		}{
			{"user1", ThumbsUp},
			{"user2", ThumbsUp},
			{"user3", ThumbsDown},
		}
		for _, s := range submissions {
			if _, err := repo.Submit(ctx, KindSentiment, "songA", s.user, s.value); err != nil {
				t.Fatalf("submit failed: %v", err)
			}
		}

		summary, err := repo.SentimentSummary(ctx, "songA")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}

		if summary.ThumbsUp != 2 || summary.ThumbsDown != 1 {
			t.Errorf("expected {2 1}, got {%d %d}", summary.ThumbsUp, summary.ThumbsDown)
		}
	})

	t.Run("zero state", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		summary, err := repo.SentimentSummary(context.Background(), "unrated")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.ThumbsUp != 0 || summary.ThumbsDown != 0 {
			t.Errorf("expected zero counts, got {%d %d}", summary.ThumbsUp, summary.ThumbsDown)
		}
	})
}

func TestStarSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("averages to one decimal", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		for user, value := range map[string]int{"user1": 5, "user2": 4} {
			if _, err := repo.Submit(ctx, KindStar, "songA", user, value); err != nil {
				t.Fatalf("submit failed: %v", err)
			}
		}

		summary, err := repo.StarSummary(ctx, "songA")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}

		if summary.Average != 4.5 || summary.Total != 2 {
			t.Errorf("expected {4.5 2}, got {%v %d}", summary.Average, summary.Total)
		}
	})

	t.Run("single vote reports exact average", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		if _, err := repo.Submit(ctx, KindStar, "songA", "user1", 4); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		summary, err := repo.StarSummary(ctx, "songA")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.Average != 4.0 || summary.Total != 1 {
			t.Errorf("expected {4.0 1}, got {%v %d}", summary.Average, summary.Total)
		}
	})

	t.Run("rounds the repeating mean", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		// {5, 4, 4} -> 4.333... -> 4.3
		for user, value := range map[string]int{"user1": 5, "user2": 4, "user3": 4} {
			if _, err := repo.Submit(ctx, KindStar, "songA", user, value); err != nil {
				t.Fatalf("submit failed: %v", err)
			}
		}

		summary, err := repo.StarSummary(ctx, "songA")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.Average != 4.3 {
			t.Errorf("expected 4.3, got %v", summary.Average)
		}
	})

	t.Run("resubmission replaces the vote", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		if _, err := repo.Submit(ctx, KindStar, "songB", "user1", 5); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if _, err := repo.Submit(ctx, KindStar, "songB", "user1", 2); err != nil {
			t.Fatalf("resubmit failed: %v", err)
		}

		summary, err := repo.StarSummary(ctx, "songB")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.Average != 2.0 || summary.Total != 1 {
			t.Errorf("expected {2.0 1}, got {%v %d}", summary.Average, summary.Total)
		}
	})

	t.Run("zero state", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		summary, err := repo.StarSummary(ctx, "unrated")
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.Average != 0 || summary.Total != 0 {
			t.Errorf("expected {0 0}, got {%v %d}", summary.Average, summary.Total)
		}
	})
}

func TestUserValue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored value", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		if _, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		value, err := repo.UserValue(ctx, KindSentiment, "songA", "user1")
		if err != nil {
			t.Fatalf("user value failed: %v", err)
		}
		if value == nil || *value != ThumbsUp {
			t.Errorf("expected +1, got %v", value)
		}
	})

	t.Run("nil for unknown user", func(t *testing.T) {
		repo := NewRepository(testutil.MemoryDriver(t))

		if _, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		value, err := repo.UserValue(ctx, KindSentiment, "songA", "user9")
		if err != nil {
			t.Fatalf("user value failed: %v", err)
		}
		if value != nil {
			t.Errorf("expected nil for unrated user, got %d", *value)
		}
	})
}

func TestAllSummaries(t *testing.T) {
	repo := NewRepository(testutil.MemoryDriver(t))
	ctx := context.Background()

	if _, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := repo.Submit(ctx, KindStar, "songB", "user1", 4); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := repo.Submit(ctx, KindStar, "songA", "user2", 2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	summaries, err := repo.AllSummaries(ctx)
	if err != nil {
		t.Fatalf("all summaries failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(summaries))
	}

	if summaries[0].SongID != "songA" || summaries[1].SongID != "songB" {
		t.Errorf("expected songs sorted by id, got %q, %q", summaries[0].SongID, summaries[1].SongID)
	}

	songA := summaries[0]
	if songA.Sentiment.ThumbsUp != 1 || songA.Star.Total != 1 || songA.Star.Average != 2.0 {
		t.Errorf("unexpected songA summary: %+v", songA)
	}
}

func TestStorageFailurePropagates(t *testing.T) {
	repo := NewRepository(testutil.ClosedDriver(t))
	ctx := context.Background()

	if _, err := repo.Submit(ctx, KindSentiment, "songA", "user1", ThumbsUp); err == nil {
		t.Error("expected error submitting on closed driver")
	}

	if _, err := repo.SentimentSummary(ctx, "songA"); err == nil {
		t.Error("expected error aggregating on closed driver")
	}
}
