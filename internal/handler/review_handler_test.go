package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewScopedToGame(t *testing.T) {
	router := setupTest(t)
	other := createTestGame(t, router, "Celeste")
	game := createTestGame(t, router, "Hades")

	w := doJSON(t, router, http.MethodPost, "/api/reviews", ReviewInput{
		Game: game.ID, Rating: 5, Comment: "masterpiece",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var review ReviewResponse
	decode(t, w, &review)
	assert.Equal(t, game.ID, review.Game)
	assert.NotEqual(t, other.ID, review.Game)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestCreateReviewForMissingGame(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/reviews", ReviewInput{
		Game: 999, Rating: 5, Comment: "orphan",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReviewValidation(t *testing.T) {
	router := setupTest(t)
	game := createTestGame(t, router, "Hades")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"zero rating", map[string]any{"game": game.ID, "rating": 0, "comment": "x"}},
		{"rating too high", map[string]any{"game": game.ID, "rating": 6, "comment": "x"}},
		{"missing comment", map[string]any{"game": game.ID, "rating": 3}},
		{"missing game", map[string]any{"rating": 3, "comment": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/reviews", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAverageRatingEmptyIsNull(t *testing.T) {
	router := setupTest(t)
	game := createTestGame(t, router, "Hades")

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/average/%d", game.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary RatingSummaryResponse
	decode(t, w, &summary)
	assert.Nil(t, summary.AverageRating, "no reviews must yield null, never 0")
	assert.Zero(t, summary.ReviewCount)
}

func TestReviewLifecycleAndAggregation(t *testing.T) {
	router := setupTest(t)
	game := createTestGame(t, router, "Hades")

	var reviews []ReviewResponse
	for _, stars := range []int{5, 4, 3} {
		w := doJSON(t, router, http.MethodPost, "/api/reviews", ReviewInput{
			Game: game.ID, Rating: stars, Comment: fmt.Sprintf("%d stars", stars),
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var review ReviewResponse
		decode(t, w, &review)
		reviews = append(reviews, review)
	}

	// [5,4,3] -> mean 4.0 over 3 reviews.
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/average/%d", game.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary RatingSummaryResponse
	decode(t, w, &summary)
	require.NotNil(t, summary.AverageRating)
	assert.Equal(t, 4.0, *summary.AverageRating)
	assert.Equal(t, int64(3), summary.ReviewCount)

	// Full replace of rating+comment; the game reference stays put.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviews[2].ID), ReviewUpdateInput{
		Rating: 5, Comment: "revised",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated ReviewResponse
	decode(t, w, &updated)
	assert.Equal(t, game.ID, updated.Game)
	assert.Equal(t, 5, updated.Rating)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/average/%d", game.ID), nil)
	decode(t, w, &summary)
	require.NotNil(t, summary.AverageRating)
	assert.InDelta(t, 14.0/3.0, *summary.AverageRating, 0.0001)

	// Delete brings the count down.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", reviews[0].ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/%d", game.ID), nil)
	var remaining []ReviewResponse
	decode(t, w, &remaining)
	assert.Len(t, remaining, 2)
}

func TestUpdateReviewNotFound(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPut, "/api/reviews/999", ReviewUpdateInput{Rating: 3, Comment: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReviewNotFound(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodDelete, "/api/reviews/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewsScopedPerGame(t *testing.T) {
	router := setupTest(t)
	first := createTestGame(t, router, "Hades")
	second := createTestGame(t, router, "Celeste")

	doJSON(t, router, http.MethodPost, "/api/reviews", ReviewInput{Game: first.ID, Rating: 5, Comment: "a"})
	doJSON(t, router, http.MethodPost, "/api/reviews", ReviewInput{Game: second.ID, Rating: 2, Comment: "b"})

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []ReviewResponse
	decode(t, w, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, first.ID, reviews[0].Game)
}
