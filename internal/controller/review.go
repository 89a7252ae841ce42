package controller

import (
	"context"
	"errors"
	"strings"

	"gametracker/backend/internal/client"
	"gametracker/backend/internal/rating"
)

var (
	// ErrRatingRequired rejects a submit with no star rating selected,
	// before any network call.
	ErrRatingRequired = errors.New("please select a rating")

	// ErrCommentRequired rejects a submit with an empty comment.
	ErrCommentRequired = errors.New("comment must not be empty")
)

// ReviewPage orchestrates the review list and compose form for one game.
// The compose form is a two-state machine: idle (composing a new review)
// or editing an existing one.
type ReviewPage struct {
	api     *client.Client
	gameID  uint
	confirm ConfirmFunc

	Rating  int
	Comment string
	editing *client.Review

	reviews []client.Review
	summary rating.Summary
	reload  int
}

// NewReviewPage creates a review controller scoped to one game.
func NewReviewPage(api *client.Client, gameID uint, confirm ConfirmFunc) *ReviewPage {
	return &ReviewPage{api: api, gameID: gameID, confirm: confirm}
}

// GameID returns the owning game's id.
func (r *ReviewPage) GameID() uint {
	return r.gameID
}

// Refresh refetches the review list and the aggregate rating. The
// aggregate prefers the server-computed summary; if that call fails it
// is recomputed from the fetched reviews, and an empty review set never
// turns into an error (the view just shows "no ratings").
func (r *ReviewPage) Refresh(ctx context.Context) error {
	reviews, err := r.api.ListReviews(ctx, r.gameID)
	if err != nil {
		return err
	}
	r.reviews = reviews

	if summary, err := r.api.AverageRating(ctx, r.gameID); err == nil {
		r.summary = rating.Summary{Average: summary.AverageRating, Count: int(summary.ReviewCount)}
	} else {
		ratings := make([]int, 0, len(reviews))
		for _, rev := range reviews {
			ratings = append(ratings, rev.Rating)
		}
		r.summary = rating.Summarize(ratings)
	}
	return nil
}

// Reviews returns the current local review list.
func (r *ReviewPage) Reviews() []client.Review {
	return r.reviews
}

// Summary returns the aggregate rating from the last refresh.
func (r *ReviewPage) Summary() rating.Summary {
	return r.summary
}

// ReloadKey is bumped after every completed mutation.
func (r *ReviewPage) ReloadKey() int {
	return r.reload
}

// Edit moves the compose form into edit mode, loading the target
// review's current values. Switching targets replaces the session.
func (r *ReviewPage) Edit(review client.Review) {
	rev := review
	r.editing = &rev
	r.Rating = rev.Rating
	r.Comment = rev.Comment
}

// CancelEdit returns the compose form to idle without saving.
func (r *ReviewPage) CancelEdit() {
	r.editing = nil
	r.Rating = 0
	r.Comment = ""
}

// Editing returns the review being edited, or nil in idle mode.
func (r *ReviewPage) Editing() *client.Review {
	return r.editing
}

// Submit validates locally, then creates a review scoped to this game
// or fully replaces the one being edited (same game reference). On
// success the compose fields clear, edit mode ends, and the reload key
// bumps so the owning view refreshes list and aggregate.
func (r *ReviewPage) Submit(ctx context.Context) (client.Review, error) {
	if r.Rating == 0 {
		return client.Review{}, ErrRatingRequired
	}
	if strings.TrimSpace(r.Comment) == "" {
		return client.Review{}, ErrCommentRequired
	}

	var saved client.Review
	var err error
	if r.editing != nil {
		saved, err = r.api.UpdateReview(ctx, r.editing.ID, r.Rating, r.Comment)
	} else {
		saved, err = r.api.CreateReview(ctx, client.ReviewInput{
			Game:    r.gameID,
			Rating:  r.Rating,
			Comment: r.Comment,
		})
	}
	if err != nil {
		return client.Review{}, err
	}

	r.Rating = 0
	r.Comment = ""
	r.editing = nil
	r.reload++
	return saved, nil
}

// Delete removes a review after explicit confirmation. The local list
// only changes once the server confirms; a declined confirmation issues
// no request.
func (r *ReviewPage) Delete(ctx context.Context, review client.Review) (bool, error) {
	if !r.confirm("Are you sure you want to delete this review?") {
		return false, nil
	}

	if err := r.api.DeleteReview(ctx, review.ID); err != nil {
		return false, err
	}

	// A fresh slice so lists handed out earlier keep their contents.
	kept := make([]client.Review, 0, len(r.reviews))
	for _, rev := range r.reviews {
		if rev.ID != review.ID {
			kept = append(kept, rev)
		}
	}
	r.reviews = kept

	// The review being edited may be the one that just went away.
	if r.editing != nil && r.editing.ID == review.ID {
		r.CancelEdit()
	}

	r.reload++
	return true, nil
}
