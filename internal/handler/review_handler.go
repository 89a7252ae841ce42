package handler

import (
	"net/http"
	"strconv"
	"time"

	"gametracker/backend/internal/cache"
	"gametracker/backend/internal/database"
	"gametracker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ReviewInput struct {
	Game    uint   `json:"game" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ReviewUpdateInput carries the replaceable fields of a review. The game
// reference is immutable and deliberately absent.
type ReviewUpdateInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	Game      uint      `json:"game"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingSummaryResponse struct {
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int64    `json:"reviewCount"`
}

func newReviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Game:      review.GameID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// endregion

// region --- Handlers ---

// GetReviewsForGame godoc
// @Summary      List reviews for a game
// @Description  Retrieves all reviews for one game, newest first.
// @Tags         reviews
// @Produce      json
// @Param        gameId path int true "Game ID"
// @Success      200 {array} ReviewResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reviews/{gameId} [get]
func GetReviewsForGame(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var reviews []models.Review
	if err := database.DB.Where("game_id = ?", gameID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, newReviewResponse(review))
	}

	c.JSON(http.StatusOK, response)
}

// GetAverageRating godoc
// @Summary      Aggregate rating for a game
// @Description  Returns the mean rating and review count for one game. averageRating is null when the game has no reviews.
// @Tags         reviews
// @Produce      json
// @Param        gameId path int true "Game ID"
// @Success      200 {object} RatingSummaryResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reviews/average/{gameId} [get]
func GetAverageRating(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	if avg, count, ok := cache.Ratings.Get(c.Request.Context(), uint(gameID)); ok {
		c.JSON(http.StatusOK, RatingSummaryResponse{AverageRating: avg, ReviewCount: count})
		return
	}

	var row struct {
		Avg         *float64
		ReviewCount int64
	}
	err = database.DB.Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS review_count").
		Where("game_id = ?", gameID).
		Scan(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate reviews"})
		return
	}

	cache.Ratings.Set(c.Request.Context(), uint(gameID), row.Avg, row.ReviewCount)

	c.JSON(http.StatusOK, RatingSummaryResponse{AverageRating: row.Avg, ReviewCount: row.ReviewCount})
}

// CreateReview godoc
// @Summary      Create a review
// @Description  Attaches a new review to the referenced game.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        input body ReviewInput true "Review Info"
// @Success      201 {object} ReviewResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, input.Game).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	review := models.Review{
		GameID:  input.Game,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	cache.Ratings.Invalidate(c.Request.Context(), review.GameID)

	c.JSON(http.StatusCreated, newReviewResponse(review))
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Replaces the rating and comment of an existing review. The game reference never changes.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path int               true "Review ID"
// @Param        input body ReviewUpdateInput true "New Review Info"
// @Success      200 {object} ReviewResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Review not found"
// @Failure      500 {object} ErrorResponse
// @Router       /reviews/{id} [put]
func UpdateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	var input ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	if err := database.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	cache.Ratings.Invalidate(c.Request.Context(), review.GameID)

	c.JSON(http.StatusOK, newReviewResponse(review))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Deletes an existing review.
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200 {object} map[string]string "{"message": "Review deleted"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Review not found"
// @Router       /reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	// Load first so the owning game's cache entry can be invalidated.
	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	cache.Ratings.Invalidate(c.Request.Context(), review.GameID)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// endregion
