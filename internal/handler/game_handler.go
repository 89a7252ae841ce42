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

type GameInput struct {
	Title       string   `json:"title" binding:"required"`
	Platform    []string `json:"platform"`
	HoursPlayed float64  `json:"hoursPlayed" binding:"gte=0"`
	Completed   bool     `json:"completed"`
	ImageURL    string   `json:"imageUrl"`
}

type GameResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Platform    []string  `json:"platform"`
	HoursPlayed float64   `json:"hoursPlayed"`
	Completed   bool      `json:"completed"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newGameResponse(game models.Game) GameResponse {
	platforms := game.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	return GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Platform:    platforms,
		HoursPlayed: game.HoursPlayed,
		Completed:   game.Completed,
		ImageURL:    game.ImageURL,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}

// endregion

// region --- Handlers ---

// GetGames godoc
// @Summary      List games
// @Description  Retrieves the full game catalog, ordered by creation time. Optional page/limit narrow the window.
// @Tags         games
// @Produce      json
// @Param        page  query int false "Page number"
// @Param        limit query int false "Items per page"
// @Success      200 {array} GameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	query := database.DB.Model(&models.Game{}).Order("created_at ASC")

	if limit, offset, paged := pageParams(c); paged {
		query = query.Offset(offset).Limit(limit)
	}

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}

	c.JSON(http.StatusOK, response)
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a new catalog entry.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := models.Game{
		Title:       input.Title,
		Platforms:   input.Platform,
		HoursPlayed: input.HoursPlayed,
		Completed:   input.Completed,
		ImageURL:    input.ImageURL,
	}

	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Full-record replace of an existing game, keyed by id.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path int       true "Game ID"
// @Param        input body GameInput true "New Game Info"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [put]
func UpdateGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game.Title = input.Title
	game.Platforms = input.Platform
	game.HoursPlayed = input.HoursPlayed
	game.Completed = input.Completed
	game.ImageURL = input.ImageURL

	if err := database.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game and every review attached to it.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := database.DB.Delete(&models.Game{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	// A game's reviews go with it.
	database.DB.Where("game_id = ?", id).Delete(&models.Review{})
	cache.Ratings.Invalidate(c.Request.Context(), uint(id))

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion
