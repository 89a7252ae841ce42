package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"gametracker/backend/internal/config"
	"gametracker/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires an in-memory database and a router with the full API
// route table, mirroring the server wiring.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	config.AppConfig = &config.Config{
		UploadDir: t.TempDir(),
		JWTSecret: "test-secret",
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/auth/register", RegisterUser)
	router.POST("/api/auth/login", LoginUser)

	router.GET("/api/games", GetGames)
	router.POST("/api/games", CreateGame)
	router.PUT("/api/games/:id", UpdateGame)
	router.DELETE("/api/games/:id", DeleteGame)

	router.GET("/api/reviews/:gameId", GetReviewsForGame)
	router.GET("/api/reviews/average/:gameId", GetAverageRating)
	router.POST("/api/reviews", CreateReview)
	router.PUT("/api/reviews/:id", UpdateReview)
	router.DELETE("/api/reviews/:id", DeleteReview)

	router.POST("/api/upload/image", UploadImage)

	return router
}

// doJSON performs one request with an optional JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
