package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gametracker/backend/internal/client"
)

// fakeBackend is an in-memory stand-in for the REST backend. Every
// request is recorded so tests can assert which calls were (not) made.
type fakeBackend struct {
	t      *testing.T
	server *httptest.Server

	games   []client.Game
	reviews []client.Review
	nextID  uint
	calls   []string

	// uploadSizes records the byte count of every image upload received,
	// including ones answered with a forced failure.
	uploadSizes []int

	failList     bool
	failUpload   bool
	failMutation bool
	failAverage  bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{t: t, nextID: 1}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) client() *client.Client {
	return client.New(b.server.URL)
}

// callCount counts recorded requests whose "METHOD /path" starts with prefix.
func (b *fakeBackend) callCount(prefix string) int {
	n := 0
	for _, call := range b.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func (b *fakeBackend) addGame(game client.Game) client.Game {
	game.ID = b.nextID
	b.nextID++
	b.games = append(b.games, game)
	return game
}

func (b *fakeBackend) addReview(gameID uint, stars int, comment string) client.Review {
	review := client.Review{ID: b.nextID, Game: gameID, Rating: stars, Comment: comment}
	b.nextID++
	b.reviews = append(b.reviews, review)
	return review
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && path == "/api/games":
		if b.failList {
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, b.games)

	case r.Method == http.MethodPost && path == "/api/games":
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		var input client.GameInput
		json.NewDecoder(r.Body).Decode(&input)
		game := b.addGame(client.Game{
			Title:       input.Title,
			Platform:    input.Platform,
			HoursPlayed: input.HoursPlayed,
			Completed:   input.Completed,
			ImageURL:    input.ImageURL,
		})
		writeJSON(w, http.StatusCreated, game)

	case r.Method == http.MethodPut && strings.HasPrefix(path, "/api/games/"):
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		id := pathID(path, "/api/games/")
		var input client.GameInput
		json.NewDecoder(r.Body).Decode(&input)
		for i, game := range b.games {
			if game.ID == id {
				b.games[i].Title = input.Title
				b.games[i].Platform = input.Platform
				b.games[i].HoursPlayed = input.HoursPlayed
				b.games[i].Completed = input.Completed
				b.games[i].ImageURL = input.ImageURL
				writeJSON(w, http.StatusOK, b.games[i])
				return
			}
		}
		writeError(w, http.StatusNotFound, "Game not found")

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/games/"):
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		id := pathID(path, "/api/games/")
		for i, game := range b.games {
			if game.ID == id {
				b.games = append(b.games[:i], b.games[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Game deleted"})
				return
			}
		}
		writeError(w, http.StatusNotFound, "Game not found")

	case r.Method == http.MethodPost && path == "/api/upload/image":
		r.ParseMultipartForm(1 << 20)
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing image field")
			return
		}
		raw, _ := io.ReadAll(file)
		b.uploadSizes = append(b.uploadSizes, len(raw))
		if b.failUpload {
			writeError(w, http.StatusInternalServerError, "upload failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"imageUrl": "/uploads/up-" + header.Filename})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/reviews/average/"):
		if b.failAverage {
			writeError(w, http.StatusInternalServerError, "aggregate failed")
			return
		}
		gameID := pathID(path, "/api/reviews/average/")
		sum, count := 0, 0
		for _, review := range b.reviews {
			if review.Game == gameID {
				sum += review.Rating
				count++
			}
		}
		var avg *float64
		if count > 0 {
			v := float64(sum) / float64(count)
			avg = &v
		}
		writeJSON(w, http.StatusOK, client.RatingSummary{AverageRating: avg, ReviewCount: int64(count)})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/reviews/"):
		gameID := pathID(path, "/api/reviews/")
		result := []client.Review{}
		for _, review := range b.reviews {
			if review.Game == gameID {
				result = append(result, review)
			}
		}
		writeJSON(w, http.StatusOK, result)

	case r.Method == http.MethodPost && path == "/api/reviews":
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		var input client.ReviewInput
		json.NewDecoder(r.Body).Decode(&input)
		review := b.addReview(input.Game, input.Rating, input.Comment)
		writeJSON(w, http.StatusCreated, review)

	case r.Method == http.MethodPut && strings.HasPrefix(path, "/api/reviews/"):
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		id := pathID(path, "/api/reviews/")
		var input struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		json.NewDecoder(r.Body).Decode(&input)
		for i, review := range b.reviews {
			if review.ID == id {
				b.reviews[i].Rating = input.Rating
				b.reviews[i].Comment = input.Comment
				writeJSON(w, http.StatusOK, b.reviews[i])
				return
			}
		}
		writeError(w, http.StatusNotFound, "Review not found")

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/reviews/"):
		if b.failMutation {
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		id := pathID(path, "/api/reviews/")
		for i, review := range b.reviews {
			if review.ID == id {
				b.reviews = append(b.reviews[:i], b.reviews[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
				return
			}
		}
		writeError(w, http.StatusNotFound, "Review not found")

	default:
		writeError(w, http.StatusNotFound, "no route")
	}
}

func pathID(path, prefix string) uint {
	id, _ := strconv.ParseUint(strings.TrimPrefix(path, prefix), 10, 32)
	return uint(id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func confirmYes(string) bool { return true }
func confirmNo(string) bool  { return false }
