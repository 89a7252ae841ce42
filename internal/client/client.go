// Package client is a typed HTTP client for the GameTracker REST API.
// The backend origin is injected at construction; nothing here reads
// global configuration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Game mirrors the wire shape of a catalog entry.
type Game struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Platform    []string  `json:"platform"`
	HoursPlayed float64   `json:"hoursPlayed"`
	Completed   bool      `json:"completed"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GameInput is the payload for creating or fully replacing a game.
type GameInput struct {
	Title       string   `json:"title"`
	Platform    []string `json:"platform"`
	HoursPlayed float64  `json:"hoursPlayed"`
	Completed   bool     `json:"completed"`
	ImageURL    string   `json:"imageUrl"`
}

// Review mirrors the wire shape of a review.
type Review struct {
	ID        uint      `json:"id"`
	Game      uint      `json:"game"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewInput is the payload for creating a review, scoped to its game.
type ReviewInput struct {
	Game    uint   `json:"game"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewUpdateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RatingSummary is the server-side aggregate for one game. AverageRating
// is nil when the game has no reviews.
type RatingSummary struct {
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int64    `json:"reviewCount"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// Client talks to one GameTracker backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given backend origin.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ResolveImageURL turns a relative image reference into an absolute URL
// on the backend origin. Absolute references pass through untouched.
func (c *Client) ResolveImageURL(ref string) string {
	if ref == "" || strings.Contains(ref, "://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// ListGames fetches the full catalog.
func (c *Client) ListGames(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.do(ctx, http.MethodGet, "/api/games", nil, &games); err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// CreateGame creates a new catalog entry and returns the stored record.
func (c *Client) CreateGame(ctx context.Context, input GameInput) (Game, error) {
	var game Game
	if err := c.do(ctx, http.MethodPost, "/api/games", input, &game); err != nil {
		return Game{}, fmt.Errorf("creating game: %w", err)
	}
	return game, nil
}

// UpdateGame replaces the full record of an existing game.
func (c *Client) UpdateGame(ctx context.Context, id uint, input GameInput) (Game, error) {
	var game Game
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/games/%d", id), input, &game); err != nil {
		return Game{}, fmt.Errorf("updating game %d: %w", id, err)
	}
	return game, nil
}

// DeleteGame deletes a game by id.
func (c *Client) DeleteGame(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/games/%d", id), nil, nil); err != nil {
		return fmt.Errorf("deleting game %d: %w", id, err)
	}
	return nil
}

// ListReviews fetches all reviews for one game.
func (c *Client) ListReviews(ctx context.Context, gameID uint) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/%d", gameID), nil, &reviews); err != nil {
		return nil, fmt.Errorf("listing reviews for game %d: %w", gameID, err)
	}
	return reviews, nil
}

// AverageRating fetches the server-computed aggregate for one game.
func (c *Client) AverageRating(ctx context.Context, gameID uint) (RatingSummary, error) {
	var summary RatingSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/average/%d", gameID), nil, &summary); err != nil {
		return RatingSummary{}, fmt.Errorf("fetching average for game %d: %w", gameID, err)
	}
	return summary, nil
}

// CreateReview creates a review scoped to input.Game.
func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", input, &review); err != nil {
		return Review{}, fmt.Errorf("creating review: %w", err)
	}
	return review, nil
}

// UpdateReview replaces the rating and comment of an existing review.
func (c *Client) UpdateReview(ctx context.Context, id uint, ratingValue int, comment string) (Review, error) {
	var review Review
	input := reviewUpdateInput{Rating: ratingValue, Comment: comment}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/%d", id), input, &review); err != nil {
		return Review{}, fmt.Errorf("updating review %d: %w", id, err)
	}
	return review, nil
}

// DeleteReview deletes a review by id.
func (c *Client) DeleteReview(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", id), nil, nil); err != nil {
		return fmt.Errorf("deleting review %d: %w", id, err)
	}
	return nil
}

// UploadImage sends one image file as multipart form data (field "image")
// and returns the stored reference.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("reading image file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/image", &buf)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.apiError(resp)
	}

	var result struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	return result.ImageURL, nil
}

// do issues one JSON request and decodes the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// apiError maps a non-2xx response into an APIError, pulling the
// backend's {"error": ...} message when present.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
