package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", RegisterInput{
		Nickname: "player1",
		Email:    "player1@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Token string `json:"token"`
	}
	decode(t, w, &created)
	assert.NotEmpty(t, created.Token)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", LoginInput{
		Login:    "player1",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var logged struct {
		Token string `json:"token"`
	}
	decode(t, w, &logged)
	assert.NotEmpty(t, logged.Token)
}

func TestRegisterDuplicate(t *testing.T) {
	router := setupTest(t)

	input := RegisterInput{Nickname: "player1", Email: "p1@example.com", Password: "password123"}
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", input)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", input)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTest(t)

	doJSON(t, router, http.MethodPost, "/api/auth/register", RegisterInput{
		Nickname: "player1",
		Email:    "p1@example.com",
		Password: "password123",
	})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", LoginInput{
		Login:    "player1",
		Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", LoginInput{
		Login:    "ghost",
		Password: "password123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
