package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/service/tasks"
)

// newTestApplication wires the router against in-memory stores and a real
// JWT service so requests exercise the full path from routing through auth
// middleware to the handlers.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	hasher := auth.NewBcryptHasher(4)
	taskStore := mocks.NewMockTaskStore()

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		},
		logger:           slog.Default(),
		userStore:        mocks.NewMockUserStore(),
		taskStore:        taskStore,
		jwtService:       auth.NewTestJWTService("integration-test-secret", time.Hour, nil),
		taskService:      tasks.NewTaskService(nil, taskStore, nil),
		passwordHasher:   hasher,
		passwordVerifier: hasher,
	}
}

func doJSON(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

func TestRouterTaskLifecycle(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	// Register
	resp := doJSON(t, router, "POST", "/auth/register", "",
		`{"username": "alice", "password": "s3cret-pass"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "User created successfully", decodeBody(t, resp)["msg"])

	// Login
	resp = doJSON(t, router, "POST", "/auth/login", "",
		`{"username": "alice", "password": "s3cret-pass"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	token, ok := decodeBody(t, resp)["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// Create a task
	resp = doJSON(t, router, "POST", "/tasks/", token,
		`{"title": "Write report", "description": "Quarterly numbers"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	created := decodeBody(t, resp)
	assert.Equal(t, false, created["completed"])
	taskID := int64(created["id"].(float64))
	require.NotZero(t, taskID)

	// List shows the one task
	resp = doJSON(t, router, "GET", "/tasks/", token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	listed := decodeBody(t, resp)
	assert.Equal(t, float64(1), listed["total_tasks"])
	assert.Len(t, listed["tasks"], 1)

	// Complete the task
	resp = doJSON(t, router, "PUT", fmt.Sprintf("/tasks/%d", taskID), token,
		`{"completed": true}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, decodeBody(t, resp)["completed"])

	// Delete it
	resp = doJSON(t, router, "DELETE", fmt.Sprintf("/tasks/%d", taskID), token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Task deleted successfully", decodeBody(t, resp)["msg"])

	// Gone now
	resp = doJSON(t, router, "GET", fmt.Sprintf("/tasks/%d", taskID), token, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouterAuthBoundary(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	t.Run("task routes require a token", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			method string
			target string
		}{
			{"GET", "/tasks/"},
			{"POST", "/tasks/"},
			{"GET", "/tasks/1"},
			{"PUT", "/tasks/1"},
			{"DELETE", "/tasks/1"},
		} {
			resp := doJSON(t, router, tc.method, tc.target, "", "")
			assert.Equal(t, http.StatusUnauthorized, resp.Code, "%s %s", tc.method, tc.target)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		t.Parallel()

		resp := doJSON(t, router, "GET", "/tasks/", "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Invalid token", decodeBody(t, resp)["msg"])
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		t.Parallel()

		first := doJSON(t, router, "POST", "/auth/register", "",
			`{"username": "carol", "password": "s3cret-pass"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, "POST", "/auth/register", "",
			`{"username": "carol", "password": "other-pass"}`)
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Equal(t, "User already exists", decodeBody(t, second)["msg"])
	})

	t.Run("wrong password is a generic 401", func(t *testing.T) {
		t.Parallel()

		reg := doJSON(t, router, "POST", "/auth/register", "",
			`{"username": "dave", "password": "s3cret-pass"}`)
		require.Equal(t, http.StatusCreated, reg.Code)

		unknown := doJSON(t, router, "POST", "/auth/login", "",
			`{"username": "nobody", "password": "s3cret-pass"}`)
		wrong := doJSON(t, router, "POST", "/auth/login", "",
			`{"username": "dave", "password": "wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, decodeBody(t, unknown)["msg"], decodeBody(t, wrong)["msg"])
	})

	t.Run("users cannot touch each other's tasks", func(t *testing.T) {
		t.Parallel()

		register := func(username string) string {
			body := fmt.Sprintf(`{"username": %q, "password": "s3cret-pass"}`, username)
			resp := doJSON(t, router, "POST", "/auth/register", "", body)
			require.Equal(t, http.StatusCreated, resp.Code)

			resp = doJSON(t, router, "POST", "/auth/login", "", body)
			require.Equal(t, http.StatusOK, resp.Code)
			return decodeBody(t, resp)["access_token"].(string)
		}

		erinToken := register("erin")
		frankToken := register("frank")

		resp := doJSON(t, router, "POST", "/tasks/", erinToken,
			`{"title": "Private", "description": "Erin's task"}`)
		require.Equal(t, http.StatusCreated, resp.Code)
		taskID := int64(decodeBody(t, resp)["id"].(float64))

		get := doJSON(t, router, "GET", fmt.Sprintf("/tasks/%d", taskID), frankToken, "")
		assert.Equal(t, http.StatusForbidden, get.Code)

		del := doJSON(t, router, "DELETE", fmt.Sprintf("/tasks/%d", taskID), frankToken, "")
		assert.Equal(t, http.StatusForbidden, del.Code)

		// Frank never sees Erin's task in his listing.
		list := doJSON(t, router, "GET", "/tasks/", frankToken, "")
		require.Equal(t, http.StatusOK, list.Code)
		assert.Equal(t, float64(0), decodeBody(t, list)["total_tasks"])
	})

	t.Run("health check is public", func(t *testing.T) {
		t.Parallel()

		resp := doJSON(t, router, "GET", "/health", "", "")
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
