package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRouter(t *testing.T, tasks *fakeTasks) http.Handler {
	t.Helper()
	accounts := newFakeAccounts()
	accounts.sessions["tok1"] = testUser()
	return newTestServer(t, accounts, tasks)
}

func TestCreateTask(t *testing.T) {
	tasks := &fakeTasks{createOut: &models.Task{
		ID:     "t1",
		UserID: "user-1",
		Text:   "buy milk",
	}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodPost, "/todos", "tok1", `{"text":"buy milk"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "t1", body["id"])
	assert.Equal(t, "buy milk", body["text"])
	assert.Equal(t, false, body["completed"])
	// the owner id never appears on the wire
	assert.NotContains(t, body, "userId")
	assert.NotContains(t, body, "user_id")
}

func TestCreateTaskEmptyText(t *testing.T) {
	tasks := &fakeTasks{createErr: fmt.Errorf("text must not be empty: %w", common.ErrorValidation)}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodPost, "/todos", "tok1", `{"text":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTasks(t *testing.T) {
	tasks := &fakeTasks{listOut: []*models.Task{
		{ID: "t1", UserID: "user-1", Text: "one"},
		{ID: "t2", UserID: "user-1", Text: "two", Completed: true},
	}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodGet, "/todos", "tok1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Todos []map[string]any `json:"todos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Todos, 2)
	assert.Equal(t, "one", body.Todos[0]["text"])
	assert.Equal(t, true, body.Todos[1]["completed"])
}

func TestListTasksEmpty(t *testing.T) {
	tasks := &fakeTasks{listOut: []*models.Task{}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodGet, "/todos", "tok1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"todos":[]}`, rec.Body.String())
}

func TestGetTask(t *testing.T) {
	completedAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTasks{getOut: &models.Task{
		ID:          "t1",
		UserID:      "user-1",
		Text:        "done thing",
		Completed:   true,
		CompletedAt: &completedAt,
	}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodGet, "/todos/t1", "tok1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Todo map[string]any `json:"todo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "t1", body.Todo["id"])
	assert.NotNil(t, body.Todo["completedAt"])
}

// Missing, foreign-owned and malformed ids all surface the same way.
func TestGetTaskNotFound(t *testing.T) {
	tasks := &fakeTasks{getErr: common.ErrorNotFound}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodGet, "/todos/someone-elses", "tok1", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUpdateTask(t *testing.T) {
	completedAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTasks{updateOut: &models.Task{
		ID:          "t1",
		UserID:      "user-1",
		Text:        "buy milk",
		Completed:   true,
		CompletedAt: &completedAt,
	}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodPatch, "/todos/t1", "tok1", `{"completed":true}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Todo map[string]any `json:"todo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body.Todo["completed"])
	assert.NotNil(t, body.Todo["completedAt"])
}

func TestUpdateTaskNotFound(t *testing.T) {
	tasks := &fakeTasks{updateErr: common.ErrorNotFound}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodPatch, "/todos/missing", "tok1", `{"completed":true}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTask(t *testing.T) {
	tasks := &fakeTasks{deleteOut: &models.Task{ID: "t1", UserID: "user-1", Text: "gone"}}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodDelete, "/todos/t1", "tok1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Todo map[string]any `json:"todo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "t1", body.Todo["id"])
}

func TestDeleteTaskNotFound(t *testing.T) {
	tasks := &fakeTasks{deleteErr: common.ErrorNotFound}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodDelete, "/todos/missing", "tok1", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTaskUnexpectedError(t *testing.T) {
	tasks := &fakeTasks{listErr: common.ErrorInternal}
	router := authedRouter(t, tasks)

	rec := doRequest(t, router, http.MethodGet, "/todos", "tok1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
