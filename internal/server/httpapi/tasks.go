package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	Text string `json:"text"`
}

type updateTaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type taskResponse struct {
	Todo *models.Task `json:"todo"`
}

type taskListResponse struct {
	Todos []*models.Task `json:"todos"`
}

// writeTaskError maps service failures to the wire. Not-found stays an empty
// 404 whether the record is missing, malformed, or owned by someone else.
func (s *HTTPServer) writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, common.ErrorValidation):
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error(r.Context(), "task error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *HTTPServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// the owner comes from the session; any owner field in the payload is
	// silently ignored by decoding only the text
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, req.Text)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, task)
}

func (s *HTTPServer) handleListTasks(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	tasks, err := s.tasks.List(r.Context(), user.ID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, taskListResponse{Todos: tasks})
}

func (s *HTTPServer) handleGetTask(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	task, err := s.tasks.GetByID(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, taskResponse{Todo: task})
}

func (s *HTTPServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	task, err := s.tasks.Update(r.Context(), chi.URLParam(r, "id"), user.ID, services.TaskPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, taskResponse{Todo: task})
}

func (s *HTTPServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	task, err := s.tasks.Delete(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, taskResponse{Todo: task})
}
