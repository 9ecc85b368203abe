package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/upadhyay-sonu/Task-Manager/internal/middleware"
	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/internal/service"
	"github.com/upadhyay-sonu/Task-Manager/internal/validation"
)

type TaskHandler struct {
	service *service.TaskService
}

func NewTaskHandler(service *service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload model.CreateTaskRequest
	if err := decodeValidated(r, validation.CreateTaskRules, &payload); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.CreateTask(r.Context(), identity.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query()
	filter := model.TaskFilter{
		Page:   atoiOrZero(query.Get("page")),
		Limit:  atoiOrZero(query.Get("limit")),
		Status: model.TaskStatus(query.Get("status")),
		Search: query.Get("search"),
	}

	page, err := h.service.ListTasks(r.Context(), identity.UserID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload model.UpdateTaskRequest
	if err := decodeValidated(r, validation.UpdateTaskRules, &payload); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), identity.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	task, err := h.service.ToggleTaskStatus(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErrorStatus(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func atoiOrZero(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
