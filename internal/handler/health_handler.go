package handler

import (
	"net/http"

	"github.com/upadhyay-sonu/Task-Manager/internal/database"
)

type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			writeErrorStatus(w, http.StatusServiceUnavailable, "Database unreachable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "task-manager-backend",
	})
}

func NotFoundRoute(w http.ResponseWriter, _ *http.Request) {
	writeErrorStatus(w, http.StatusNotFound, "Route not found")
}
