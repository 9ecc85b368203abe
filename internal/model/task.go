package model

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

type Task struct {
	ID          string
	Title       string
	Description *string
	Status      TaskStatus
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskResponse is the wire form of a task: RFC 3339 timestamps, description
// omitted entirely when the task has none.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"userId"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

func (t Task) ToResponse() TaskResponse {
	resp := TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	return resp
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type TaskPage struct {
	Data       []TaskResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// TaskFilter narrows and pages a task listing. Status and Search are
// optional; zero Page/Limit fall back to service defaults.
type TaskFilter struct {
	Page   int
	Limit  int
	Status TaskStatus
	Search string
}
