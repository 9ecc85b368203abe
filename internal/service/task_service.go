package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type TaskStore interface {
	Create(ctx context.Context, t model.Task) error
	FindByID(ctx context.Context, id string) (model.Task, error)
	ListByUser(ctx context.Context, userID string, filter model.TaskFilter, offset int, limit int) ([]model.Task, int, error)
	Update(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskService scopes every operation to the authenticated user. A task owned
// by someone else is indistinguishable from a missing one: both come back as
// NotFound, so task ids never leak across accounts.
type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, req model.CreateTaskRequest) (model.TaskResponse, error) {
	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatusPending,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, filter model.TaskFilter) (model.TaskPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}

	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := (page - 1) * limit

	tasks, total, err := s.tasks.ListByUser(ctx, userID, filter, offset, limit)
	if err != nil {
		return model.TaskPage{}, err
	}

	data := make([]model.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, t.ToResponse())
	}

	totalPages := (total + limit - 1) / limit

	return model.TaskPage{
		Data: data,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string, userID string) (model.TaskResponse, error) {
	task, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

// UpdateTask applies only the fields present in the request; nil fields are
// left untouched.
func (s *TaskService) UpdateTask(ctx context.Context, id string, userID string, req model.UpdateTaskRequest) (model.TaskResponse, error) {
	task, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return model.TaskResponse{}, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

func (s *TaskService) ToggleTaskStatus(ctx context.Context, id string, userID string) (model.TaskResponse, error) {
	task, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return model.TaskResponse{}, err
	}

	if task.Status == model.TaskStatusCompleted {
		task.Status = model.TaskStatusPending
	} else {
		task.Status = model.TaskStatusCompleted
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string, userID string) error {
	if _, err := s.loadOwned(ctx, id, userID); err != nil {
		return err
	}

	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) loadOwned(ctx context.Context, id string, userID string) (model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			return model.Task{}, apierror.NotFound("Task not found")
		}
		return model.Task{}, err
	}

	if task.UserID != userID {
		return model.Task{}, apierror.NotFound("Task not found")
	}

	return task, nil
}
