package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/internal/repository"
)

func newTestTaskService(t *testing.T) (*TaskService, *repository.MemoryTaskRepository) {
	t.Helper()

	tasks := repository.NewMemoryTaskRepository()
	return NewTaskService(tasks), tasks
}

func seedTask(t *testing.T, tasks *repository.MemoryTaskRepository, userID string, title string, createdAt time.Time) model.Task {
	t.Helper()

	task := model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    model.TaskStatusPending,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults to PENDING and omits an absent description", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		resp, err := svc.CreateTask(ctx, "user-1", model.CreateTaskRequest{Title: "Buy milk"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.ID)
		require.Equal(t, "Buy milk", resp.Title)
		require.Equal(t, model.TaskStatusPending, resp.Status)
		require.Equal(t, "user-1", resp.UserID)
		require.Empty(t, resp.Description)

		// Timestamps must be RFC 3339.
		_, err = time.Parse(time.RFC3339, resp.CreatedAt)
		require.NoError(t, err)
	})

	t.Run("keeps a provided description", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		desc := "2 liters, whole"
		resp, err := svc.CreateTask(ctx, "user-1", model.CreateTaskRequest{Title: "Buy milk", Description: &desc})
		require.NoError(t, err)
		require.Equal(t, desc, resp.Description)
	})
}

func TestGetTaskByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("another user's task reads as not found", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		task := seedTask(t, tasks, "owner", "Private", time.Now().UTC())

		_, err := svc.GetTaskByID(ctx, task.ID, "intruder")
		apiErr := requireStatus(t, err, http.StatusNotFound)
		require.Equal(t, "Task not found", apiErr.Message)

		got, err := svc.GetTaskByID(ctx, task.ID, "owner")
		require.NoError(t, err)
		require.Equal(t, task.ID, got.ID)
	})

	t.Run("missing id reads as not found", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		_, err := svc.GetTaskByID(ctx, "no-such-id", "user-1")
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty list still reports page and limit", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Empty(t, page.Data)
		require.Equal(t, model.Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}, page.Pagination)
	})

	t.Run("25 tasks at limit 10 put 5 on page 3", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)

		base := time.Now().UTC()
		for i := 0; i < 25; i++ {
			seedTask(t, tasks, "user-1", fmt.Sprintf("Task %02d", i), base.Add(time.Duration(i)*time.Second))
		}

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{Page: 3, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 5)
		require.Equal(t, model.Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3}, page.Pagination)

		// Newest first: page 3 holds the 5 oldest.
		require.Equal(t, "Task 04", page.Data[0].Title)
		require.Equal(t, "Task 00", page.Data[4].Title)
	})

	t.Run("page floors at 1 and limit clamps to 100", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		seedTask(t, tasks, "user-1", "Only", time.Now().UTC())

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{Page: -3, Limit: 1000})
		require.NoError(t, err)
		require.Equal(t, 1, page.Pagination.Page)
		require.Equal(t, 100, page.Pagination.Limit)
	})

	t.Run("scopes to the requesting user", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		seedTask(t, tasks, "user-1", "Mine", time.Now().UTC())
		seedTask(t, tasks, "user-2", "Theirs", time.Now().UTC())

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, "Mine", page.Data[0].Title)
	})

	t.Run("filters by status", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		seedTask(t, tasks, "user-1", "Open", time.Now().UTC())
		done := seedTask(t, tasks, "user-1", "Done", time.Now().UTC())

		_, err := svc.ToggleTaskStatus(ctx, done.ID, "user-1")
		require.NoError(t, err)

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{Status: model.TaskStatusCompleted})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, "Done", page.Data[0].Title)
	})

	t.Run("search matches titles case-insensitively", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		seedTask(t, tasks, "user-1", "Water the PLANTS", time.Now().UTC())
		seedTask(t, tasks, "user-1", "Call mom", time.Now().UTC())

		page, err := svc.ListTasks(ctx, "user-1", model.TaskFilter{Search: "plants"})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, "Water the PLANTS", page.Data[0].Title)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("touches only the supplied fields", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		desc := "original description"
		created, err := svc.CreateTask(ctx, "user-1", model.CreateTaskRequest{Title: "Original", Description: &desc})
		require.NoError(t, err)

		status := model.TaskStatusCompleted
		updated, err := svc.UpdateTask(ctx, created.ID, "user-1", model.UpdateTaskRequest{Status: &status})
		require.NoError(t, err)
		require.Equal(t, model.TaskStatusCompleted, updated.Status)
		require.Equal(t, "Original", updated.Title)
		require.Equal(t, desc, updated.Description)
	})

	t.Run("another user's task cannot be updated", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		task := seedTask(t, tasks, "owner", "Private", time.Now().UTC())

		title := "Hijacked"
		_, err := svc.UpdateTask(ctx, task.ID, "intruder", model.UpdateTaskRequest{Title: &title})
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestToggleTaskStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("flips PENDING to COMPLETED and back", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		created, err := svc.CreateTask(ctx, "user-1", model.CreateTaskRequest{Title: "Flip me"})
		require.NoError(t, err)
		require.Equal(t, model.TaskStatusPending, created.Status)

		toggled, err := svc.ToggleTaskStatus(ctx, created.ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, model.TaskStatusCompleted, toggled.Status)

		toggledBack, err := svc.ToggleTaskStatus(ctx, created.ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, model.TaskStatusPending, toggledBack.Status)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the task; a second delete is not found", func(t *testing.T) {
		svc, _ := newTestTaskService(t)

		created, err := svc.CreateTask(ctx, "user-1", model.CreateTaskRequest{Title: "Ephemeral"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTask(ctx, created.ID, "user-1"))

		err = svc.DeleteTask(ctx, created.ID, "user-1")
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("another user's task cannot be deleted", func(t *testing.T) {
		svc, tasks := newTestTaskService(t)
		task := seedTask(t, tasks, "owner", "Private", time.Now().UTC())

		err := svc.DeleteTask(ctx, task.ID, "intruder")
		requireStatus(t, err, http.StatusNotFound)

		_, err = svc.GetTaskByID(ctx, task.ID, "owner")
		require.NoError(t, err)
	})
}
