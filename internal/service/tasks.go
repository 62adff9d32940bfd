package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/models/dto"
	"github.com/hongminglow/task-tracker/internal/storage"
)

// TaskService applies the ownership policy to task operations.
type TaskService struct {
	tasks storage.TaskStore
}

// NewTaskService constructs the service.
func NewTaskService(tasks storage.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns every task regardless of owner.
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task regardless of owner.
func (s *TaskService) Get(ctx context.Context, id string) (models.Task, error) {
	if !validID(id) {
		return models.Task{}, ErrTaskNotFound
	}
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// Create stores a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, caller auth.Identity, req dto.CreateTaskRequest) (models.Task, error) {
	task := models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      strings.TrimSpace(req.Status),
		CreatedBy:   caller.User.ID,
	}
	if task.Title == "" {
		return models.Task{}, invalid("title is required")
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if !models.ValidStatus(task.Status) {
		return models.Task{}, errInvalidStatus
	}

	created, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// Update applies the allow-listed fields of req to a task the caller may mutate.
func (s *TaskService) Update(ctx context.Context, caller auth.Identity, id string, req dto.UpdateTaskRequest) (models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !CanMutate(caller, task.CreatedBy) {
		return models.Task{}, ErrForbidden
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
		if task.Title == "" {
			return models.Task{}, invalid("title cannot be empty")
		}
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		task.Status = strings.TrimSpace(*req.Status)
		if !models.ValidStatus(task.Status) {
			return models.Task{}, errInvalidStatus
		}
	}

	updated, err := s.tasks.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a task the caller may mutate together with its comments.
func (s *TaskService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(caller, task.CreatedBy) {
		return ErrForbidden
	}
	if err := s.tasks.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

var errInvalidStatus = invalid(fmt.Sprintf("status must be one of %s, %s, %s",
	models.StatusTodo, models.StatusInProgress, models.StatusDone))
