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

// CommentService applies the ownership policy to comment operations.
type CommentService struct {
	tasks    storage.TaskStore
	comments storage.CommentStore
}

// NewCommentService constructs the service.
func NewCommentService(tasks storage.TaskStore, comments storage.CommentStore) *CommentService {
	return &CommentService{tasks: tasks, comments: comments}
}

// ListByTask returns the task's comments, newest first. Unknown tasks yield an empty list.
func (s *CommentService) ListByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	if !validID(taskID) {
		return []models.Comment{}, nil
	}
	comments, err := s.comments.ListCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments for task %s: %w", taskID, err)
	}
	return comments, nil
}

// Create attaches a comment by the caller to an existing task.
func (s *CommentService) Create(ctx context.Context, caller auth.Identity, req dto.CreateCommentRequest) (models.Comment, error) {
	taskID := strings.TrimSpace(req.Task)
	if taskID == "" {
		taskID = strings.TrimSpace(req.TaskID)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" || taskID == "" {
		return models.Comment{}, invalid("text and task are required")
	}
	if !validID(taskID) {
		return models.Comment{}, ErrTaskNotFound
	}
	if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Comment{}, ErrTaskNotFound
		}
		return models.Comment{}, fmt.Errorf("load task %s: %w", taskID, err)
	}

	created, err := s.comments.CreateComment(ctx, models.Comment{
		Text:      text,
		TaskID:    taskID,
		CreatedBy: caller.User.ID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Comment{}, ErrTaskNotFound
		}
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// Update changes the text of a comment the caller may mutate.
func (s *CommentService) Update(ctx context.Context, caller auth.Identity, id string, req dto.UpdateCommentRequest) (models.Comment, error) {
	comment, err := s.get(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}
	if !CanMutate(caller, comment.CreatedBy) {
		return models.Comment{}, ErrForbidden
	}
	if req.Text != nil {
		comment.Text = strings.TrimSpace(*req.Text)
		if comment.Text == "" {
			return models.Comment{}, invalid("text cannot be empty")
		}
	}

	updated, err := s.comments.UpdateComment(ctx, comment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, fmt.Errorf("update comment %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a comment the caller may mutate.
func (s *CommentService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	comment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(caller, comment.CreatedBy) {
		return ErrForbidden
	}
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

func (s *CommentService) get(ctx context.Context, id string) (models.Comment, error) {
	if !validID(id) {
		return models.Comment{}, ErrCommentNotFound
	}
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, fmt.Errorf("get comment %s: %w", id, err)
	}
	return comment, nil
}
