package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/task-tracker/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateEmail changes a user's email and returns the updated record.
	UpdateEmail(ctx context.Context, id, email string) (models.User, error)
}

// TaskStore captures persistence operations for tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	// DeleteTask removes the task and all of its comments as one unit.
	DeleteTask(ctx context.Context, id string) error
}

// CommentStore captures persistence operations for comments.
type CommentStore interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, id string) (models.Comment, error)
	// ListCommentsByTask returns the task's comments, newest first.
	ListCommentsByTask(ctx context.Context, taskID string) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// Store is the full persistence surface a backend provides.
type Store interface {
	UserStore
	TaskStore
	CommentStore
	Ping(ctx context.Context) error
	Close()
}
