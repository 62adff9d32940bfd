package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/storage"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, title, description, status, created_by, created_at, updated_at`

// CreateTask inserts a new task row.
func (s *Store) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	const query = `
		INSERT INTO tasks (id, title, description, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), task.Title, task.Description, task.Status, task.CreatedBy)
	return scanTask(row)
}

// GetTask fetches a task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// ListTasks returns all tasks, newest first.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask persists the mutable task fields.
func (s *Store) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	const query = `
		UPDATE tasks SET title = $2, description = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	row := s.pool.QueryRow(ctx, query, task.ID, task.Title, task.Description, task.Status)
	return scanTask(row)
}

// DeleteTask removes the task's comments and the task inside one transaction.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE task_id = $1`, id); err != nil {
			return fmt.Errorf("delete task comments: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func scanTask(row pgx.Row) (models.Task, error) {
	var task models.Task
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, storage.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}
