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

const commentColumns = `id, text, task_id, created_by, created_at, updated_at`

// CreateComment inserts a comment. A task deleted between the service's
// existence check and this insert surfaces as storage.ErrNotFound.
func (s *Store) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	const query = `
		INSERT INTO comments (id, text, task_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), comment.Text, comment.TaskID, comment.CreatedBy)
	created, err := scanComment(row)
	if err != nil {
		if isPgCode(err, codeForeignKeyViolation) {
			return models.Comment{}, storage.ErrNotFound
		}
		return models.Comment{}, err
	}
	return created, nil
}

// GetComment fetches a comment by id.
func (s *Store) GetComment(ctx context.Context, id string) (models.Comment, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row)
}

// ListCommentsByTask returns a task's comments, newest first.
func (s *Store) ListCommentsByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+commentColumns+` FROM comments WHERE task_id = $1 ORDER BY created_at DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// UpdateComment persists the comment text.
func (s *Store) UpdateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	const query = `
		UPDATE comments SET text = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns
	return scanComment(s.pool.QueryRow(ctx, query, comment.ID, comment.Text))
}

// DeleteComment removes a single comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (models.Comment, error) {
	var comment models.Comment
	if err := row.Scan(&comment.ID, &comment.Text, &comment.TaskID, &comment.CreatedBy, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, storage.ErrNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}
