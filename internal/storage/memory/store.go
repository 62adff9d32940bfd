// Package memory implements storage.Store in process memory. It backs local
// runs with STORAGE_DRIVER=memory and the handler and service tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type taskRecord struct {
	seq  uint64
	task models.Task
}

type commentRecord struct {
	seq     uint64
	comment models.Comment
}

// Store keeps all records in maps guarded by a single mutex.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      uint64
	users    map[string]models.User
	emails   map[string]string
	tasks    map[string]taskRecord
	comments map[string]commentRecord
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		tasks:    make(map[string]taskRecord),
		comments: make(map[string]commentRecord),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	now := s.now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return user, nil
}

func (s *Store) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UpdateEmail(_ context.Context, id, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if owner, taken := s.emails[email]; taken && owner != id {
		return models.User{}, storage.ErrAlreadyExists
	}
	delete(s.emails, user.Email)
	user.Email = email
	user.UpdatedAt = s.now().UTC()
	s.users[id] = user
	s.emails[email] = id
	return user, nil
}

func (s *Store) CreateTask(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = taskRecord{seq: s.next(), task: task}
	return task, nil
}

func (s *Store) GetTask(_ context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tasks[id]
	if !ok {
		return models.Task{}, storage.ErrNotFound
	}
	return rec.task, nil
}

func (s *Store) ListTasks(context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]taskRecord, 0, len(s.tasks))
	for _, rec := range s.tasks {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b taskRecord) int {
		return newestFirst(a.task.CreatedAt, b.task.CreatedAt, a.seq, b.seq)
	})

	tasks := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, rec.task)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tasks[task.ID]
	if !ok {
		return models.Task{}, storage.ErrNotFound
	}
	rec.task.Title = task.Title
	rec.task.Description = task.Description
	rec.task.Status = task.Status
	rec.task.UpdatedAt = s.now().UTC()
	s.tasks[task.ID] = rec
	return rec.task, nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	for cid, rec := range s.comments {
		if rec.comment.TaskID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.tasks, id)
	return nil
}

func (s *Store) CreateComment(_ context.Context, comment models.Comment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[comment.TaskID]; !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	now := s.now().UTC()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	s.comments[comment.ID] = commentRecord{seq: s.next(), comment: comment}
	return comment, nil
}

func (s *Store) GetComment(_ context.Context, id string) (models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.comments[id]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	return rec.comment, nil
}

func (s *Store) ListCommentsByTask(_ context.Context, taskID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []commentRecord
	for _, rec := range s.comments {
		if rec.comment.TaskID == taskID {
			recs = append(recs, rec)
		}
	}
	slices.SortFunc(recs, func(a, b commentRecord) int {
		return newestFirst(a.comment.CreatedAt, b.comment.CreatedAt, a.seq, b.seq)
	})

	comments := make([]models.Comment, 0, len(recs))
	for _, rec := range recs {
		comments = append(comments, rec.comment)
	}
	return comments, nil
}

func (s *Store) UpdateComment(_ context.Context, comment models.Comment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.comments[comment.ID]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	rec.comment.Text = comment.Text
	rec.comment.UpdatedAt = s.now().UTC()
	s.comments[comment.ID] = rec
	return rec.comment, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// newestFirst orders by creation time descending, breaking ties by insertion order.
func newestFirst(a, b time.Time, seqA, seqB uint64) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return cmp.Compare(seqB, seqA)
}
