package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/storage/memory"
)

type fixture struct {
	store    *memory.Store
	tasks    *TaskService
	comments *CommentService
	owner    auth.Identity
	other    auth.Identity
	admin    auth.Identity
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	return fixture{
		store:    store,
		tasks:    NewTaskService(store),
		comments: NewCommentService(store, store),
		owner:    identity(t, store, "owner@x.com", models.RoleUser),
		other:    identity(t, store, "other@x.com", models.RoleUser),
		admin:    identity(t, store, "admin@x.com", models.RoleAdmin),
	}
}

func identity(t *testing.T, store *memory.Store, email, role string) auth.Identity {
	t.Helper()
	user, err := store.CreateUser(context.Background(), models.User{Email: email, Role: role})
	require.NoError(t, err)
	return auth.NewIdentity(user, auth.Claims{UserID: user.ID, Role: role, Email: email})
}

func ptr[T any](v T) *T { return &v }
