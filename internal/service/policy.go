package service

import (
	"github.com/google/uuid"
	"github.com/hongminglow/task-tracker/internal/auth"
)

// CanMutate reports whether the caller may update or delete a resource
// created by ownerID: owners always may, admins may touch anything.
func CanMutate(caller auth.Identity, ownerID string) bool {
	return ownerID == caller.User.ID || caller.IsAdmin
}

// validID reports whether id could have been assigned by a store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
