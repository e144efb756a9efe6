// Package storage defines the persistence contracts for identities and tasks.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/taskhub/internal/auth/user"
	"github.com/louisbranch/taskhub/internal/task"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrUsernameTaken indicates a registration against an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore persists identity records.
type UserStore interface {
	// PutUser inserts an identity. A duplicate username yields
	// ErrUsernameTaken and leaves the existing record untouched.
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

// TaskFilter restricts a task listing. OwnerID is the security scope decided
// by the authorization engine; Completed is a convenience filter composed on
// top of it, never instead of it.
type TaskFilter struct {
	OwnerID   string
	Completed *bool
}

// TaskStore persists task records. Single-record operations are atomic; no
// multi-record transactions are required.
type TaskStore interface {
	PutTask(ctx context.Context, t task.Task) error
	GetTask(ctx context.Context, taskID string) (task.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}

// Store combines the identity and task stores behind one handle.
type Store interface {
	UserStore
	TaskStore
	Close() error
}
