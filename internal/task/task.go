// Package task provides the task record domain.
package task

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/taskhub/internal/platform/errors"
	"github.com/louisbranch/taskhub/internal/platform/id"
)

var (
	// ErrEmptyTitle indicates a missing task title.
	ErrEmptyTitle = apperrors.EF(apperrors.KindInvalidInput, "title", "title is required")
)

// Task represents a tracked unit of work owned by exactly one identity.
// Ownership is set at creation and never reassigned.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskInput describes the fields accepted at task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// CreateTask creates a new task owned by ownerID with a generated ID and
// timestamps.
func CreateTask(input CreateTaskInput, ownerID string, now func() time.Time, idGenerator func() (string, error)) (Task, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if strings.TrimSpace(ownerID) == "" {
		return Task{}, fmt.Errorf("owner id is required")
	}

	taskID, err := idGenerator()
	if err != nil {
		return Task{}, fmt.Errorf("generate task id: %w", err)
	}

	createdAt := now().UTC()
	return Task{
		ID:          taskID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   input.Completed,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// Update carries a partial mutation of a task. Nil fields are left untouched,
// which backs both PATCH (sparse) and PUT (all fields set) semantics.
type Update struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply mutates the task with the populated update fields. Ownership is not
// part of Update and can never change here.
func (t Task) Apply(update Update, now func() time.Time) (Task, error) {
	if now == nil {
		now = time.Now
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return Task{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if update.Description != nil {
		t.Description = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
	}
	t.UpdatedAt = now().UTC()
	return t, nil
}
