package task

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func fixedID() (string, error) {
	return "task-fixed-id", nil
}

func TestCreateTask(t *testing.T) {
	tsk, err := CreateTask(CreateTaskInput{
		Title:       "  write report  ",
		Description: " quarterly numbers ",
	}, "owner-1", fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if tsk.ID != "task-fixed-id" {
		t.Fatalf("id = %q", tsk.ID)
	}
	if tsk.Title != "write report" {
		t.Fatalf("title = %q, want trimmed", tsk.Title)
	}
	if tsk.Description != "quarterly numbers" {
		t.Fatalf("description = %q, want trimmed", tsk.Description)
	}
	if tsk.Completed {
		t.Fatal("expected incomplete task")
	}
	if tsk.OwnerID != "owner-1" {
		t.Fatalf("owner = %q, want %q", tsk.OwnerID, "owner-1")
	}
	if !tsk.CreatedAt.Equal(fixedNow()) || !tsk.UpdatedAt.Equal(fixedNow()) {
		t.Fatalf("timestamps = %v/%v", tsk.CreatedAt, tsk.UpdatedAt)
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	if _, err := CreateTask(CreateTaskInput{Title: "   "}, "owner-1", fixedNow, fixedID); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestCreateTaskRequiresOwner(t *testing.T) {
	if _, err := CreateTask(CreateTaskInput{Title: "x"}, "", fixedNow, fixedID); err == nil {
		t.Fatal("expected error for missing owner")
	}
}

func TestApplyPartialUpdate(t *testing.T) {
	tsk, err := CreateTask(CreateTaskInput{Title: "write report", Description: "numbers"}, "owner-1", fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	later := func() time.Time { return fixedNow().Add(time.Hour) }
	completed := true
	updated, err := tsk.Apply(Update{Completed: &completed}, later)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !updated.Completed {
		t.Fatal("expected completed task")
	}
	if updated.Title != "write report" || updated.Description != "numbers" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.OwnerID != "owner-1" {
		t.Fatalf("owner changed to %q", updated.OwnerID)
	}
	if !updated.UpdatedAt.Equal(later()) {
		t.Fatalf("updated_at = %v, want %v", updated.UpdatedAt, later())
	}
	if !updated.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("created_at changed to %v", updated.CreatedAt)
	}
}

func TestApplyRejectsBlankTitle(t *testing.T) {
	tsk, err := CreateTask(CreateTaskInput{Title: "write report"}, "owner-1", fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	blank := "  "
	if _, err := tsk.Apply(Update{Title: &blank}, fixedNow); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
}
