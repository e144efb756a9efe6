package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/louisbranch/taskhub/internal/auth/authz"
	apperrors "github.com/louisbranch/taskhub/internal/platform/errors"
	"github.com/louisbranch/taskhub/internal/platform/httpx"
	"github.com/louisbranch/taskhub/internal/storage"
	"github.com/louisbranch/taskhub/internal/task"
)

// verdictError maps an authorization denial to its boundary error. Allow maps
// to nil.
func verdictError(verdict authz.Verdict) error {
	switch verdict {
	case authz.DenyUnauthenticated:
		return apperrors.E(apperrors.KindUnauthorized, "authentication required")
	case authz.DenyForbidden:
		return apperrors.E(apperrors.KindForbidden, "you do not have permission to modify this task")
	case authz.DenyNotFound:
		return apperrors.E(apperrors.KindNotFound, "task not found")
	default:
		return nil
	}
}

// completedFilter parses the optional ?completed= query parameter. Absence
// means no filter; anything but true/false is rejected.
func completedFilter(r *http.Request) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("completed"))
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		value := true
		return &value, nil
	case "false":
		value := false
		return &value, nil
	default:
		return nil, apperrors.EF(apperrors.KindInvalidInput, "completed", "completed must be true or false")
	}
}

func (h handlers) handleListTasks(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)

	completed, err := completedFilter(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	// Scoping is the security boundary; the completed filter is layered on
	// top of it inside the same query.
	scope := authz.ScopeFor(actor, authz.OpList)
	tasks, err := h.tasks.ListTasks(httpx.RequestContext(r), storage.TaskFilter{
		OwnerID:   scope.OwnerID,
		Completed: completed,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, toTaskListResponse(tasks))
}

func (h handlers) handleGetTask(w http.ResponseWriter, r *http.Request) {
	tsk, err := h.tasks.GetTask(httpx.RequestContext(r), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpx.WriteError(w, verdictError(authz.DenyNotFound))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, toTaskPayload(tsk))
}

func (h handlers) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if verdict := authz.Authorize(actor, authz.OpCreate, nil); verdict != authz.Allow {
		httpx.WriteError(w, verdictError(verdict))
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	tsk, err := task.CreateTask(task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}, actor.UserID, h.now, h.newID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.tasks.PutTask(httpx.RequestContext(r), tsk); err != nil {
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusCreated, toTaskPayload(tsk))
}

func (h handlers) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	ctx := httpx.RequestContext(r)

	// Locate without ownership scoping, then authorize. The two steps stay
	// separate so a non-owner hitting an existing task gets 403, not 404.
	located, err := h.locateTask(ctx, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if verdict := authz.Authorize(actor, authz.OpUpdate, located); verdict != authz.Allow {
		httpx.WriteError(w, verdictError(verdict))
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if r.Method == http.MethodPut && req.Title == nil {
		httpx.WriteError(w, apperrors.EF(apperrors.KindInvalidInput, "title", "title is required"))
		return
	}

	updated, err := located.Apply(task.Update{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}, h.now)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.tasks.UpdateTask(ctx, updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Lost a race against a concurrent delete.
			httpx.WriteError(w, verdictError(authz.DenyNotFound))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, toTaskPayload(updated))
}

func (h handlers) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	ctx := httpx.RequestContext(r)

	located, err := h.locateTask(ctx, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if verdict := authz.Authorize(actor, authz.OpDelete, located); verdict != authz.Allow {
		httpx.WriteError(w, verdictError(verdict))
		return
	}

	if err := h.tasks.DeleteTask(ctx, located.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpx.WriteError(w, verdictError(authz.DenyNotFound))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// locateTask performs the unscoped existence lookup. A missing record comes
// back as a nil task with no error so the authorization engine can rank
// not-found against the other denial kinds itself.
func (h handlers) locateTask(ctx context.Context, taskID string) (*task.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, nil
	}
	tsk, err := h.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tsk, nil
}
