package api

import (
	"time"

	"github.com/louisbranch/taskhub/internal/auth/user"
	"github.com/louisbranch/taskhub/internal/task"
)

// registerRequest is the registration payload. Role is optional and defaults
// to the regular user role.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// userPayload is the public identity profile. The password hash is never
// part of any response.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserPayload(u user.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

type registerResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

type loginResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    userPayload `json:"user"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// updateTaskRequest uses pointer fields so PATCH can distinguish an omitted
// field from an explicit zero value.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type taskPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskPayload(t task.Task) taskPayload {
	return taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type taskListResponse struct {
	Count   int           `json:"count"`
	Results []taskPayload `json:"results"`
}

func toTaskListResponse(tasks []task.Task) taskListResponse {
	results := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, toTaskPayload(t))
	}
	return taskListResponse{Count: len(results), Results: results}
}
