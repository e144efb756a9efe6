package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/louisbranch/taskhub/internal/auth/token"
	"github.com/louisbranch/taskhub/internal/auth/user"
	apperrors "github.com/louisbranch/taskhub/internal/platform/errors"
	"github.com/louisbranch/taskhub/internal/platform/httpx"
	"github.com/louisbranch/taskhub/internal/storage"
)

// errInvalidCredentials is the single uniform login failure. Unknown username
// and wrong password are indistinguishable on purpose, so the endpoint cannot
// be used to enumerate registered usernames.
var errInvalidCredentials = apperrors.E(apperrors.KindUnauthorized, "invalid credentials")

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	u, err := user.CreateUser(user.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, h.now, h.newID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.users.PutUser(httpx.RequestContext(r), u); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			httpx.WriteError(w, apperrors.EF(apperrors.KindInvalidInput, "username", "username already taken"))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		Message: "user created successfully",
		User:    toUserPayload(u),
	})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "username and password are required"))
		return
	}

	u, err := h.users.GetUserByUsername(httpx.RequestContext(r), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpx.WriteError(w, errInvalidCredentials)
			return
		}
		httpx.WriteError(w, err)
		return
	}
	if !u.VerifyPassword(req.Password) {
		httpx.WriteError(w, errInvalidCredentials)
		return
	}

	pair, err := token.Issue(u, h.tokens)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    toUserPayload(u),
	})
}

func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if req.Refresh == "" {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "refresh token is required"))
		return
	}

	claims, err := token.ValidateRefresh(req.Refresh, h.tokens)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	// The refresh flow is stateless like validation: the new pair carries the
	// role claim from the presented credential, not a fresh storage read.
	pair, err := token.Issue(user.User{ID: claims.UserID, Role: claims.Role}, h.tokens)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, refreshResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return apperrors.E(apperrors.KindInvalidInput, "request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "invalid JSON body", err)
	}
	return nil
}
