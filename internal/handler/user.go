package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/subtrack/subtrack/internal/errs"
	"github.com/subtrack/subtrack/internal/handler/dto"
	"github.com/subtrack/subtrack/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		writeDomainError(w, h.logger, errs.Validation("Field User.username cannot by blank"))
		return
	}

	user, err := h.svc.Create(r.Context(), service.CreateUserInput{Username: req.Username})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		writeDomainError(w, h.logger, errs.Validation("Field User.username cannot by blank"))
		return
	}

	user, err := h.svc.Update(r.Context(), id, service.UpdateUserInput{Username: req.Username})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user_deleted", "user_id", id)

	w.WriteHeader(http.StatusOK)
}

// userID parses the {id} path parameter, writing a 400 on malformed input.
func (h *UserHandler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathID(w, r, "id", "Invalid user id")
}
