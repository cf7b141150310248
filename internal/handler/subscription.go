package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/subtrack/subtrack/internal/errs"
	"github.com/subtrack/subtrack/internal/handler/dto"
	"github.com/subtrack/subtrack/internal/service"
)

// SubscriptionHandler handles HTTP requests for subscription operations.
type SubscriptionHandler struct {
	svc    *service.SubscriptionService
	logger *slog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListByUser handles GET /users/{id}/subscriptions.
func (h *SubscriptionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user id")
	if !ok {
		return
	}

	subs, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSubscriptionListResponse(subs))
}

// Top handles GET /subscriptions/top.
func (h *SubscriptionHandler) Top(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.TopPopular(r.Context(), service.TopSubscriptionsLimit)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}

// Create handles POST /users/{id}/subscriptions.
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user id")
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeDomainError(w, h.logger, errs.Validation("Field Subscription.name cannot by blank"))
		return
	}

	sub, err := h.svc.Create(r.Context(), service.CreateSubscriptionInput{Name: req.Name}, userID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("subscription_created",
		"subscription_id", sub.ID,
		"user_id", sub.UserID,
		"name", sub.Name,
	)

	writeJSON(w, http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// Delete handles DELETE /users/{id}/subscriptions/{sub_id}.
func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user id")
	if !ok {
		return
	}
	subID, ok := pathID(w, r, "sub_id", "Invalid subscription id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, subID); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("subscription_deleted",
		"subscription_id", subID,
		"user_id", userID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses an integer path parameter, writing a 400 on malformed input.
func pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
