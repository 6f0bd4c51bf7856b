package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"musubi/internal/middleware"
	"musubi/internal/models"
	"musubi/internal/ratelimit"
	"musubi/internal/store"
)

// Messages handles the contact-form inbox endpoints.
type Messages struct {
	messages *store.MessageStore
	limiter  ratelimit.Limiter
}

// NewMessages creates a new Messages handler group.
func NewMessages(messages *store.MessageStore, limiter ratelimit.Limiter) *Messages {
	return &Messages{messages: messages, limiter: limiter}
}

type messagePayload struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"required"`
	VisitorID string `json:"visitorId"`
}

// List returns all messages, newest first. Session-gated.
func (h *Messages) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		slog.Error("message list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// Create accepts a public contact-form submission, subject to the rate
// limiter. The stored message itself becomes the throttle record future
// submissions are checked against.
func (h *Messages) Create(w http.ResponseWriter, r *http.Request) {
	var payload messagePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ip := middleware.ClientIP(r)
	allowed, err := h.limiter.Allow(r.Context(), ip, payload.VisitorID)
	if err != nil {
		slog.Error("rate limit check failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	if !allowed {
		respondError(w, http.StatusTooManyRequests, "a message was already sent recently, please try again later")
		return
	}

	msg := &models.ContactMessage{
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		IP:        ip,
		VisitorID: payload.VisitorID,
	}
	if err := h.messages.Create(r.Context(), msg); err != nil {
		slog.Error("message create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "message sent"})
}

type setReadPayload struct {
	IsRead bool `json:"isRead"`
}

// SetRead toggles a message's read flag. Session-gated.
func (h *Messages) SetRead(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}

	var payload setReadPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.messages.SetRead(r.Context(), id, payload.IsRead)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		slog.Error("message set read failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update message")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a message. Session-gated.
func (h *Messages) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}

	err = h.messages.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		slog.Error("message delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete message")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
