// Package handlers exposes the catalog over a JSON HTTP API.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/luis122448/catalog-music-service/internal/logger"
	"github.com/luis122448/catalog-music-service/internal/store"
)

// ScanTrigger starts a background scan, reporting false when one is already
// in flight.
type ScanTrigger interface {
	TriggerScan() bool
}

// Presigner issues time-limited download URLs for stored objects.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Handler struct {
	db        *store.DB
	scanner   ScanTrigger
	presigner Presigner
	log       *logger.Logger
}

func NewHandler(db *store.DB, sc ScanTrigger, presigner Presigner, log *logger.Logger) *Handler {
	return &Handler{
		db:        db,
		scanner:   sc,
		presigner: presigner,
		log:       log.WithComponent("http"),
	}
}

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: status < 400, Message: message, Data: data}); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respond(w, status, message, nil)
}

// respondLookup maps a store lookup error to 404 or 500.
func (h *Handler) respondLookup(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, sql.ErrNoRows) {
		h.respondError(w, http.StatusNotFound, what+" not found")
		return
	}
	h.log.Error("Lookup failed", "error", err)
	h.respondError(w, http.StatusInternalServerError, "internal error")
}
