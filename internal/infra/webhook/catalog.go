// Package webhook accepts catalog pushes from an upstream market service.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"trade_console/internal/domain"
	"trade_console/internal/event"
)

// maxBodyBytes bounds a pushed catalog.
const maxBodyBytes = 1 << 20

// Poster delivers events to the console inbox.
type Poster interface {
	Post(ctx context.Context, ev event.Event) error
}

type catalogPush struct {
	MarketGroups []domain.MarketGroup `json:"market_groups"`
	Error        string               `json:"error,omitempty"`
}

// CatalogHandler turns POSTed catalogs into console catalog events.
// The payload matches the polled endpoint; a non-empty "error" pushes the
// catalog into the error state.
type CatalogHandler struct {
	inbox Poster
}

// NewCatalogHandler creates a handler posting to inbox.
func NewCatalogHandler(inbox Poster) *CatalogHandler {
	return &CatalogHandler{inbox: inbox}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}
	var push catalogPush
	if err := json.Unmarshal(body, &push); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var snap domain.CatalogSnapshot
	switch {
	case push.Error != "":
		snap.Err = domain.NewFatalNetworkError("push", errors.New(push.Error))
	case len(push.MarketGroups) == 0:
		http.Error(w, "market_groups is required", http.StatusBadRequest)
		return
	default:
		snap.Groups = push.MarketGroups
	}

	ev := &event.CatalogEvent{BaseEvent: event.BaseEvent{Ts: time.Now().UnixMilli()}, Snapshot: snap}
	if err := h.inbox.Post(r.Context(), ev); err != nil {
		slog.Warn("Catalog push dropped", slog.Any("error", err))
		http.Error(w, "console unavailable", http.StatusServiceUnavailable)
		return
	}
	slog.Info("Catalog pushed", slog.Int("groups", len(push.MarketGroups)), slog.Bool("error", snap.Err != nil))
	w.WriteHeader(http.StatusAccepted)
}
