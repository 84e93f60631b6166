package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2706msjk-ui/gilmo/internal/models"
	"github.com/2706msjk-ui/gilmo/pkg/response"
)

const (
	settingsCacheKey = "event_settings"
	settingsCacheTTL = 30 * time.Second
)

// SettingsStore reads event capacity settings.
type SettingsStore interface {
	ListSettings(ctx context.Context) ([]models.EventSetting, error)
}

// Handler serves the capacity gauge data for the landing page.
type Handler struct {
	store  SettingsStore
	cache  Cache // nil = no caching
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(store SettingsStore, cache Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, cache: cache, logger: logger}
}

// ListSettings handles GET /events/settings.
func (h *Handler) ListSettings(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, settingsCacheKey); ok {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	list, err := h.store.ListSettings(ctx)
	if err != nil {
		h.logger.Error("list event settings failed", zap.Error(err))
		response.Internal(c, "failed to load event settings")
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(response.Body{Success: true, Data: list}); err == nil {
			h.cache.Set(ctx, settingsCacheKey, string(payload), settingsCacheTTL)
		}
	}
	response.OK(c, list)
}
