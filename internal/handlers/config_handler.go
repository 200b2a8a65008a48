package handlers

import (
	"net/http"

	"github.com/damacus/iron-files/internal/config"
	"github.com/damacus/iron-files/internal/utils"
	"github.com/damacus/iron-files/internal/validation"
	"github.com/labstack/echo/v4"
)

type ConfigHandler struct {
	storage config.Storage
}

func NewConfigHandler(storage config.Storage) *ConfigHandler {
	return &ConfigHandler{storage: storage}
}

// ConfigResponse describes what the client is talking to.
type ConfigResponse struct {
	BucketName   *string                     `json:"bucketName"`
	HasEnvBucket bool                        `json:"hasEnvBucket"`
	Backend      string                      `json:"backend"`
	Presets      []validation.DurationPreset `json:"presets"`
	Units        []validation.Unit           `json:"units"`
	CSRFToken    string                      `json:"csrfToken,omitempty"`
}

// Get is also the usual way for a client to pick up its CSRF token.
func (h *ConfigHandler) Get(c echo.Context) error {
	resp := ConfigResponse{
		HasEnvBucket: h.storage.Bucket != "",
		Backend:      h.storage.Backend,
		Presets:      validation.DurationPresets,
		Units:        validation.Units,
	}
	if resp.HasEnvBucket {
		bucket := h.storage.Bucket
		resp.BucketName = &bucket
	}
	if token, ok := c.Get(utils.ContextKeyCSRF).(string); ok {
		resp.CSRFToken = token
	}
	return c.JSON(http.StatusOK, resp)
}
