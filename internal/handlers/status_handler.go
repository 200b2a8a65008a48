package handlers

import (
	"errors"
	"net/http"

	"github.com/damacus/iron-files/internal/config"
	"github.com/damacus/iron-files/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Storage status values
const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"
	StatusOffline     = "offline"
	StatusError       = "error"
	StatusUnsupported = "unsupported"
)

type StatusHandler struct {
	factory services.StorageFactory
	storage config.Storage
	log     *zap.Logger
}

func NewStatusHandler(factory services.StorageFactory, storage config.Storage, log *zap.Logger) *StatusHandler {
	return &StatusHandler{factory: factory, storage: storage, log: log}
}

type StatusResponse struct {
	Status       string `json:"status"`
	OnlineDrives int    `json:"onlineDrives"`
	TotalDrives  int    `json:"totalDrives"`
}

// Get reports drive health from the MinIO admin API. Backends without an
// admin API report "unsupported"; failed checks report "error". Both are
// still 200 so the check itself never looks like an outage.
func (h *StatusHandler) Get(c echo.Context) error {
	log := RequestLogger(c, h.log)

	mdm, err := h.factory.NewAdminClient(h.storage)
	if errors.Is(err, services.ErrUnsupported) {
		return c.JSON(http.StatusOK, StatusResponse{Status: StatusUnsupported})
	}
	if err != nil {
		log.Error("connect admin client", zap.Error(err))
		return c.JSON(http.StatusOK, StatusResponse{Status: StatusError})
	}

	serverInfo, err := mdm.ServerInfo(c.Request().Context())
	if err != nil {
		log.Warn("fetch server info", zap.String("code", services.ErrorCode(err)), zap.Error(err))
		return c.JSON(http.StatusOK, StatusResponse{Status: StatusError})
	}

	onlineCount := 0
	totalCount := 0

	for _, server := range serverInfo.Servers {
		for _, disk := range server.Disks {
			totalCount++
			if disk.State == "ok" {
				onlineCount++
			}
		}
	}

	status := StatusHealthy
	if onlineCount < totalCount {
		status = StatusDegraded
	}
	if onlineCount == 0 {
		status = StatusOffline
	}

	return c.JSON(http.StatusOK, StatusResponse{
		Status:       status,
		OnlineDrives: onlineCount,
		TotalDrives:  totalCount,
	})
}
