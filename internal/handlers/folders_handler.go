package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/damacus/iron-files/internal/services"
	"github.com/damacus/iron-files/internal/validation"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FoldersHandler struct {
	files *services.FileService
	log   *zap.Logger
}

func NewFoldersHandler(files *services.FileService, log *zap.Logger) *FoldersHandler {
	return &FoldersHandler{files: files, log: log}
}

type CreateFolderResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

// Create writes an empty marker object ending in "/".
func (h *FoldersHandler) Create(c echo.Context) error {
	req, err := parseBody(c, validation.CreateFolderSchema)
	if err != nil {
		return err
	}

	key := joinKey(validation.SanitizeKey(req.Path), validation.SanitizeKey(req.FolderName))
	if !strings.HasSuffix(key, "/") {
		key += "/"
	}

	if err := h.files.CreateFolder(c.Request().Context(), key); err != nil {
		return backendError(c, h.log, "create-folder", "Failed to create folder", err)
	}

	return c.JSON(http.StatusOK, CreateFolderResponse{Success: true, Key: key})
}

// Zip streams every file below ?prefix= as a ZIP archive
func (h *FoldersHandler) Zip(c echo.Context) error {
	req, err := validation.Parse(validation.ListSchema, map[string]any{
		"prefix": c.QueryParam("prefix"),
	})
	if err != nil {
		return err
	}
	prefix := validation.SanitizeKey(req.Prefix)
	ctx := c.Request().Context()

	keys, err := h.files.ZipEntries(ctx, prefix)
	if err != nil {
		return backendError(c, h.log, "zip", "Failed to list files", err)
	}
	if len(keys) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No files to download")
	}

	// Set response headers for streaming ZIP
	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.files.ZipName(prefix)))
	c.Response().WriteHeader(http.StatusOK)

	log := RequestLogger(c, h.log)
	skipped, err := h.files.WriteZip(ctx, c.Response(), prefix, keys)
	for _, key := range skipped {
		log.Warn("skipped object in zip", zap.String("key", key))
	}
	if err != nil {
		// Headers are already sent; the client sees a truncated archive.
		log.Error("zip stream aborted", zap.String("prefix", prefix), zap.Error(err))
	}
	return nil
}
