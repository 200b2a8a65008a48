package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/damacus/iron-files/internal/services"
	"github.com/damacus/iron-files/internal/validation"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FilesHandler struct {
	files *services.FileService
	log   *zap.Logger
	now   func() time.Time
}

func NewFilesHandler(files *services.FileService, log *zap.Logger) *FilesHandler {
	return &FilesHandler{files: files, log: log, now: time.Now}
}

// UploadResponse carries a presigned PUT URL and the key it writes to.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type DownloadResponse struct {
	URL string `json:"url"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// ShareResponse reports the clamped lifetime actually applied to the URL.
type ShareResponse struct {
	URL        string    `json:"url"`
	ExpiryDate time.Time `json:"expiryDate"`
	ExpiresIn  int64     `json:"expiresIn"`
}

// List returns the folders and files directly below ?prefix=
func (h *FilesHandler) List(c echo.Context) error {
	req, err := validation.Parse(validation.ListSchema, map[string]any{
		"prefix": c.QueryParam("prefix"),
	})
	if err != nil {
		return err
	}

	listing, err := h.files.List(c.Request().Context(), validation.SanitizeKey(req.Prefix))
	if err != nil {
		return backendError(c, h.log, "list", "Failed to list files", err)
	}

	return c.JSON(http.StatusOK, listing)
}

// Upload returns a presigned PUT URL; the client uploads directly to storage.
func (h *FilesHandler) Upload(c echo.Context) error {
	req, err := parseBody(c, validation.UploadSchema)
	if err != nil {
		return err
	}

	key := joinKey(validation.SanitizeKey(req.Path), validation.SanitizeKey(req.Filename))

	url, err := h.files.UploadURL(c.Request().Context(), key, req.ContentType, validation.UploadURLExpiry)
	if err != nil {
		return backendError(c, h.log, "upload", "Failed to generate upload URL", err)
	}

	return c.JSON(http.StatusOK, UploadResponse{URL: url, Key: key})
}

func (h *FilesHandler) Download(c echo.Context) error {
	req, err := parseBody(c, validation.DownloadSchema)
	if err != nil {
		return err
	}

	url, err := h.files.DownloadURL(c.Request().Context(), validation.SanitizeKey(req.Key), validation.DownloadURLExpiry)
	if err != nil {
		return backendError(c, h.log, "download", "Failed to generate download URL", err)
	}

	return c.JSON(http.StatusOK, DownloadResponse{URL: url})
}

// Delete removes files and, for keys ending in "/", whole folders.
func (h *FilesHandler) Delete(c echo.Context) error {
	req, err := parseBody(c, validation.DeleteSchema)
	if err != nil {
		return err
	}

	keys := make([]string, len(req.Keys))
	for i, k := range req.Keys {
		keys[i] = validation.SanitizeKey(k)
	}

	deleted, err := h.files.Delete(c.Request().Context(), keys)
	if err != nil {
		return backendError(c, h.log, "delete", "Failed to delete files", err)
	}

	RequestLogger(c, h.log).Info("deleted objects", zap.Int("requested", len(keys)), zap.Int("deleted", deleted))
	return c.JSON(http.StatusOK, DeleteResponse{Success: true, Deleted: deleted})
}

func (h *FilesHandler) Rename(c echo.Context) error {
	req, err := parseBody(c, validation.RenameSchema)
	if err != nil {
		return err
	}

	oldKey := validation.SanitizeKey(req.OldKey)
	newKey := validation.SanitizeKey(req.NewKey)

	if err := h.files.Rename(c.Request().Context(), oldKey, newKey); err != nil {
		return backendError(c, h.log, "rename", "Failed to rename file", err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Share returns a presigned GET URL valid for at most seven days.
func (h *FilesHandler) Share(c echo.Context) error {
	req, err := parseBody(c, validation.ShareSchema)
	if err != nil {
		return err
	}

	expires := validation.ShareExpiry(req.Duration, req.Unit)

	url, err := h.files.DownloadURL(c.Request().Context(), validation.SanitizeKey(req.Key), expires)
	if err != nil {
		return backendError(c, h.log, "share", "Failed to generate share URL", err)
	}

	return c.JSON(http.StatusOK, ShareResponse{
		URL:        url,
		ExpiryDate: h.now().Add(expires).UTC(),
		ExpiresIn:  int64(expires / time.Second),
	})
}

// joinKey places name below folder, adding the separator if folder lacks one.
func joinKey(folder, name string) string {
	if folder == "" {
		return name
	}
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	return folder + name
}
