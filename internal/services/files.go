package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/damacus/iron-files/internal/models"
	"github.com/damacus/iron-files/internal/utils"
	"github.com/damacus/iron-files/internal/validation"
)

// FileService implements the file manager operations on top of a
// StorageClient. Keys passed in are expected to be validated and sanitized.
type FileService struct {
	client StorageClient
}

func NewFileService(client StorageClient) *FileService {
	return &FileService{client: client}
}

// List returns one level of the tree below prefix. The prefix object itself
// and folder markers are not reported as files.
func (s *FileService) List(ctx context.Context, prefix string) (models.Listing, error) {
	listing := models.Listing{
		Prefix:      prefix,
		Folders:     []models.FolderItem{},
		Files:       []models.FileItem{},
		Breadcrumbs: Breadcrumbs(prefix),
	}

	seen := make(map[string]bool)
	token := ""
	for {
		page, err := s.client.ListObjectsPaginated(ctx, ListObjectsOptions{
			Prefix:            prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return models.Listing{}, fmt.Errorf("list %q: %w", prefix, err)
		}

		for _, p := range page.Prefixes {
			if seen[p] {
				continue
			}
			seen[p] = true
			listing.Folders = append(listing.Folders, models.FolderItem{
				Key:  p,
				Name: strings.TrimSuffix(strings.TrimPrefix(p, prefix), "/"),
			})
		}

		for _, obj := range page.Objects {
			if obj.Key == prefix || strings.HasSuffix(obj.Key, "/") {
				continue
			}
			listing.Files = append(listing.Files, fileItem(obj, prefix))
		}

		if !page.IsTruncated || page.NextContinuationToken == "" {
			break
		}
		token = page.NextContinuationToken
	}

	return listing, nil
}

func fileItem(obj ObjectInfo, prefix string) models.FileItem {
	name := strings.TrimPrefix(obj.Key, prefix)
	contentType := obj.ContentType
	if contentType == "" {
		contentType = utils.ContentTypeFromExt(obj.Key)
	}
	return models.FileItem{
		Key:           obj.Key,
		Name:          name,
		Size:          obj.Size,
		FormattedSize: utils.FormatFileSize(obj.Size),
		LastModified:  obj.LastModified,
		Type:          utils.Extension(obj.Key),
		Category:      utils.Category(obj.Key),
		ContentType:   contentType,
	}
}

// Breadcrumbs splits a prefix into its cumulative folder paths.
func Breadcrumbs(prefix string) []models.Breadcrumb {
	breadcrumbs := []models.Breadcrumb{}
	if prefix == "" {
		return breadcrumbs
	}
	path := ""
	for _, part := range strings.Split(strings.TrimSuffix(prefix, "/"), "/") {
		if part == "" {
			continue
		}
		path += part + "/"
		breadcrumbs = append(breadcrumbs, models.Breadcrumb{Name: part, Path: path})
	}
	return breadcrumbs
}

func (s *FileService) UploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, key, contentType, expires)
	if err != nil {
		return "", fmt.Errorf("presign put %q: %w", key, err)
	}
	return u.String(), nil
}

// DownloadURL is also used for share links, with a caller-chosen expiry.
func (s *FileService) DownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, key, expires)
	if err != nil {
		return "", fmt.Errorf("presign get %q: %w", key, err)
	}
	return u.String(), nil
}

// ExpandKeys replaces every folder key (trailing "/") with all keys stored
// below it. The folder marker is always kept so empty folders disappear too.
// The result is deduplicated, files first, in first-seen order.
func (s *FileService) ExpandKeys(ctx context.Context, keys []string) ([]string, error) {
	var files, folders []string
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			folders = append(folders, key)
		} else {
			files = append(files, key)
		}
	}

	all := append([]string{}, files...)
	for _, folder := range folders {
		children, err := s.listAllKeys(ctx, folder)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		all = append(all, folder)
	}

	return dedupe(all), nil
}

func (s *FileService) listAllKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	token := ""
	for {
		page, err := s.client.ListObjectsPaginated(ctx, ListObjectsOptions{
			Prefix:            prefix,
			Recursive:         true,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, obj := range page.Objects {
			keys = append(keys, obj.Key)
		}
		if !page.IsTruncated || page.NextContinuationToken == "" {
			return keys, nil
		}
		token = page.NextContinuationToken
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Delete removes the given keys, expanding folders, and reports how many
// keys were sent for deletion. Batches are removed one after another.
func (s *FileService) Delete(ctx context.Context, keys []string) (int, error) {
	all, err := s.ExpandKeys(ctx, keys)
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(all); start += DefaultPageSize {
		end := min(start+DefaultPageSize, len(all))
		if err := s.client.RemoveObjects(ctx, all[start:end]); err != nil {
			return 0, fmt.Errorf("delete batch at %d: %w", start, err)
		}
	}
	return len(all), nil
}

// Rename copies oldKey to newKey and then deletes oldKey. A failed delete
// leaves both keys in place.
func (s *FileService) Rename(ctx context.Context, oldKey, newKey string) error {
	if err := s.client.CopyObject(ctx, oldKey, newKey); err != nil {
		return fmt.Errorf("copy %q to %q: %w", oldKey, newKey, err)
	}
	if err := s.client.RemoveObject(ctx, oldKey); err != nil {
		return fmt.Errorf("remove %q after copy: %w", oldKey, err)
	}
	return nil
}

// CreateFolder writes an empty marker object. key must end with "/".
func (s *FileService) CreateFolder(ctx context.Context, key string) error {
	if err := s.client.PutObject(ctx, key, strings.NewReader(""), 0, "application/x-directory"); err != nil {
		return fmt.Errorf("create folder %q: %w", key, err)
	}
	return nil
}

// ZipEntries lists every file below prefix, skipping folder markers.
func (s *FileService) ZipEntries(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.listAllKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, "/") {
			files = append(files, key)
		}
	}
	return files, nil
}

// ZipName derives the archive name from the last folder of prefix.
func (s *FileService) ZipName(prefix string) string {
	folder := strings.TrimSuffix(prefix, "/")
	if folder == "" {
		return s.client.Bucket() + ".zip"
	}
	if idx := strings.LastIndex(folder, "/"); idx >= 0 {
		folder = folder[idx+1:]
	}
	return folder + ".zip"
}

// WriteZip streams keys into a zip archive with paths relative to prefix.
// Objects that cannot be read or whose relative path is unsafe are skipped
// and returned so the caller can log them; the archive has already started
// by then.
func (s *FileService) WriteZip(ctx context.Context, w io.Writer, prefix string, keys []string) ([]string, error) {
	zipWriter := zip.NewWriter(w)

	var skipped []string
	for _, key := range keys {
		if err := s.addToZip(ctx, zipWriter, prefix, key); err != nil {
			if ctx.Err() != nil {
				_ = zipWriter.Close()
				return skipped, ctx.Err()
			}
			skipped = append(skipped, key)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return skipped, fmt.Errorf("finish zip: %w", err)
	}
	return skipped, nil
}

func (s *FileService) addToZip(ctx context.Context, zipWriter *zip.Writer, prefix, key string) error {
	// Stored keys are not validated on write; an entry name must not climb
	// out of the extraction directory.
	name, ok := validation.ResolveKey(strings.TrimPrefix(key, prefix))
	if !ok {
		return fmt.Errorf("unsafe zip entry name for %q", key)
	}

	reader, _, err := s.client.GetObjectReader(ctx, key)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	writer, err := zipWriter.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, reader)
	return err
}
