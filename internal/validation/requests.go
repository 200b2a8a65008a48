package validation

import (
	"fmt"
	"strings"
)

const (
	keyEmpty   = "Key must not be empty"
	keyInvalid = "Key contains invalid path sequences"
)

// ListRequest scopes a listing. An empty prefix lists the bucket root.
type ListRequest struct {
	Prefix string `json:"prefix"`
}

// UploadRequest asks for a presigned PUT URL.
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Path        string `json:"path"`
}

type DownloadRequest struct {
	Key string `json:"key"`
}

// DeleteRequest removes files; keys ending in "/" remove whole folders.
type DeleteRequest struct {
	Keys []string `json:"keys"`
}

type RenameRequest struct {
	OldKey string `json:"oldKey"`
	NewKey string `json:"newKey"`
}

// ShareRequest asks for a presigned GET URL with a caller-chosen lifetime.
type ShareRequest struct {
	Key      string  `json:"key"`
	Duration float64 `json:"duration"`
	Unit     Unit    `json:"unit"`
}

type CreateFolderRequest struct {
	Path       string `json:"path"`
	FolderName string `json:"folderName"`
}

func ListSchema(f *Fields) ListRequest {
	return ListRequest{Prefix: f.Prefix("prefix")}
}

func UploadSchema(f *Fields) UploadRequest {
	return UploadRequest{
		Filename:    f.Key("filename", "Filename must not be empty", "Filename contains invalid characters"),
		ContentType: f.NonEmpty("contentType", "Content-Type must not be empty"),
		Path:        f.Prefix("path"),
	}
}

func DownloadSchema(f *Fields) DownloadRequest {
	return DownloadRequest{Key: f.Key("key", keyEmpty, keyInvalid)}
}

func DeleteSchema(f *Fields) DeleteRequest {
	items, ok := f.Array("keys")
	if !ok {
		return DeleteRequest{}
	}

	if len(items) < 1 {
		f.Fail("keys", "At least one key must be provided")
	}
	if len(items) > MaxDeleteKeys {
		f.Fail("keys", fmt.Sprintf("Cannot delete more than %d objects at once", MaxDeleteKeys))
	}

	keys := make([]string, 0, len(items))
	for i, item := range items {
		path := indexPath("keys", i)
		key, ok := f.asString(path, item)
		if !ok {
			continue
		}
		f.checkKey(path, key, keyEmpty, keyInvalid)
		keys = append(keys, key)
	}
	return DeleteRequest{Keys: keys}
}

func RenameSchema(f *Fields) RenameRequest {
	return RenameRequest{
		OldKey: f.Key("oldKey", keyEmpty, keyInvalid),
		NewKey: f.Key("newKey", keyEmpty, keyInvalid),
	}
}

func ShareSchema(f *Fields) ShareRequest {
	req := ShareRequest{}

	if key, ok := f.String("key"); ok {
		f.checkKey("key", key, keyEmpty, keyInvalid)
		// Folder markers are zero-byte placeholders; presigning one is meaningless.
		if _, ok := ResolveKey(key); ok && IsValidKey(key) && strings.HasSuffix(key, "/") {
			f.Fail("key", "Folders cannot be shared, select a file instead")
		}
		req.Key = key
	}

	if duration, ok := f.Number("duration"); ok {
		if duration <= 0 {
			f.Fail("duration", "Duration must be positive")
		}
		req.Duration = duration
	}

	if unit, ok := f.String("unit"); ok {
		if !Unit(unit).Valid() {
			f.Fail("unit", fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quotedUnits(), unit))
		}
		req.Unit = Unit(unit)
	}

	return req
}

func CreateFolderSchema(f *Fields) CreateFolderRequest {
	return CreateFolderRequest{
		Path:       f.Prefix("path"),
		FolderName: f.Key("folderName", "Folder name must not be empty", "Folder name contains invalid characters"),
	}
}

func quotedUnits() string {
	quoted := make([]string, len(Units))
	for i, u := range Units {
		quoted[i] = "'" + string(u) + "'"
	}
	return strings.Join(quoted, " | ")
}
