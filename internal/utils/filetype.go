package utils

import (
	"path/filepath"
	"strings"
)

// File categories shown by the file list filters.
const (
	CategoryVideo    = "VIDEO"
	CategoryImage    = "IMAGE"
	CategoryDocument = "DOCUMENT"
	CategoryAudio    = "AUDIO"
	CategoryArchive  = "ARCHIVE"
	CategoryCode     = "CODE"
	CategoryFile     = "FILE"
)

var categoryByExt = map[string]string{}

func init() {
	groups := map[string][]string{
		CategoryVideo:    {"mp4", "mov", "avi", "mkv", "webm", "flv", "wmv"},
		CategoryImage:    {"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "ico"},
		CategoryDocument: {"pdf", "doc", "docx", "txt", "rtf", "odt"},
		CategoryAudio:    {"mp3", "wav", "ogg", "flac", "m4a", "aac"},
		CategoryArchive:  {"zip", "rar", "7z", "tar", "gz", "bz2"},
		CategoryCode:     {"js", "ts", "jsx", "tsx", "py", "java", "cpp", "c", "go", "rs", "php", "rb", "html", "css"},
	}
	for category, exts := range groups {
		for _, ext := range exts {
			categoryByExt[ext] = category
		}
	}
}

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".zip":  "application/zip",
	".rar":  "application/x-rar-compressed",
	".7z":   "application/x-7z-compressed",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".js":   "text/javascript",
	".ts":   "text/typescript",
	".json": "application/json",
	".xml":  "application/xml",
	".html": "text/html",
	".css":  "text/css",
}

// Extension returns the lower-cased extension without the dot.
func Extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Category classifies a file by extension.
func Category(name string) string {
	if c, ok := categoryByExt[Extension(name)]; ok {
		return c
	}
	return CategoryFile
}

// ContentTypeFromExt guesses a MIME type, falling back to octet-stream.
func ContentTypeFromExt(name string) string {
	if t, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}
