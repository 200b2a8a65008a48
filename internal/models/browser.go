// Package models contains data structures used across handlers
package models

import "time"

// FileItem represents an object with display metadata
type FileItem struct {
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	FormattedSize string    `json:"formattedSize"`
	LastModified  time.Time `json:"lastModified"`
	Type          string    `json:"type"` // file extension
	Category      string    `json:"category"`
	ContentType   string    `json:"contentType"`
}

// FolderItem represents a folder (common prefix)
type FolderItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Breadcrumb for navigation
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Listing is one level of the folder tree.
type Listing struct {
	Prefix      string       `json:"prefix"`
	Folders     []FolderItem `json:"folders"`
	Files       []FileItem   `json:"files"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
}
