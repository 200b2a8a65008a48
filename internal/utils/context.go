// Package utils provides shared utility functions and constants
package utils

// Context keys shared between middleware and handlers
const (
	ContextKeyLogger = "logger"
	ContextKeyCSRF   = "csrf"
)
