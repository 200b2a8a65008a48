// Package utils provides shared utility functions
package utils

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count rounded to a whole number of the
// largest fitting unit, e.g. 1536 -> "2 KB". Sizes are capped at TB.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%d %s", int64(math.Round(value)), sizeUnits[unit])
}
