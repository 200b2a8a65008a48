package validation

import "time"

const (
	// MaxDeleteKeys is both the request limit for a delete and the batch size
	// accepted by a single S3 DeleteObjects call.
	MaxDeleteKeys = 1000

	// MaxShareExpiry is the longest lifetime a share link may have (7 days).
	MaxShareExpiry = 604800 * time.Second

	DownloadURLExpiry = 300 * time.Second
	UploadURLExpiry   = 3600 * time.Second
)
