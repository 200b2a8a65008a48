package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/smithy-go"
	"github.com/damacus/iron-files/internal/config"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
)

// DefaultPageSize is the default number of objects to return per page
const DefaultPageSize = 1000

// ErrUnsupported is returned for features the configured backend lacks.
var ErrUnsupported = errors.New("not supported by storage backend")

// ObjectInfo is the backend-neutral view of a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ListObjectsOptions selects one page of a listing. Non-recursive listings
// group keys below the next "/" into Prefixes.
type ListObjectsOptions struct {
	Prefix            string
	Recursive         bool
	MaxKeys           int
	ContinuationToken string
}

// ListObjectsResult contains one page of results from ListObjectsPaginated
type ListObjectsResult struct {
	Objects               []ObjectInfo
	Prefixes              []string
	IsTruncated           bool
	NextContinuationToken string
}

// StorageClient is the set of object operations the file manager needs,
// bound to a single bucket.
type StorageClient interface {
	Bucket() string

	ListObjectsPaginated(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error)
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error)
	CopyObject(ctx context.Context, srcKey, dstKey string) error
	RemoveObject(ctx context.Context, key string) error
	// RemoveObjects deletes at most DefaultPageSize keys in one call.
	RemoveObjects(ctx context.Context, keys []string) error

	// Presigned URLs
	PresignedGetObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error)
	PresignedPutObject(ctx context.Context, key, contentType string, expires time.Duration) (*url.URL, error)
}

// AdminClient is the subset of madmin used for the storage status check.
type AdminClient interface {
	ServerInfo(ctx context.Context, opts ...func(*madmin.ServerInfoOpts)) (madmin.InfoMessage, error)
}

// StorageFactory creates clients for the configured backend
type StorageFactory interface {
	NewClient(cfg config.Storage) (StorageClient, error)
	NewAdminClient(cfg config.Storage) (AdminClient, error)
}

// RealStorageFactory is the production implementation
type RealStorageFactory struct{}

func (f *RealStorageFactory) NewClient(cfg config.Storage) (StorageClient, error) {
	if cfg.Backend == config.BackendS3 {
		client, err := NewS3Storage(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := NewMinioStorage(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewAdminClient only works against MinIO; other backends get ErrUnsupported.
func (f *RealStorageFactory) NewAdminClient(cfg config.Storage) (AdminClient, error) {
	if cfg.Backend != config.BackendMinio {
		return nil, ErrUnsupported
	}
	return newMinioAdmin(cfg)
}

// ErrorCode extracts the backend error code (NoSuchKey, AccessDenied, ...)
// for server-side logs. It returns "" for errors that carry none.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		return minioErr.Code
	}
	return ""
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	// Local development endpoints
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, minio2:9000, etc.)
	// Only match simple hostnames without dots (not domain names like minio.example.com)
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}

// splitEndpoint accepts "host:port" or a full URL and returns the host part
// together with whether TLS should be used.
func splitEndpoint(cfg config.Storage) (string, bool) {
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), !cfg.Insecure
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	}
	return endpoint, !cfg.Insecure && shouldUseSSL(endpoint)
}

// endpointURL is the inverse of splitEndpoint, for SDKs that want a URL.
func endpointURL(cfg config.Storage) string {
	host, secure := splitEndpoint(cfg)
	if secure {
		return "https://" + host
	}
	return "http://" + host
}
