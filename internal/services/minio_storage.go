package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damacus/iron-files/internal/config"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage implements StorageClient with minio-go.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg config.Storage) (*MinioStorage, error) {
	host, secure := splitEndpoint(cfg)
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		Secure: secure,
		Region: minioRegion(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

func newMinioAdmin(cfg config.Storage) (AdminClient, error) {
	host, secure := splitEndpoint(cfg)
	adm, err := madmin.NewWithOptions(host, &madmin.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio admin client: %w", err)
	}
	return adm, nil
}

// "auto" is the R2 convention; minio-go should discover the region itself.
func minioRegion(region string) string {
	if region == "auto" {
		return ""
	}
	return region
}

func (c *MinioStorage) Bucket() string {
	return c.bucket
}

func (c *MinioStorage) ListObjectsPaginated(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultPageSize
	}

	minioOpts := minio.ListObjectsOptions{
		Prefix:    opts.Prefix,
		Recursive: opts.Recursive,
	}

	// Use StartAfter for continuation (MinIO uses marker-based pagination)
	if opts.ContinuationToken != "" {
		minioOpts.StartAfter = opts.ContinuationToken
	}

	// Cancelling stops the listing goroutine once a page is full.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result ListObjectsResult
	var lastKey string
	count := 0

	for obj := range c.client.ListObjects(ctx, c.bucket, minioOpts) {
		if obj.Err != nil {
			return ListObjectsResult{}, obj.Err
		}

		// Non-recursive listings report common prefixes as keys ending in "/"
		// with no ETag; real folder marker objects carry one.
		if !opts.Recursive && strings.HasSuffix(obj.Key, "/") && obj.ETag == "" {
			result.Prefixes = append(result.Prefixes, obj.Key)
		} else {
			result.Objects = append(result.Objects, ObjectInfo{
				Key:          obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				ContentType:  obj.ContentType,
			})
		}
		lastKey = obj.Key
		count++

		// Stop after maxKeys entries
		if count >= maxKeys {
			break
		}
	}

	result.IsTruncated = count >= maxKeys
	if result.IsTruncated {
		result.NextContinuationToken = lastKey
	}

	return result, nil
}

func (c *MinioStorage) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (c *MinioStorage) GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, err
	}
	return obj, info.Size, nil
}

func (c *MinioStorage) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	_, err := c.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: c.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: c.bucket, Object: srcKey},
	)
	return err
}

func (c *MinioStorage) RemoveObject(ctx context.Context, key string) error {
	return c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

func (c *MinioStorage) RemoveObjects(ctx context.Context, keys []string) error {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var firstErr error
	failed := 0
	for rerr := range c.client.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = rerr.Err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("remove %d of %d objects: %w", failed, len(keys), firstErr)
	}
	return nil
}

func (c *MinioStorage) PresignedGetObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	return c.client.PresignedGetObject(ctx, c.bucket, key, expires, nil)
}

// PresignedPutObject signs the Content-Type header so the browser upload must
// use the declared type.
func (c *MinioStorage) PresignedPutObject(ctx context.Context, key, contentType string, expires time.Duration) (*url.URL, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	return c.client.PresignHeader(ctx, http.MethodPut, c.bucket, key, expires, nil, headers)
}
