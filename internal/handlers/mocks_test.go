package handlers

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/damacus/iron-files/internal/config"
	"github.com/damacus/iron-files/internal/services"
	"github.com/minio/madmin-go/v3"
	"github.com/stretchr/testify/mock"
)

type MockStorageClient struct {
	mock.Mock
}

func (m *MockStorageClient) Bucket() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStorageClient) ListObjectsPaginated(ctx context.Context, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *MockStorageClient) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorageClient) GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorageClient) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	args := m.Called(ctx, srcKey, dstKey)
	return args.Error(0)
}

func (m *MockStorageClient) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageClient) RemoveObjects(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockStorageClient) PresignedGetObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockStorageClient) PresignedPutObject(ctx context.Context, key, contentType string, expires time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, contentType, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

type MockAdminClient struct {
	mock.Mock
}

func (m *MockAdminClient) ServerInfo(ctx context.Context, opts ...func(*madmin.ServerInfoOpts)) (madmin.InfoMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.InfoMessage), args.Error(1)
}

type MockStorageFactory struct {
	mock.Mock
}

func (m *MockStorageFactory) NewClient(cfg config.Storage) (services.StorageClient, error) {
	args := m.Called(cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(services.StorageClient), args.Error(1)
}

func (m *MockStorageFactory) NewAdminClient(cfg config.Storage) (services.AdminClient, error) {
	args := m.Called(cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(services.AdminClient), args.Error(1)
}
