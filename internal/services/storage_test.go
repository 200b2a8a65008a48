package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/damacus/iron-files/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldUseSSL_Localhost(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"localhost:9000", false},
		{"127.0.0.1:9000", false},
		{"minio:9000", false},
		{"play.minio.io:9000", true},
		{"s3.amazonaws.com", true},
		{"minio.example.com:9000", true},
		{"localhost:9001", true}, // Different port
		{"192.168.1.100:9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got := shouldUseSSL(tt.endpoint)
			if got != tt.want {
				t.Errorf("shouldUseSSL(%q) = %v, want %v", tt.endpoint, got, tt.want)
			}
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Storage
		wantHost   string
		wantSecure bool
		wantURL    string
	}{
		{"bare host", config.Storage{Endpoint: "play.min.io:9000"}, "play.min.io:9000", true, "https://play.min.io:9000"},
		{"local minio", config.Storage{Endpoint: "localhost:9000"}, "localhost:9000", false, "http://localhost:9000"},
		{"insecure flag", config.Storage{Endpoint: "files.internal:9000", Insecure: true}, "files.internal:9000", false, "http://files.internal:9000"},
		{"https url", config.Storage{Endpoint: "https://acct.r2.cloudflarestorage.com/"}, "acct.r2.cloudflarestorage.com", true, "https://acct.r2.cloudflarestorage.com"},
		{"http url", config.Storage{Endpoint: "http://minio:9000"}, "minio:9000", false, "http://minio:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure := splitEndpoint(tt.cfg)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
			assert.Equal(t, tt.wantURL, endpointURL(tt.cfg))
		})
	}
}

func TestMinioRegion(t *testing.T) {
	assert.Equal(t, "", minioRegion("auto"))
	assert.Equal(t, "eu-west-1", minioRegion("eu-west-1"))
}

func TestErrorCode(t *testing.T) {
	t.Run("smithy api error", func(t *testing.T) {
		err := fmt.Errorf("list: %w", &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})
		assert.Equal(t, "AccessDenied", ErrorCode(err))
	})

	t.Run("minio error response", func(t *testing.T) {
		err := fmt.Errorf("copy: %w", minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"})
		assert.Equal(t, "NoSuchKey", ErrorCode(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "", ErrorCode(errors.New("dial tcp: refused")))
	})
}

func TestRealStorageFactory_Implements_Interface(t *testing.T) {
	// Compile-time check that RealStorageFactory implements StorageFactory
	var _ StorageFactory = (*RealStorageFactory)(nil)
	var _ StorageClient = (*MinioStorage)(nil)
	var _ StorageClient = (*S3Storage)(nil)
}

func TestRealStorageFactory_NewClient(t *testing.T) {
	f := &RealStorageFactory{}

	client, err := f.NewClient(config.Storage{
		Backend:         config.BackendMinio,
		Endpoint:        "localhost:9000",
		AccessKeyID:     "admin",
		SecretAccessKey: "password",
		Bucket:          "files",
	})
	require.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, client)
	assert.Equal(t, "files", client.Bucket())

	client, err = f.NewClient(config.Storage{
		Backend:         config.BackendS3,
		Endpoint:        "https://acct.r2.cloudflarestorage.com",
		Region:          "auto",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "media",
		PathStyle:       true,
	})
	require.NoError(t, err)
	assert.IsType(t, &S3Storage{}, client)
	assert.Equal(t, "media", client.Bucket())
}

func TestRealStorageFactory_NewAdminClient(t *testing.T) {
	f := &RealStorageFactory{}

	_, err := f.NewAdminClient(config.Storage{Backend: config.BackendS3})
	assert.ErrorIs(t, err, ErrUnsupported)

	adm, err := f.NewAdminClient(config.Storage{
		Backend:         config.BackendMinio,
		Endpoint:        "localhost:9000",
		AccessKeyID:     "admin",
		SecretAccessKey: "password",
	})
	require.NoError(t, err)
	assert.NotNil(t, adm)
}
