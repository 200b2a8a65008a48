package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/damacus/iron-files/internal/config"
)

// S3API is the part of *s3.Client used by S3Storage.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Presigner is the part of *s3.PresignClient used by S3Storage.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage implements StorageClient with the AWS SDK. It targets AWS S3
// and S3-compatible services such as Cloudflare R2.
type S3Storage struct {
	client    S3API
	presigner S3Presigner
	bucket    string
}

// NewS3Storage builds an SDK client from static credentials. An empty
// endpoint means AWS itself.
func NewS3Storage(ctx context.Context, cfg config.Storage) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			cfg.SessionToken,
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg))
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return NewS3StorageWithClient(client, s3.NewPresignClient(client), cfg.Bucket), nil
}

// NewS3StorageWithClient wires pre-built clients, mainly for tests.
func NewS3StorageWithClient(client S3API, presigner S3Presigner, bucket string) *S3Storage {
	return &S3Storage{client: client, presigner: presigner, bucket: bucket}
}

func (c *S3Storage) Bucket() string {
	return c.bucket
}

func (c *S3Storage) ListObjectsPaginated(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultPageSize
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(opts.Prefix),
		MaxKeys: aws.Int32(int32(maxKeys)),
	}
	if !opts.Recursive {
		input.Delimiter = aws.String("/")
	}
	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}

	out, err := c.client.ListObjectsV2(ctx, input)
	if err != nil {
		return ListObjectsResult{}, err
	}

	var result ListObjectsResult
	for _, p := range out.CommonPrefixes {
		if p.Prefix != nil {
			result.Prefixes = append(result.Prefixes, *p.Prefix)
		}
	}
	for _, obj := range out.Contents {
		if obj.Key == nil {
			continue
		}
		result.Objects = append(result.Objects, ObjectInfo{
			Key:          *obj.Key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	result.IsTruncated = aws.ToBool(out.IsTruncated)
	result.NextContinuationToken = aws.ToString(out.NextContinuationToken)

	return result, nil
}

func (c *S3Storage) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := c.client.PutObject(ctx, input)
	return err
}

func (c *S3Storage) GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, err
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

func (c *S3Storage) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.bucket),
		CopySource: aws.String(copySource(c.bucket, srcKey)),
		Key:        aws.String(dstKey),
	})
	return err
}

func (c *S3Storage) RemoveObject(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (c *S3Storage) RemoveObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	ids := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		ids[i] = types.ObjectIdentifier{Key: aws.String(key)}
	}

	out, err := c.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(c.bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return err
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("remove %d of %d objects: %s: %s",
			len(out.Errors), len(keys), aws.ToString(first.Code), aws.ToString(first.Message))
	}
	return nil
}

func (c *S3Storage) PresignedGetObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return nil, err
	}
	return url.Parse(req.URL)
}

func (c *S3Storage) PresignedPutObject(ctx context.Context, key, contentType string, expires time.Duration) (*url.URL, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return nil, err
	}
	return url.Parse(req.URL)
}

// copySource builds the URL-encoded "bucket/key" form CopyObject expects,
// keeping the separators between key segments intact.
func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return bucket + "/" + strings.Join(segments, "/")
}
