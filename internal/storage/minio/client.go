package minio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/newsletter-server/internal/model"
)

// minioAPI is the subset of *minio.Client used by Client.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// minioClientWrapper narrows GetObject's return type to io.ReadCloser.
type minioClientWrapper struct{ *minio.Client }

func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

var _ model.Storage = (*Client)(nil)

// Client stores archived objects in a single MinIO bucket.
type Client struct {
	api    minioAPI
	bucket string
}

// NewClient creates a storage client on top of client and makes sure bucket exists.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{Client: client}, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
	}

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// sizer is implemented by bytes.Reader, bytes.Buffer and strings.Reader.
type sizer interface {
	Len() int
}

// Upload stores reader under key. The content type is derived from the key
// extension, and the size is passed through when the reader knows it so the
// upload avoids multipart buffering.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader) error {
	size := int64(-1)
	if s, ok := reader.(sizer); ok {
		size = int64(s.Len())
	}

	opts := minio.PutObjectOptions{ContentType: contentType(key)}
	if _, err := c.api.PutObject(ctx, c.bucket, key, reader, size, opts); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether key is present. A missing key is not an error.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.api.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func contentType(key string) string {
	switch ext := path.Ext(key); ext {
	case ".eml":
		return "message/rfc822"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
