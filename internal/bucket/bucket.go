// Package bucket stores food images in S3 compatible object storage.
package bucket

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tastehub/tastehub-manager/internal/dependency"
)

type Config struct {
	S3AccessKey       string `mapstructure:"s3_access_key"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	S3BucketLocation  string `mapstructure:"s3_bucket_location"`
	BaseFolder        string `mapstructure:"base_folder"`
}

type Bucket struct {
	*minio.Client
	*Config
}

func (c *Config) Init() (dependency.FileStore, error) {
	cli, err := minio.New(c.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretAccessKey, ""),
		Secure: true,
		Region: c.S3BucketLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Bucket{
		Client: cli,
		Config: c,
	}, nil
}

// UploadImage writes the object under a random name and returns its public
// URL. When contentType is empty it is sniffed from the payload. Only jpeg
// and png uploads are accepted.
func (b *Bucket) UploadImage(ctx context.Context, raw []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}
	ext, ok := extensionForContentType(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported image content type: %s", contentType)
	}

	objectName := path.Join(b.BaseFolder, uuid.New().String()+"."+ext)
	_, err := b.PutObject(ctx, b.S3BucketName, objectName,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	return b.objectURL(objectName), nil
}

// DeleteImage removes a previously uploaded object given its public URL.
// Foreign URLs are ignored so that catalog rows pointing at external images
// can still be deleted.
func (b *Bucket) DeleteImage(ctx context.Context, imageURL string) error {
	prefix := b.objectURL("")
	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(imageURL, prefix)
	if err := b.RemoveObject(ctx, b.S3BucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectName, err)
	}
	return nil
}

func (b *Bucket) objectURL(objectName string) string {
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, objectName)
}

func extensionForContentType(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return "jpg", true
	case "image/png":
		return "png", true
	default:
		return "", false
	}
}
