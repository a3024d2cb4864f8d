package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"

	"github.com/mesh05/Techolution-PRM/prm/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// keep alnum, dot, dash, underscore in stored filenames
var safeNameRE = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg config.Config) (*MinIOClient, error) {
	// Use insecure for local (no HTTPS)
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

func SanitizeName(name string) string {
	name = path.Base(name)
	name = safeNameRE.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

// UploadDocument stores a raw document under the conversation's prefix and
// returns the object key.
func (m *MinIOClient) UploadDocument(ctx context.Context, conversationID, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := path.Join("uploads", conversationID, fmt.Sprintf("%s-%s", uuid.New().String(), SanitizeName(filename)))
	_, err := m.client.PutObject(ctx, m.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinIOClient) GetDocument(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
