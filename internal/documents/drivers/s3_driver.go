package drivers

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const fallbackMimeType = "application/octet-stream"

// S3Driver stores document binaries in an S3-compatible bucket. All
// objects live under Prefix so one bucket can be shared with other
// deployments without key collisions.
type S3Driver struct {
	Client        *s3.Client
	PresignClient *s3.PresignClient
	Bucket        string
	Prefix        string
	PublicURL     string
}

func NewS3Driver(client *s3.Client, bucket, prefix, publicURL string) *S3Driver {
	return &S3Driver{
		Client:        client,
		PresignClient: s3.NewPresignClient(client),
		Bucket:        bucket,
		Prefix:        strings.Trim(prefix, "/"),
		PublicURL:     publicURL,
	}
}

// objectKey places a document key under the driver prefix. Keys arrive
// already mission-scoped ("missions/<id>/<uuid>.pdf"), so this only
// prepends the deployment prefix.
func (d *S3Driver) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if d.Prefix == "" {
		return key
	}
	return path.Join(d.Prefix, key)
}

func (d *S3Driver) Save(ctx context.Context, key string, content io.Reader, contentType string) error {
	if contentType == "" {
		contentType = fallbackMimeType
	}

	_, err := d.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.Bucket),
		Key:         aws.String(d.objectKey(key)),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (d *S3Driver) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	resp, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(d.objectKey(key)),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get from S3: %w", err)
	}

	contentType := fallbackMimeType
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}

	return resp.Body, contentType, nil
}

func (d *S3Driver) Delete(ctx context.Context, key string) error {
	_, err := d.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(d.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (d *S3Driver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if d.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(d.PublicURL, "/"), d.objectKey(key)), nil
	}

	if expires == 0 {
		expires = time.Hour
	}

	presignedReq, err := d.PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(d.objectKey(key)),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return presignedReq.URL, nil
}
