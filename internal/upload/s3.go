package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer stores files in a bucket under images/produits/ and returns BaseURL/<key>.
type S3Writer struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3 loads the default AWS configuration for region.
func NewS3(ctx context.Context, region, bucket, baseURL string) (*S3Writer, error) {
	if region == "" {
		region = "eu-west-3"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Writer{client: s3.NewFromConfig(cfg), bucket: bucket, baseURL: baseURL}, nil
}

func (w *S3Writer) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	key := path.Join(ImageDir, name)
	in := &s3.PutObjectInput{
		Bucket: &w.bucket,
		Key:    &key,
		Body:   r,
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		in.ContentType = &ct
	}
	if _, err := w.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	if w.baseURL == "" {
		return "/" + key, nil
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(w.baseURL, "/"), key), nil
}
