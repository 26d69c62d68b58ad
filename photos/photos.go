// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package photos

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store persists uploaded photos and returns an opaque reference to them
type Store interface {
	Save(ctx context.Context, data []byte, suggestedName string) (string, error)
}

// objectName keeps the base of the suggested name behind a unique prefix
func objectName(suggestedName string) string {
	base := filepath.Base(filepath.Clean("/" + suggestedName))
	if base == "/" || base == "." {
		return uuid.NewString()
	}
	return uuid.NewString()[:8] + "-" + base
}

// Disk writes photos into a local directory; the reference is the file path
type Disk struct {
	dir string
}

func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

func (d *Disk) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(d.dir, objectName(suggestedName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return path, nil
}

// S3API is the subset of the S3 client used here
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads photos to a bucket; the reference is the public URL
type S3 struct {
	client    S3API
	bucket    string
	publicURL string
}

const s3KeyPrefix = "food-photos/"

// NewS3 loads the default AWS credential chain for region.
// An empty publicURL falls back to the bucket's virtual-hosted URL.
func NewS3(ctx context.Context, region, bucket, publicURL string) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return NewS3WithClient(s3.NewFromConfig(cfg), bucket, publicURL), nil
}

func NewS3WithClient(client S3API, bucket, publicURL string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	key := s3KeyPrefix + objectName(suggestedName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.publicURL + "/" + key, nil
}
