// Package s3store publishes the exported resource tree to an S3 bucket so it
// can be served statically.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ersonp/plenum/internal/infrastructure/config"
)

// ContentType is the media type of every exported resource.
const ContentType = "application/json"

// putObjectAPI is the subset of the S3 client used by Writer.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Writer implements ports.ResourceWriter on top of an S3 bucket.
// Resource paths become object keys below the configured prefix.
type Writer struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewWriter creates an S3-backed resource writer.
func NewWriter(ctx context.Context, cfg config.S3Config) (*Writer, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO/LocalStack
		}
	})

	return newWriter(client, cfg.Bucket, cfg.Prefix), nil
}

func newWriter(client putObjectAPI, bucket, prefix string) *Writer {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Writer{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Location returns the s3:// URL below which resources are written.
func (w *Writer) Location() string {
	return "s3://" + w.bucket + "/" + w.prefix
}

// Key returns the object key for a resource path.
func (w *Writer) Key(path string) string {
	return w.prefix + strings.TrimPrefix(path, "/")
}

// WriteResource uploads data, replacing any existing object at the same key.
func (w *Writer) WriteResource(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return errors.New("resource path is required")
	}

	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(w.Key(path)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", path, err)
	}

	return nil
}
