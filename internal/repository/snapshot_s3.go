package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config holds explicit construction parameters for the S3 driver.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. MinIO
	Prefix    string // optional key prefix
	PathStyle bool
}

// S3Snapshot stores the table as one JSON object, overwritten on every flush.
type S3Snapshot struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Snapshot builds a client from the default AWS credential chain.
func NewS3Snapshot(ctx context.Context, cfg S3Config) (*S3Snapshot, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3SnapshotFromClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SnapshotFromClient wraps an already configured client.
func NewS3SnapshotFromClient(client *s3.Client, bucket, prefix string) *S3Snapshot {
	return &S3Snapshot{client: client, bucket: bucket, key: prefix + SnapshotName + ".json"}
}

// Key returns the object key holding the snapshot
func (s *S3Snapshot) Key() string { return s.key }

func (s *S3Snapshot) Load(ctx context.Context) (model.RoomTable, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrSnapshotNotFound, s.bucket, s.key)
		}
		return nil, fmt.Errorf("get snapshot object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot object: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *S3Snapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put snapshot object: %w", err)
	}
	return nil
}

func (s *S3Snapshot) Close() error { return nil }

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
