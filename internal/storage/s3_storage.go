package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/internal/app/model"
)

// S3API is the subset of the S3 client the preview store needs
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner issues temporary GET URLs
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config holds the settings for the S3 preview store
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	URLExpiry       time.Duration
}

// S3PreviewStore keeps previews as objects under a scratch prefix and hands
// out presigned GET URLs. Release deletes the object.
type S3PreviewStore struct {
	client    S3API
	presigner Presigner
	bucket    string
	prefix    string
	expiry    time.Duration
}

func NewS3PreviewStore(ctx context.Context, cfg S3Config) *S3PreviewStore {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
		if err != nil {
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	client := s3.NewFromConfig(awsCfg)
	return NewS3PreviewStoreWithClient(client, s3.NewPresignClient(client), cfg)
}

// NewS3PreviewStoreWithClient builds the store around an existing client
func NewS3PreviewStoreWithClient(client S3API, presigner Presigner, cfg S3Config) *S3PreviewStore {
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "previews"
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &S3PreviewStore{
		client:    client,
		presigner: presigner,
		bucket:    cfg.Bucket,
		prefix:    prefix,
		expiry:    expiry,
	}
}

func (s *S3PreviewStore) key(id string) string {
	return s.prefix + "/" + id
}

func (s *S3PreviewStore) Put(ctx context.Context, filename, contentType string, data []byte) (model.Preview, error) {
	id := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	key := s.key(id)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return model.Preview{}, fmt.Errorf("failed to upload preview: %w", err)
	}

	presigned, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		// the object is useless without a URL
		_ = s.Release(ctx, id)
		return model.Preview{}, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return model.Preview{ID: id, URL: presigned.URL}, nil
}

func (s *S3PreviewStore) Release(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete preview %s: %w", id, err)
	}
	return nil
}
