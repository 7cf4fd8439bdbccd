package config

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 client and bucket used for recipe images
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
	Endpoint   string
	BaseURL    string
}

// NewS3Config initializes the S3 client from the application config. A custom
// endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Config{
		Client:     client,
		BucketName: cfg.S3Bucket,
		Region:     cfg.S3Region,
		Endpoint:   cfg.S3Endpoint,
		BaseURL:    cfg.MediaBaseURL,
	}, nil
}

// Save uploads an object to the bucket
func (s *S3Config) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Remove deletes an object from the bucket
func (s *S3Config) Remove(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL of an object
func (s *S3Config) URL(key string) string {
	switch {
	case s.BaseURL != "":
		return s.BaseURL + "/" + key
	case s.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.Endpoint, s.BucketName, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.BucketName, s.Region, key)
	}
}
