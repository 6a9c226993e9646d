package imaging

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"homesafe/safety-portal-backend/internal/config"
)

// Hoster turns raw photo bytes into a publicly fetchable URL. The search
// provider's reverse-image engine only accepts hosted URLs, not payloads.
type Hoster interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3Hoster stores photos as public objects in an S3 bucket
type S3Hoster struct {
	uploader *manager.Uploader
	bucket   string
	region   string
	baseURL  string
}

// NewS3Hoster creates a hoster from imaging configuration using the default
// AWS credential chain
func NewS3Hoster(ctx context.Context, cfg config.ImagingConfig) (*S3Hoster, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Hoster{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the image under a random key and returns its public URL
func (h *S3Hoster) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("checks/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	if h.baseURL != "" {
		return h.baseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.bucket, h.region, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
