package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/warblerhq/warbler/backend/config"
)

// ImageService stores profile and header images in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadProfileImage uploads image data under a random key and returns the
// public URL. The bucket carries a public-read policy.
func (s *ImageService) UploadProfileImage(ctx context.Context, body io.Reader, contentType string) (string, error) {
	ext := extensionFor(contentType)
	key := path.Join("profile-images", uuid.NewString()+ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] uploaded image %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".png"
	}
	return exts[0]
}
