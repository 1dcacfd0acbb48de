package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/smartrecipe/backend/config"
)

// ImageService stores recipe images in S3. A nil service means image
// uploads are disabled.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	if s3Config == nil {
		return nil
	}
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage stores the image under the recipe's key prefix and
// returns the public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	key := fmt.Sprintf("recipes/%s/%s", recipeID, uuid.New())
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.s3Config.BucketName, s.s3Config.Region, key)
	return url, nil
}
