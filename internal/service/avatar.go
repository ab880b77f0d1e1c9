package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutritrack/backend/config"
)

// maxAvatarBytes caps uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

var ErrAvatarTooLarge = fmt.Errorf("avatar exceeds %d bytes", maxAvatarBytes)

// AvatarService stores user avatar images in S3.
type AvatarService struct {
	s3Config *config.S3Config
}

func NewAvatarService(s3Config *config.S3Config) *AvatarService {
	return &AvatarService{s3Config: s3Config}
}

// Upload reads the image, uploads it under a fresh key, and returns the
// public URL.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxAvatarBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) > maxAvatarBytes {
		return "", ErrAvatarTooLarge
	}
	if contentType == "" {
		contentType = "image/png"
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, uuid.New())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[AvatarService] uploaded avatar for user %s: %s", userID, url)
	return url, nil
}
