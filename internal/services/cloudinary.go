package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore keeps recordings in Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	// Cloudinary appends the format itself.
	publicID := strings.TrimSuffix(key, pathExt(key))

	res, err := s.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "auto", // audio is stored as a video resource
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", errors.New("cloudinary: " + res.Error.Message)
	}
	return res.SecureURL, nil
}

func pathExt(key string) string {
	i := strings.LastIndex(key, ".")
	if i < 0 || strings.Contains(key[i:], "/") {
		return ""
	}
	return key[i:]
}
