package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
)

// MaxAudioSize caps a single recording upload.
const MaxAudioSize = 10 << 20

// AudioStore saves recordings and returns a URL clients can fetch them from.
type AudioStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// AudioUpload is one recording received from a client.
type AudioUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AudioService struct {
	store AudioStore
	now   Clock
}

func NewAudioService(store AudioStore, now Clock) *AudioService {
	return &AudioService{store: store, now: orNow(now)}
}

// Upload stores a recording under audio/<userID>/recording_<unix ms>.<ext> and returns its URL.
func (s *AudioService) Upload(ctx context.Context, userID string, up AudioUpload) (string, error) {
	if up.Size <= 0 {
		return "", apperr.Validation("audio file is empty")
	}
	if up.Size > MaxAudioSize {
		return "", apperr.Validation("audio file must be at most 10MB")
	}
	mediaType, _, err := mime.ParseMediaType(up.ContentType)
	if err != nil || !(strings.HasPrefix(mediaType, "audio/") || mediaType == "application/octet-stream") {
		return "", apperr.Validation("audio must be an audio file")
	}

	key := fmt.Sprintf("audio/%s/recording_%d.%s", userID, s.now().UnixMilli(), audioExt(up.Filename, mediaType))
	url, err := s.store.Put(ctx, key, up.Body, up.Size, mediaType)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("store audio: %w", err))
	}
	return url, nil
}

func audioExt(filename, mediaType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" {
		return ext
	}
	if sub, ok := strings.CutPrefix(mediaType, "audio/"); ok && sub != "" {
		switch sub {
		case "mpeg":
			return "mp3"
		case "x-wav", "wave":
			return "wav"
		}
		return sub
	}
	return "webm"
}
