package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/auth"
	"github.com/AnshRaj112/voxa-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		err        error
		status     int
		wantStack  bool
	}{
		{"validation", false, apperr.Validation("title is required"), http.StatusBadRequest, false},
		{"not found", true, apperr.NotFound("Goal not found"), http.StatusNotFound, false},
		{"conflict", true, apperr.Conflict("try again"), http.StatusConflict, false},
		{"internal in development", false, errors.New("mongo down"), http.StatusInternalServerError, true},
		{"internal in production", true, errors.New("mongo down"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			errorWriter{production: tt.production}.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotContains(t, body.Error, "mongo")
			if tt.wantStack {
				assert.NotEmpty(t, body.Stack)
				assert.Equal(t, "INTERNAL_ERROR", body.Code)
			} else {
				assert.Empty(t, body.Stack)
				assert.Empty(t, body.Code)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"hi","extra":1}`))
	require.NoError(t, decodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "hi", dst.Title)

	for _, body := range []string{"", "[", `{"title":5}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := decodeJSON(httptest.NewRecorder(), req, &dst)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), body)
	}
}

type memStore struct {
	key  string
	body []byte
}

func (m *memStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.key, m.body = key, b
	return "https://cdn.example.com/" + key, nil
}

func audioRequest(t *testing.T, field, contentType string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="note.webm"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/audio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{ID: "u1"}))
}

func TestAudioUpload(t *testing.T) {
	store := &memStore{}
	h := NewAudioHandler(services.NewAudioService(store, nil), false)

	rec := httptest.NewRecorder()
	h.Upload(rec, audioRequest(t, "audio", "audio/webm", []byte("voice")))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(store.key, "audio/u1/recording_"))
	assert.Equal(t, []byte("voice"), store.body)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "https://cdn.example.com/"+store.key, body.Data.URL)
}

func TestAudioUpload_Rejects(t *testing.T) {
	h := NewAudioHandler(services.NewAudioService(&memStore{}, nil), false)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"wrong field", audioRequest(t, "file", "audio/webm", []byte("voice"))},
		{"not audio", audioRequest(t, "audio", "image/png", []byte("png"))},
		{"too large", audioRequest(t, "audio", "audio/webm", make([]byte, services.MaxAudioSize+(2<<20)))},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/api/uploads/audio", strings.NewReader("{}"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Upload(rec, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMe(t *testing.T) {
	rec := httptest.NewRecorder()
	Me(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.JSONEq(t, `{"success":true,"data":null}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodDelete, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not Found - DELETE /nope"}`, rec.Body.String())
}
