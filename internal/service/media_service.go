package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	// Register decoders so upload dimensions can be probed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/webestudio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMediaFileMissing   = errors.New("media file is required")
	ErrMediaNotConfigured = errors.New("media upload is not configured")
	ErrMediaUploadFailed  = errors.New("media upload failed")
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MediaService uploads images to the external media API and keeps a
// denormalized history of the returned public URLs for reuse.
type MediaService struct {
	db           *gorm.DB
	http         httpDoer
	apiBaseURL   string
	cloudName    string
	uploadPreset string
}

type mediaUploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewMediaService creates a MediaService instance. cloudName may be
// empty, in which case uploads are rejected until configured.
func NewMediaService(gdb *gorm.DB, apiBaseURL, cloudName, uploadPreset string) *MediaService {
	return &MediaService{
		db:           gdb,
		http:         &http.Client{Timeout: 60 * time.Second},
		apiBaseURL:   strings.TrimRight(strings.TrimSpace(apiBaseURL), "/"),
		cloudName:    strings.TrimSpace(cloudName),
		uploadPreset: strings.TrimSpace(uploadPreset),
	}
}

// SetHTTPClient overrides the outbound HTTP client, mainly for tests.
func (s *MediaService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 60 * time.Second}
		return
	}
	s.http = client
}

// Upload sends the image bytes to the media endpoint as a multipart
// form with the file and the upload preset, records the returned
// public URL in the history and returns the new row. A failed upload
// leaves the history untouched.
func (s *MediaService) Upload(ctx context.Context, filename string, data []byte) (*db.MediaUpload, error) {
	if len(data) == 0 {
		return nil, ErrMediaFileMissing
	}
	if s.cloudName == "" {
		return nil, ErrMediaNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.WriteField("upload_preset", s.uploadPreset); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", s.apiBaseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUploadFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUploadFailed, err)
	}

	var parsed mediaUploadResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unexpected response", ErrMediaUploadFailed)
	}
	if resp.StatusCode != http.StatusOK || parsed.SecureURL == "" {
		message := strings.TrimSpace(parsed.Error.Message)
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrMediaUploadFailed, message)
	}

	width, height := probeDimensions(data)
	upload := db.MediaUpload{
		URL:    parsed.SecureURL,
		Width:  width,
		Height: height,
	}
	if err := s.db.Create(&upload).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// History returns past uploads, newest first. A non-positive limit
// returns everything.
func (s *MediaService) History(limit int) ([]db.MediaUpload, error) {
	query := s.db.Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var uploads []db.MediaUpload
	if err := query.Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// probeDimensions reads the image header only; unrecognized formats
// report zero dimensions rather than an error.
func probeDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
