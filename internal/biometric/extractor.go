// Package biometric defines the feature vector type, its distance metric,
// and the client for the external template extraction service.
package biometric

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultExtractorURL     = "http://localhost:8000"
	defaultExtractorTimeout = 30 * time.Second
)

// ErrNoFaceDetected is returned when the extraction service could not find
// a face in the submitted image. It is a caller-visible failure, not a core fault.
var ErrNoFaceDetected = errors.New("no face detected in image")

// Extractor computes face templates using the external extraction server.
// Image decoding and the vision model live entirely on the other side of
// this HTTP boundary.
type Extractor struct {
	baseURL string
	client  *http.Client
}

// NewExtractor creates a new extraction client.
func NewExtractor(baseURL string, timeout time.Duration) *Extractor {
	if baseURL == "" {
		baseURL = defaultExtractorURL
	}
	if timeout <= 0 {
		timeout = defaultExtractorTimeout
	}
	return &Extractor{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// extractResponse represents the response from the extraction server.
type extractResponse struct {
	Dim       int       `json:"dim"`
	Embedding []float32 `json:"embedding"`
	Model     string    `json:"model"`
}

// Extract submits raw image bytes and returns the face template.
// Returns ErrNoFaceDetected when the service reports no usable face.
func (e *Extractor) Extract(ctx context.Context, imageData []byte) (FeatureVector, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/extract", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extractor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read extractor response: %w", err)
	}

	// The extraction service answers 422 when the image decodes but
	// contains no detectable face.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrNoFaceDetected
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extractor error (status %d): %s", resp.StatusCode, string(body))
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse extractor response: %w", err)
	}

	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("extractor returned empty embedding")
	}
	if result.Dim != 0 && result.Dim != len(result.Embedding) {
		return nil, fmt.Errorf("extractor dim mismatch: declared %d, got %d", result.Dim, len(result.Embedding))
	}

	return FeatureVector(result.Embedding), nil
}
