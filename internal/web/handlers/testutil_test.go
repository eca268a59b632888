package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/config"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(io.Discard)
}

// testConfig returns a config with a small template dimension so tests can
// use short, readable vectors.
func testConfig() *config.Config {
	return &config.Config{
		Extractor: config.ExtractorConfig{
			Dim:     4,
			Timeout: 5 * time.Second,
		},
		Matcher: config.MatcherConfig{
			Threshold: 0.5,
		},
		Auth: config.AuthConfig{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
		},
		Election: config.ElectionConfig{
			Name:       "Test Election",
			Candidates: []string{"Alice", "Bob"},
		},
	}
}

// extractorReturning starts a fake extraction server answering every request
// with the given embedding.
func extractorReturning(t *testing.T, embedding biometric.FeatureVector) *biometric.Extractor {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"dim":       len(embedding),
			"embedding": embedding,
			"model":     "test-model",
		})
	}))
	t.Cleanup(server.Close)
	return biometric.NewExtractor(server.URL, 5*time.Second)
}

// extractorNoFace starts a fake extraction server rejecting every image.
func extractorNoFace(t *testing.T) *biometric.Extractor {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "no face detected"}`, http.StatusUnprocessableEntity)
	}))
	t.Cleanup(server.Close)
	return biometric.NewExtractor(server.URL, 5*time.Second)
}

// multipartRequest builds a multipart form request with an image file part
// and the given form fields.
func multipartRequest(t *testing.T, path string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if withFile {
		part, err := writer.CreateFormFile("file", "face.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write image data: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// parseJSONResponse decodes the recorded response body into target.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
}

// assertStatusCode fails the test if the recorded status differs.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks the error message of a JSON error response.
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var body map[string]string
	parseJSONResponse(t, recorder, &body)
	if body["error"] != expected {
		t.Errorf("expected error %q, got %q", expected, body["error"])
	}
}
