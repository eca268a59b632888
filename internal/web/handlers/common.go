package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/database"
	"github.com/kozaktomas/securevote/internal/matcher"
	"github.com/kozaktomas/securevote/internal/voting"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// maxImageBytes caps uploaded image size at 10 MB.
const maxImageBytes = 10 << 20

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondCoreError maps core failure kinds to HTTP rejections. Every failure
// in the taxonomy becomes a caller-visible status; nothing propagates as a
// crash.
func respondCoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrDuplicateIdentity):
		respondError(w, http.StatusConflict, "national id already registered")
	case errors.Is(err, biometric.ErrNoFaceDetected):
		respondError(w, http.StatusBadRequest, "no face detected in image")
	case errors.Is(err, matcher.ErrNoMatch):
		respondError(w, http.StatusUnauthorized, "face not recognized")
	case errors.Is(err, voting.ErrAlreadyVoted):
		respondError(w, http.StatusConflict, "ballot already cast")
	case errors.Is(err, database.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// readImageFile extracts the uploaded image bytes from a multipart request.
func readImageFile(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxImageBytes))
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
