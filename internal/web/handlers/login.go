package handlers

import (
	"net/http"
	"time"

	"github.com/kozaktomas/securevote/internal/auth"
	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/matcher"
)

// LoginHandler resolves a live face image to an enrolled identity and
// issues a session credential.
type LoginHandler struct {
	config    *config.Config
	extractor *biometric.Extractor
	matcher   *matcher.Matcher
	issuer    *auth.Issuer
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(cfg *config.Config, extractor *biometric.Extractor, m *matcher.Matcher, issuer *auth.Issuer) *LoginHandler {
	return &LoginHandler{
		config:    cfg,
		extractor: extractor,
		matcher:   m,
		issuer:    issuer,
	}
}

// LoginResponse represents a successful authentication.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Login extracts a probe template from the uploaded image, matches it
// against all enrolled templates and returns a signed session token on
// success.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	imageData, err := readImageFile(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}

	probe, err := h.extractor.Extract(r.Context(), imageData)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	voterID, err := h.matcher.Resolve(r.Context(), probe)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	token, err := h.issuer.Issue(voterID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue credential")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.issuer.TTL()).UTC().Format(time.RFC3339),
	})
}
