package handlers

import (
	"net/http"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/database"
	log "github.com/sirupsen/logrus"
)

// EnrollHandler handles voter registration.
type EnrollHandler struct {
	config    *config.Config
	store     database.TemplateStore
	extractor *biometric.Extractor
}

// NewEnrollHandler creates a new enrollment handler.
func NewEnrollHandler(cfg *config.Config, store database.TemplateStore, extractor *biometric.Extractor) *EnrollHandler {
	return &EnrollHandler{
		config:    cfg,
		store:     store,
		extractor: extractor,
	}
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	VoterID int64  `json:"voter_id"`
	Name    string `json:"name"`
}

// Register enrolls a voter from a multipart form with national_id, name and
// a face image. The extracted template is stored with voted=false.
func (h *EnrollHandler) Register(w http.ResponseWriter, r *http.Request) {
	imageData, err := readImageFile(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}

	nationalID := r.FormValue("national_id")
	name := r.FormValue("name")
	if nationalID == "" || name == "" {
		respondError(w, http.StatusBadRequest, "national_id and name are required")
		return
	}

	template, err := h.extractor.Extract(r.Context(), imageData)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	if dim := h.config.Extractor.Dim; dim > 0 && len(template) != dim {
		log.WithFields(log.Fields{"expected": dim, "got": len(template)}).
			Error("extractor returned unexpected template dimension")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	voterID, err := h.store.Enroll(r.Context(), nationalID, name, template)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	log.WithFields(log.Fields{"voter_id": voterID}).Info("voter enrolled")

	respondJSON(w, http.StatusCreated, RegisterResponse{
		VoterID: voterID,
		Name:    name,
	})
}
