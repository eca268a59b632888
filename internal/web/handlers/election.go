package handlers

import (
	"net/http"

	"github.com/kozaktomas/securevote/internal/config"
)

// ElectionHandler serves the public election metadata.
type ElectionHandler struct {
	config *config.Config
}

// NewElectionHandler creates a new election handler.
func NewElectionHandler(cfg *config.Config) *ElectionHandler {
	return &ElectionHandler{config: cfg}
}

// ElectionResponse represents the public election roster.
type ElectionResponse struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

// Candidates returns the election name and the candidate roster.
func (h *ElectionHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ElectionResponse{
		Name:       h.config.Election.Name,
		Candidates: h.config.Election.Candidates,
	})
}
