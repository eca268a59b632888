package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/voting"
	"github.com/kozaktomas/securevote/internal/web/middleware"
)

// VoteHandler handles ballot casting and voter status for authenticated voters.
type VoteHandler struct {
	config *config.Config
	guard  *voting.BallotGuard
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(cfg *config.Config, guard *voting.BallotGuard) *VoteHandler {
	return &VoteHandler{
		config: cfg,
		guard:  guard,
	}
}

// voteRequest represents a ballot submission.
type voteRequest struct {
	Candidate string `json:"candidate"`
}

// VoteResponse represents a recorded ballot.
type VoteResponse struct {
	Receipt   string `json:"receipt"`
	Candidate string `json:"candidate"`
	CastAt    string `json:"cast_at"`
}

// Cast records exactly one ballot for the authenticated voter.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	voterID, ok := middleware.VoterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing credential")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Candidate == "" {
		respondError(w, http.StatusBadRequest, "candidate is required")
		return
	}
	if !h.config.Election.HasCandidate(req.Candidate) {
		respondError(w, http.StatusBadRequest, "unknown candidate")
		return
	}

	record, err := h.guard.CastBallot(r.Context(), voterID, req.Candidate)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, VoteResponse{
		Receipt:   record.Receipt.String(),
		Candidate: record.Candidate,
		CastAt:    record.CastAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// StatusResponse represents a voter's status.
type StatusResponse struct {
	Name  string `json:"name"`
	Voted bool   `json:"voted"`
}

// Status returns the authenticated voter's display name and voted flag.
func (h *VoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	voterID, ok := middleware.VoterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing credential")
		return
	}

	status, err := h.guard.Status(r.Context(), voterID)
	if err != nil {
		respondCoreError(w, err)
		return
	}
	if status == nil {
		respondError(w, http.StatusNotFound, "voter not found")
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		Name:  status.Name,
		Voted: status.Voted,
	})
}
