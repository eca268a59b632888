package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/securevote/internal/biometric"
)

// Voter represents an enrolled identity stored in the database.
// The template and national id are immutable after enrollment;
// only the voted flag transitions, exactly once.
type Voter struct {
	ID         int64
	NationalID string
	Name       string
	Template   biometric.FeatureVector
	Voted      bool
	EnrolledAt time.Time
}

// StoredTemplate is one entry of the matching snapshot: the enrolled
// template together with the internal id it resolves to.
type StoredTemplate struct {
	VoterID  int64
	Template biometric.FeatureVector
}

// BallotRecord is one append-only row of the audit log. Created exactly
// once per voter, never mutated or deleted.
type BallotRecord struct {
	ID        int64
	Receipt   uuid.UUID
	VoterID   int64
	Candidate string
	CastAt    time.Time
}

// CandidateCount is one row of a tally over the audit log.
type CandidateCount struct {
	Candidate string
	Votes     int
}
