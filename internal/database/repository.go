// Package database defines the storage contracts for voter templates and
// the ballot audit log, shared by the PostgreSQL and mock backends.
package database

import (
	"context"

	"github.com/kozaktomas/securevote/internal/biometric"
)

// TemplateStore is the durable mapping from identity to enrolled template
// and voted flag.
type TemplateStore interface {
	// Enroll persists a new voter with voted=false and returns the internal id.
	// Returns ErrDuplicateIdentity if the national id is already registered.
	Enroll(ctx context.Context, nationalID, name string, template biometric.FeatureVector) (int64, error)
	// AllTemplates returns a snapshot of all enrolled templates ordered by
	// internal id. The snapshot is consistent for one matching pass; a voter
	// enrolled mid-scan may or may not be included.
	AllTemplates(ctx context.Context) ([]StoredTemplate, error)
	// MarkVoted atomically transitions the voted flag from false to true and
	// reports whether the transition happened. Returns false for an unknown
	// id or a voter that already voted. Implementations must use a single
	// conditional update, never a read followed by a write.
	MarkVoted(ctx context.Context, voterID int64) (bool, error)
	// GetVoter retrieves a voter by internal id, nil if not found.
	GetVoter(ctx context.Context, voterID int64) (*Voter, error)
	// Count returns the number of enrolled voters.
	Count(ctx context.Context) (int, error)
}

// NearestFinder is an optional fast path a TemplateStore may provide:
// an exact nearest-neighbor lookup executed inside the store. The distance
// semantics must be identical to a linear Euclidean scan, with ties broken
// by lowest internal id.
type NearestFinder interface {
	// NearestTemplate returns the closest enrolled template to the probe and
	// its distance. found is false when no templates are enrolled.
	NearestTemplate(ctx context.Context, probe biometric.FeatureVector) (voterID int64, distance float64, found bool, err error)
}

// AuditLog is the append-only record of cast ballots.
type AuditLog interface {
	// Append records a ballot and returns it with its assigned sequence id
	// and receipt. Called exactly once per voter, after a confirmed voted
	// flag transition.
	Append(ctx context.Context, voterID int64, candidate string) (*BallotRecord, error)
}

// AuditReader is the read surface over the audit log used by external
// reporting (the ballots CLI commands). Not part of the voting core.
type AuditReader interface {
	// Tally returns vote counts per candidate, most votes first.
	Tally(ctx context.Context) ([]CandidateCount, error)
	// List returns the newest ballots up to limit, in descending sequence order.
	List(ctx context.Context, limit int) ([]BallotRecord, error)
}
