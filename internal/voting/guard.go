// Package voting converts a verified identity into at most one recorded
// ballot. The exactly-once guarantee rests entirely on the store's atomic
// voted flag transition; no application-level locking is involved.
package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/securevote/internal/database"
	log "github.com/sirupsen/logrus"
)

// ErrAlreadyVoted is returned when the voted flag transition does not happen.
// It deliberately covers both "already voted" and "unknown voter id" so the
// vote endpoint does not leak enrollment state.
var ErrAlreadyVoted = errors.New("ballot already cast")

// VoterStatus is the caller-visible view of a voter's state.
type VoterStatus struct {
	Name  string
	Voted bool
}

// BallotGuard performs the atomic check-and-commit for ballots.
type BallotGuard struct {
	store database.TemplateStore
	audit database.AuditLog
}

// NewBallotGuard creates a ballot guard over the given store and audit log.
func NewBallotGuard(store database.TemplateStore, audit database.AuditLog) *BallotGuard {
	return &BallotGuard{store: store, audit: audit}
}

// CastBallot records exactly one ballot for the voter. The voted flag is
// flipped first; only a confirmed transition is followed by the audit append,
// so a store failure can never produce an audit row without a transition.
// Two concurrent calls for the same voter yield one record and one
// ErrAlreadyVoted.
func (g *BallotGuard) CastBallot(ctx context.Context, voterID int64, candidate string) (*database.BallotRecord, error) {
	ok, err := g.store.MarkVoted(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrAlreadyVoted
	}

	record, err := g.audit.Append(ctx, voterID, candidate)
	if err != nil {
		// The voted flag is already set; the missing audit row is surfaced
		// as a hard failure, never retried here.
		log.WithFields(log.Fields{"voter_id": voterID}).
			WithError(err).Error("audit append failed after voted transition")
		return nil, fmt.Errorf("%w: %v", database.ErrStoreUnavailable, err)
	}

	log.WithFields(log.Fields{
		"ballot_id": record.ID,
		"receipt":   record.Receipt,
	}).Info("ballot recorded")

	return record, nil
}

// Status returns the voter's display name and voted flag, nil if unknown.
func (g *BallotGuard) Status(ctx context.Context, voterID int64) (*VoterStatus, error) {
	voter, err := g.store.GetVoter(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrStoreUnavailable, err)
	}
	if voter == nil {
		return nil, nil
	}
	return &VoterStatus{Name: voter.Name, Voted: voter.Voted}, nil
}
