package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kozaktomas/securevote/internal/database"
)

// BallotRepository provides the PostgreSQL-backed append-only audit log.
type BallotRepository struct {
	pool *Pool
}

// NewBallotRepository creates a new PostgreSQL ballot repository.
func NewBallotRepository(pool *Pool) *BallotRepository {
	return &BallotRepository{pool: pool}
}

// Append records a ballot and returns it with its assigned sequence id.
// Rows are never updated or deleted; the UNIQUE(voter_id) constraint backs
// the exactly-once guarantee at the storage layer as well.
func (r *BallotRepository) Append(ctx context.Context, voterID int64, candidate string) (*database.BallotRecord, error) {
	query := `
		INSERT INTO ballots (receipt, voter_id, candidate)
		VALUES ($1, $2, $3)
		RETURNING id, cast_at
	`

	record := &database.BallotRecord{
		Receipt:   uuid.New(),
		VoterID:   voterID,
		Candidate: candidate,
	}
	err := r.pool.QueryRow(ctx, query, record.Receipt, voterID, candidate).Scan(&record.ID, &record.CastAt)
	if err != nil {
		return nil, fmt.Errorf("append ballot: %w", err)
	}
	return record, nil
}

// Tally returns vote counts per candidate, most votes first.
func (r *BallotRepository) Tally(ctx context.Context) ([]database.CandidateCount, error) {
	query := `
		SELECT candidate, COUNT(*) AS votes
		FROM ballots
		GROUP BY candidate
		ORDER BY votes DESC, candidate
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tally: %w", err)
	}
	defer rows.Close()

	var counts []database.CandidateCount
	for rows.Next() {
		var c database.CandidateCount
		if err := rows.Scan(&c.Candidate, &c.Votes); err != nil {
			return nil, fmt.Errorf("scan tally row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tally: %w", err)
	}
	return counts, nil
}

// List returns the newest ballots up to limit, in descending sequence order.
func (r *BallotRepository) List(ctx context.Context, limit int) ([]database.BallotRecord, error) {
	query := `
		SELECT id, receipt, voter_id, candidate, cast_at
		FROM ballots
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query ballots: %w", err)
	}
	defer rows.Close()

	var records []database.BallotRecord
	for rows.Next() {
		var rec database.BallotRecord
		if err := rows.Scan(&rec.ID, &rec.Receipt, &rec.VoterID, &rec.Candidate, &rec.CastAt); err != nil {
			return nil, fmt.Errorf("scan ballot: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ballots: %w", err)
	}
	return records, nil
}
