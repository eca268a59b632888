package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/database"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// VoterRepository provides PostgreSQL-backed voter and template storage.
type VoterRepository struct {
	pool *Pool
}

// NewVoterRepository creates a new PostgreSQL voter repository.
func NewVoterRepository(pool *Pool) *VoterRepository {
	return &VoterRepository{pool: pool}
}

// Enroll persists a new voter with voted=false and returns the internal id.
func (r *VoterRepository) Enroll(ctx context.Context, nationalID, name string, template biometric.FeatureVector) (int64, error) {
	query := `
		INSERT INTO voters (national_id, name, template)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, nationalID, name, pgvector.NewVector(template)).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, database.ErrDuplicateIdentity
		}
		return 0, fmt.Errorf("enroll voter: %w", err)
	}
	return id, nil
}

// AllTemplates returns all enrolled templates ordered by internal id.
func (r *VoterRepository) AllTemplates(ctx context.Context) ([]database.StoredTemplate, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, template FROM voters ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []database.StoredTemplate
	for rows.Next() {
		var t database.StoredTemplate
		var vec pgvector.Vector
		if err := rows.Scan(&t.VoterID, &vec); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Template = vec.Slice()
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// MarkVoted atomically flips the voted flag from false to true. The single
// conditional UPDATE is what guarantees exactly-once voting under concurrent
// requests; rows-affected reports whether this call won the transition.
func (r *VoterRepository) MarkVoted(ctx context.Context, voterID int64) (bool, error) {
	result, err := r.pool.Exec(ctx,
		"UPDATE voters SET voted = TRUE WHERE id = $1 AND voted = FALSE", voterID)
	if err != nil {
		return false, fmt.Errorf("mark voted: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark voted rows affected: %w", err)
	}
	return affected == 1, nil
}

// GetVoter retrieves a voter by internal id, nil if not found.
func (r *VoterRepository) GetVoter(ctx context.Context, voterID int64) (*database.Voter, error) {
	query := `
		SELECT id, national_id, name, template, voted, enrolled_at
		FROM voters
		WHERE id = $1
	`

	var v database.Voter
	var vec pgvector.Vector
	err := r.pool.QueryRow(ctx, query, voterID).Scan(
		&v.ID,
		&v.NationalID,
		&v.Name,
		&vec,
		&v.Voted,
		&v.EnrolledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query voter: %w", err)
	}

	v.Template = vec.Slice()
	return &v, nil
}

// Count returns the number of enrolled voters.
func (r *VoterRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM voters").Scan(&count); err != nil {
		return 0, fmt.Errorf("count voters: %w", err)
	}
	return count, nil
}

// NearestTemplate returns the enrolled template closest to the probe using
// the pgvector L2 operator. Without an approximate index this is an exact
// sequential scan, so the result matches a linear Euclidean pass; ties are
// broken by lowest internal id in the ORDER BY.
func (r *VoterRepository) NearestTemplate(ctx context.Context, probe biometric.FeatureVector) (int64, float64, bool, error) {
	query := `
		SELECT id, template <-> $1 AS distance
		FROM voters
		ORDER BY distance, id
		LIMIT 1
	`

	var id int64
	var distance float64
	err := r.pool.QueryRow(ctx, query, pgvector.NewVector(probe)).Scan(&id, &distance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("query nearest template: %w", err)
	}
	return id, distance, true, nil
}
