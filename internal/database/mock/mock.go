// Package mock provides in-memory implementations of the database
// interfaces for testing.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/database"
)

// MockTemplateStore is an in-memory implementation of database.TemplateStore.
type MockTemplateStore struct {
	mu          sync.RWMutex
	voters      map[int64]*database.Voter
	nationalIDs map[string]int64
	nextID      int64

	// Error injection
	EnrollError       error
	AllTemplatesError error
	MarkVotedError    error
	GetVoterError     error
	CountError        error
}

// NewMockTemplateStore creates a new mock template store.
func NewMockTemplateStore() *MockTemplateStore {
	return &MockTemplateStore{
		voters:      make(map[int64]*database.Voter),
		nationalIDs: make(map[string]int64),
		nextID:      1,
	}
}

// Enroll persists a new voter, failing on duplicate national id.
func (m *MockTemplateStore) Enroll(ctx context.Context, nationalID, name string, template biometric.FeatureVector) (int64, error) {
	if m.EnrollError != nil {
		return 0, m.EnrollError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nationalIDs[nationalID]; ok {
		return 0, database.ErrDuplicateIdentity
	}

	id := m.nextID
	m.nextID++
	m.voters[id] = &database.Voter{
		ID:         id,
		NationalID: nationalID,
		Name:       name,
		Template:   append(biometric.FeatureVector(nil), template...),
		EnrolledAt: time.Now(),
	}
	m.nationalIDs[nationalID] = id
	return id, nil
}

// AllTemplates returns a snapshot of all enrolled templates ordered by id.
func (m *MockTemplateStore) AllTemplates(ctx context.Context) ([]database.StoredTemplate, error) {
	if m.AllTemplatesError != nil {
		return nil, m.AllTemplatesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	templates := make([]database.StoredTemplate, 0, len(m.voters))
	for id := int64(1); id < m.nextID; id++ {
		if v, ok := m.voters[id]; ok {
			templates = append(templates, database.StoredTemplate{
				VoterID:  v.ID,
				Template: v.Template,
			})
		}
	}
	return templates, nil
}

// MarkVoted flips the voted flag from false to true under the store lock,
// mirroring the conditional UPDATE of the PostgreSQL backend.
func (m *MockTemplateStore) MarkVoted(ctx context.Context, voterID int64) (bool, error) {
	if m.MarkVotedError != nil {
		return false, m.MarkVotedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.voters[voterID]
	if !ok || v.Voted {
		return false, nil
	}
	v.Voted = true
	return true, nil
}

// GetVoter retrieves a voter by internal id, nil if not found.
func (m *MockTemplateStore) GetVoter(ctx context.Context, voterID int64) (*database.Voter, error) {
	if m.GetVoterError != nil {
		return nil, m.GetVoterError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.voters[voterID]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

// Count returns the number of enrolled voters.
func (m *MockTemplateStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.voters), nil
}

// MockAuditLog is an in-memory implementation of database.AuditLog.
type MockAuditLog struct {
	mu      sync.Mutex
	records []database.BallotRecord

	// Error injection
	AppendError error
}

// NewMockAuditLog creates a new mock audit log.
func NewMockAuditLog() *MockAuditLog {
	return &MockAuditLog{}
}

// Append records a ballot with a monotonically increasing sequence id.
func (m *MockAuditLog) Append(ctx context.Context, voterID int64, candidate string) (*database.BallotRecord, error) {
	if m.AppendError != nil {
		return nil, m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	record := database.BallotRecord{
		ID:        int64(len(m.records) + 1),
		Receipt:   uuid.New(),
		VoterID:   voterID,
		Candidate: candidate,
		CastAt:    time.Now(),
	}
	m.records = append(m.records, record)
	return &record, nil
}

// Records returns a copy of all appended ballots in sequence order.
func (m *MockAuditLog) Records() []database.BallotRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.BallotRecord(nil), m.records...)
}

// RecordsFor returns all ballots referencing the given voter.
func (m *MockAuditLog) RecordsFor(voterID int64) []database.BallotRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []database.BallotRecord
	for _, r := range m.records {
		if r.VoterID == voterID {
			out = append(out, r)
		}
	}
	return out
}
