// Package matcher resolves a probe template against all enrolled templates
// (1:N identification) under a configurable distance threshold.
package matcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/database"
)

// DefaultThreshold is the maximum Euclidean distance for a probe to resolve
// to an enrolled identity. Recognized range is (0, 1]; 0.5 matches the
// operating point the extraction model's vectors are calibrated for.
const DefaultThreshold = 0.5

// ErrNoMatch is returned when no enrolled template lies within the threshold,
// including the case of an empty template store.
var ErrNoMatch = errors.New("no matching identity")

// Matcher performs 1:N identification over a TemplateStore snapshot.
type Matcher struct {
	store     database.TemplateStore
	threshold float64
}

// New creates a matcher over the given store. Thresholds outside (0, 1]
// fall back to DefaultThreshold.
func New(store database.TemplateStore, threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{store: store, threshold: threshold}
}

// Threshold returns the configured distance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Resolve matches the probe against every enrolled template and returns the
// internal id of the closest one within the threshold, or ErrNoMatch.
// Ties at equal distance resolve to the lowest internal id. When the store
// offers an exact nearest-neighbor lookup the scan is delegated to it.
func (m *Matcher) Resolve(ctx context.Context, probe biometric.FeatureVector) (int64, error) {
	if nf, ok := m.store.(database.NearestFinder); ok {
		return m.resolveNearest(ctx, nf, probe)
	}
	return m.resolveScan(ctx, probe)
}

// resolveNearest delegates the minimum-distance search to the store and
// applies the threshold check.
func (m *Matcher) resolveNearest(ctx context.Context, nf database.NearestFinder, probe biometric.FeatureVector) (int64, error) {
	id, distance, found, err := nf.NearestTemplate(ctx, probe)
	if err != nil {
		return 0, fmt.Errorf("nearest template lookup: %w", err)
	}
	if !found || distance > m.threshold {
		return 0, ErrNoMatch
	}
	return id, nil
}

// resolveScan walks the full snapshot computing Euclidean distances.
// O(enrolled count) per probe; acceptable for the bounded enrollment volume.
func (m *Matcher) resolveScan(ctx context.Context, probe biometric.FeatureVector) (int64, error) {
	templates, err := m.store.AllTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load template snapshot: %w", err)
	}

	bestID := int64(0)
	bestDistance := 0.0
	found := false
	for _, t := range templates {
		d := biometric.EuclideanDistance(probe, t.Template)
		if !found || d < bestDistance || (d == bestDistance && t.VoterID < bestID) {
			bestID = t.VoterID
			bestDistance = d
			found = true
		}
	}

	if !found || bestDistance > m.threshold {
		return 0, ErrNoMatch
	}
	return bestID, nil
}
