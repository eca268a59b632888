package biometric

import (
	"math"
	"testing"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        FeatureVector
		b        FeatureVector
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        FeatureVector{0.1, 0.2, 0.3},
			b:        FeatureVector{0.1, 0.2, 0.3},
			expected: 0,
		},
		{
			name:     "unit distance",
			a:        FeatureVector{0, 0},
			b:        FeatureVector{1, 0},
			expected: 1,
		},
		{
			name:     "pythagorean",
			a:        FeatureVector{0, 0},
			b:        FeatureVector{3, 4},
			expected: 5,
		},
		{
			name:     "negative components",
			a:        FeatureVector{-1, -1},
			b:        FeatureVector{1, 1},
			expected: 2 * math.Sqrt2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EuclideanDistance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEuclideanDistance_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		a    FeatureVector
		b    FeatureVector
	}{
		{"length mismatch", FeatureVector{1, 2}, FeatureVector{1, 2, 3}},
		{"both empty", FeatureVector{}, FeatureVector{}},
		{"nil vectors", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EuclideanDistance(tt.a, tt.b); !math.IsInf(got, 1) {
				t.Errorf("expected +Inf, got %v", got)
			}
		})
	}
}

func TestEuclideanDistance_Symmetry(t *testing.T) {
	a := FeatureVector{0.5, -0.25, 0.75, 0.1}
	b := FeatureVector{-0.1, 0.6, 0.2, -0.4}

	if d1, d2 := EuclideanDistance(a, b), EuclideanDistance(b, a); d1 != d2 {
		t.Errorf("distance is not symmetric: %v vs %v", d1, d2)
	}
}
