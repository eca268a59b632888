package biometric

import "math"

// FeatureVector is a fixed-length biometric template produced by the
// external extractor. The core never interprets individual components;
// vectors are only compared through EuclideanDistance.
type FeatureVector []float32

// EuclideanDistance computes the L2 distance between two vectors.
// Returns +Inf for empty or mismatched-length input so that invalid
// comparisons can never fall under a matching threshold.
func EuclideanDistance(a, b FeatureVector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return math.Sqrt(sum)
}
