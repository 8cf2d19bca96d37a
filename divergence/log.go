package divergence

import "math"

// LogFunc is the logarithm implementation a KL-family divergence is
// parameterized with. Callers pick the variant matching what they know about
// their data.
type LogFunc func(x float64) float64

// NaturalLog is the mathematical logarithm over the positive reals.
// NaturalLog(0) is -Inf.
func NaturalLog(x float64) float64 { return math.Log(x) }

// DiscreteLog is the count-data variant: it defines log(0) as 0, which is the
// right limit behavior for points known to be non-negative integer counts.
func DiscreteLog(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Log(x)
}
