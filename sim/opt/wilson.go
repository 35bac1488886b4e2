// Package opt runs independent stochastic replications of a staffing
// configuration, aggregates their KPIs with confidence intervals, and
// recommends the minimal crew size meeting the service targets.
package opt

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the unit normal used to derive z-scores from confidence levels.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// zForConfidence returns the two-sided z-score for the requested confidence
// level. The z is always derived from the requested level, never hardcoded:
// confidence 0.95 yields z ≈ 1.959964, 0.99 yields z ≈ 2.575829.
func zForConfidence(confidence float64) float64 {
	if confidence <= 0 || confidence >= 1 {
		logrus.Warnf("confidence level %.3f outside (0,1); using 0.95", confidence)
		confidence = 0.95
	}
	return stdNormal.Quantile(0.5 + confidence/2)
}

// WilsonCI computes the Wilson score interval for a binomial proportion,
// which stays well-behaved at small sample sizes where the normal
// approximation does not. Degenerate input (total == 0) yields (0, 0).
func WilsonCI(successes, total int, confidence float64) (lower, upper float64) {
	if total <= 0 {
		return 0, 0
	}
	z := zForConfidence(confidence)
	n := float64(total)
	phat := float64(successes) / n

	denom := 1 + z*z/n
	center := phat + z*z/(2*n)
	margin := z * math.Sqrt(phat*(1-phat)/n+z*z/(4*n*n))

	lower = (center - margin) / denom
	upper = (center + margin) / denom

	// The interval is exact at the boundaries; pin them so floating point
	// noise cannot leak past [0, 1].
	if successes <= 0 {
		lower = 0
	}
	if successes >= total {
		upper = 1
	}
	if lower < 0 {
		lower = 0
	}
	if upper > 1 {
		upper = 1
	}
	return lower, upper
}
