/*
Copyright © 2026 the REM authors.
This file is part of REM.

REM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

REM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with REM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package stats provides the statistics primitives that every uncertainty
// estimate in REM reduces to: NaN-aware sample summaries, paired covariance,
// and first-order ratio-uncertainty propagation.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the NaN-aware sample statistics of one variable. Std is the
// Bessel-corrected sample standard deviation and StdErr the standard error
// of the mean. N counts the non-missing values.
type Summary struct {
	Mean   float64
	Std    float64
	StdErr float64
	N      int
}

// Compute returns the NaN-aware summary statistics of x. Missing values are
// encoded as NaN and excluded; if no valid values remain an error is
// returned, since a mean over zero ensemble members cannot be absorbed
// further up the computation.
func Compute(x []float64) (Summary, error) {
	v := valid(x)
	if len(v) == 0 {
		return Summary{}, fmt.Errorf("stats: no valid values in sample of length %d", len(x))
	}
	if len(v) == 1 {
		return Summary{Mean: v[0], N: 1}, nil
	}
	mean, std := stat.MeanStdDev(v, nil)
	return Summary{
		Mean:   mean,
		Std:    std,
		StdErr: std / math.Sqrt(float64(len(v))),
		N:      len(v),
	}, nil
}

// Covariance returns the sample covariance between the paired samples a and
// b. If stdErrScale is true the result is divided by sqrt(len(a)*len(b)),
// converting it to the standard-error convention used by Summary.StdErr so
// the two can be combined in one propagation formula. Pairs with a NaN in
// either sample are excluded.
func Covariance(a, b []float64, stdErrScale bool) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("stats: covariance of samples with lengths %d and %d", len(a), len(b))
	}
	va := make([]float64, 0, len(a))
	vb := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		va = append(va, a[i])
		vb = append(vb, b[i])
	}
	if len(va) < 2 {
		return 0, fmt.Errorf("stats: covariance needs at least 2 valid pairs, have %d", len(va))
	}
	cov := stat.Covariance(va, vb, nil)
	if stdErrScale {
		cov /= math.Sqrt(float64(len(va)) * float64(len(vb)))
	}
	return cov, nil
}

// RatioStd propagates uncertainty through the ratio a/b to first order:
//
//	|a/b| * sqrt((stdA/a)^2 + (stdB/b)^2 + 2*cov/(a*b))
//
// cov is the covariance between a and b on the same (standard-deviation or
// standard-error) scale as stdA and stdB. A zero numerator or denominator
// makes the relative uncertainty undefined and returns an error.
func RatioStd(a, b, stdA, stdB, cov float64) (float64, error) {
	if a == 0 {
		return 0, fmt.Errorf("stats: ratio uncertainty with zero numerator")
	}
	if b == 0 {
		return 0, fmt.Errorf("stats: ratio uncertainty with zero denominator")
	}
	v := (stdA/a)*(stdA/a) + (stdB/b)*(stdB/b) + 2*cov/(a*b)
	if v < 0 {
		// The first-order variance estimate can go negative when the
		// covariance term dominates; the uncertainty is then indistinguishable
		// from zero.
		v = 0
	}
	return math.Abs(a/b) * math.Sqrt(v), nil
}

func valid(x []float64) []float64 {
	v := make([]float64, 0, len(x))
	for _, xi := range x {
		if !math.IsNaN(xi) {
			v = append(v, xi)
		}
	}
	return v
}
