// Copyright 2025 Sonic Labs
// This file is part of Alea Stochastic Analysis Infrastructure for Sonic
//
// Alea is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Alea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Alea. If not, see <http://www.gnu.org/licenses/>.

// Package analytics provides one-pass streaming statistics used to score
// strata and summarize model outputs without retaining the observations.
package analytics

import (
	"encoding/json"
	"math"
)

// IncrementalStats accumulates the moments of a stream of observations in
// a single pass with O(1) memory. The sum is carried with Kahan's
// summation; the central moments follow the online update formulas so
// mean, variance, skewness and kurtosis are available at any point of the
// stream.
type IncrementalStats struct {
	count uint64
	min   float64
	max   float64
	ksum  float64 // Kahan running sum
	c     float64 // Kahan correction term
	m1    float64 // running mean
	m2    float64 // second central moment (unnormalized)
	m3    float64 // third central moment (unnormalized)
	m4    float64 // fourth central moment (unnormalized)
}

// Update accumulates one observation.
func (s *IncrementalStats) Update(x float64) {
	if s.count == 0 {
		s.min = x
		s.max = x
	} else {
		if x < s.min {
			s.min = x
		}
		if x > s.max {
			s.max = x
		}
	}

	// Kahan's summation to keep the plain sum stable over long streams.
	// https://en.wikipedia.org/wiki/Kahan_summation_algorithm
	y := x - s.c
	t := s.ksum + y
	s.c = (t - s.ksum) - y
	s.ksum = t

	n1 := float64(s.count)
	s.count++
	n := float64(s.count)
	delta := x - s.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	s.m1 += deltaN
	s.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(n-2) - 3*deltaN*s.m2
	s.m2 += term1
}

// Count returns the number of observations so far.
func (s IncrementalStats) Count() uint64 { return s.count }

// Sum returns the Kahan-corrected sum of all observations.
func (s IncrementalStats) Sum() float64 { return s.ksum }

// Min returns the smallest observation, or 0 before the first one.
func (s IncrementalStats) Min() float64 { return s.min }

// Max returns the largest observation, or 0 before the first one.
func (s IncrementalStats) Max() float64 { return s.max }

// Mean returns the running mean.
func (s IncrementalStats) Mean() float64 { return s.m1 }

// Variance returns the sample variance with Bessel's correction, or 0 for
// fewer than two observations.
func (s IncrementalStats) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count-1)
}

// StandardDeviation returns the sample standard deviation.
func (s IncrementalStats) StandardDeviation() float64 {
	return math.Sqrt(s.Variance())
}

// Skewness returns the sample skewness, or 0 for degenerate streams.
func (s IncrementalStats) Skewness() float64 {
	if s.m2 == 0 {
		return 0
	}
	return math.Sqrt(float64(s.count)) * s.m3 / math.Pow(s.m2, 1.5)
}

// Kurtosis returns the excess kurtosis, or 0 for degenerate streams.
func (s IncrementalStats) Kurtosis() float64 {
	if s.m2 == 0 {
		return 0
	}
	return float64(s.count)*s.m4/(s.m2*s.m2) - 3.0
}

type incrementalStatsJSON struct {
	Count    uint64  `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// MarshalJSON renders the derived statistics rather than the internal
// accumulator state.
func (s IncrementalStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(incrementalStatsJSON{
		Count:    s.Count(),
		Min:      s.Min(),
		Max:      s.Max(),
		Mean:     s.Mean(),
		Variance: s.Variance(),
		Skewness: s.Skewness(),
		Kurtosis: s.Kurtosis(),
	})
}

// String renders the statistics as a JSON object.
func (s IncrementalStats) String() string {
	j, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(j)
}
