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

package rem

import (
	"fmt"
	"math"
)

// Shape describes how an emission level moves from the previous segment
// boundary to the next one.
type Shape int

const (
	// Sustained jumps to the segment magnitude immediately and holds it.
	Sustained Shape = iota
	// Linear ramps to the segment magnitude linearly over the segment.
	Linear
	// Quadratic ramps to the segment magnitude quadratically, so most of
	// the change happens late in the segment.
	Quadratic
	// Sine is a half-sine excursion: the level reaches the segment
	// magnitude at the segment midpoint and returns to its starting value
	// by the segment end.
	Sine
)

var shapeNames = map[Shape]string{
	Sustained: "sustained",
	Linear:    "linear",
	Quadratic: "quadratic",
	Sine:      "sin",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape converts a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errInvalidParameter("shape", name,
		"must be one of sustained, linear, quadratic, sin")
}

// Segment is one stage of an emission scenario: by year End, the emission
// level has moved to Magnitude percent of the baseline emission rate,
// following Shape. A magnitude of 100 is no change; 0 is a complete
// phase-out; values above 100 are emission increases.
type Segment struct {
	Shape     Shape
	End       float64
	Magnitude float64
}

func validateSegments(segs []Segment, dt float64) (steps []int, err error) {
	if dt <= 0 {
		return nil, errInvalidParameter("time step", dt, "must be positive")
	}
	if len(segs) == 0 || len(segs) > 3 {
		return nil, errInvalidParameter("scenario segments", len(segs),
			"must contain between 1 and 3 segments")
	}
	steps = make([]int, len(segs))
	prev := 0.0
	for i, seg := range segs {
		if seg.End <= prev {
			return nil, errInvalidParameter("segment end", seg.End,
				"segment ends must be positive and strictly increasing")
		}
		if seg.Magnitude < 0 || seg.Magnitude > 1000 {
			return nil, errInvalidParameter("segment magnitude", seg.Magnitude,
				"must be between 0 and 1000 percent")
		}
		n := seg.End / dt
		if math.Abs(n-math.Round(n)) > 1e-9 {
			return nil, errInvalidParameter("segment end", seg.End,
				"must be an integer number of time steps of %g yr", dt)
		}
		steps[i] = int(math.Round(n))
		prev = seg.End
	}
	return steps, nil
}

// EmissionTrajectory expands a segmented scenario into a per-step emission
// perturbation rate [Tg yr-1] relative to the baseline, from time zero to the
// end of the last segment. emissMass is the annual baseline emission rate
// [Tg yr-1] whose percentage the segment magnitudes modify.
//
// For cooling species an emission reduction is returned as a positive
// (warming) perturbation. For CO2 the rate is renormalized by the airborne
// fraction integrated over the first segment, so that the perturbation
// matches the pulse framing the potentials were derived in.
func EmissionTrajectory(sp *Species, emissMass float64, segs []Segment, dt float64) ([]float64, error) {
	steps, err := validateSegments(segs, dt)
	if err != nil {
		return nil, err
	}

	sign := 1.0
	if sp.Cooling {
		sign = -1
	}
	mass := emissMass
	if m, ok := sp.Decay.(MultiExponential); ok {
		mass /= airborneNorm(m, segs[0].End)
	}

	emiss := make([]float64, steps[len(steps)-1])
	prevSteps := 0
	prevMag := 100.0
	for i, seg := range segs {
		n := steps[i] - prevSteps
		for t := 0; t < n; t++ {
			frac := float64(t+1) / float64(n)
			var mag float64
			switch seg.Shape {
			case Sustained:
				mag = seg.Magnitude
			case Linear:
				mag = prevMag + (seg.Magnitude-prevMag)*frac
			case Quadratic:
				mag = prevMag + (seg.Magnitude-prevMag)*frac*frac
			case Sine:
				mag = prevMag + (seg.Magnitude-prevMag)*math.Sin(math.Pi*frac)
			default:
				return nil, errInvalidParameter("shape", seg.Shape, "unknown emission shape")
			}
			emiss[prevSteps+t] = sign * mass * (mag - 100) / 100
		}
		prevSteps = steps[i]
		prevMag = seg.Magnitude
	}
	return emiss, nil
}

// airborneNorm integrates the CO2 airborne fraction over the first th years,
// treating the constant mode as decaying at th.
func airborneNorm(m MultiExponential, th float64) float64 {
	norm := m.A0 * th
	for i := range m.A {
		norm += m.A[i] * math.Min(m.Tau[i], th)
	}
	return norm
}

// Convolve accumulates the temperature response to an emission trajectory by
// trapezoidal convolution with a pulse-response series. emiss is the per-step
// emission rate [Tg yr-1] and pulse the pulse potential evaluated at each
// step [K Tg-1]; both must cover the same steps of width dt.
func Convolve(emiss, pulse []float64, dt float64) ([]float64, error) {
	if len(pulse) != len(emiss) {
		return nil, errShape("pulse response", []int{len(pulse)}, []int{len(emiss)})
	}
	resp := make([]float64, len(emiss))
	for t := range resp {
		if t == 0 {
			resp[0] = emiss[0] * dt * pulse[0] / 2
			continue
		}
		var sum float64
		for i := 0; i < t; i++ {
			sum += emiss[i] * dt * (pulse[t-i] + pulse[t-i-1]) / 2
		}
		resp[t] = sum
	}
	return resp, nil
}

// Scenario pairs a species' segmented emission pathway with the pulse
// potential series that converts it to a response. Pulse holds one value per
// time step of width dt out to the end of the last segment; passing a pulse
// ARTP series yields temperature, a pulse ARPP series precipitation.
type Scenario struct {
	Species  *Species
	Mass     float64
	Segments []Segment
	Pulse    []float64
}

// Response computes the scenario's response time series.
func (s *Scenario) Response(dt float64) ([]float64, error) {
	emiss, err := EmissionTrajectory(s.Species, s.Mass, s.Segments, dt)
	if err != nil {
		return nil, err
	}
	return Convolve(emiss, s.Pulse, dt)
}

// MixedResponse sums the responses of several simultaneous scenarios, one
// per species, over a common horizon. A scenario whose last segment ends
// before the longest one holds its final emission level for the remaining
// steps; every Pulse series must cover the full common horizon.
func MixedResponse(scenarios []*Scenario, dt float64) ([]float64, error) {
	if len(scenarios) == 0 {
		return nil, errInvalidParameter("scenarios", 0, "at least one scenario is required")
	}
	var maxSteps int
	for _, s := range scenarios {
		steps, err := validateSegments(s.Segments, dt)
		if err != nil {
			return nil, err
		}
		if n := steps[len(steps)-1]; n > maxSteps {
			maxSteps = n
		}
	}
	total := make([]float64, maxSteps)
	for _, s := range scenarios {
		emiss, err := EmissionTrajectory(s.Species, s.Mass, s.Segments, dt)
		if err != nil {
			return nil, err
		}
		for len(emiss) < maxSteps {
			emiss = append(emiss, emiss[len(emiss)-1])
		}
		resp, err := Convolve(emiss, s.Pulse, dt)
		if err != nil {
			return nil, err
		}
		for t, v := range resp {
			total[t] += v
		}
	}
	return total, nil
}
