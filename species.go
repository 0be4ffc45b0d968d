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

// Package rem computes absolute regional temperature and precipitation
// potentials (ARTP, ARPP) for pulse and sustained emissions of short- and
// long-lived climate pollutants, propagates observational and model
// uncertainty through the metrics, and projects temperature responses under
// multi-stage emission scenarios. The methodology follows Shine et al.
// (2015) with the PDRMIP multi-model scaling of Myhre et al. (2017).
package rem

import (
	"math"
)

// Names of the supported pollutants.
const (
	SO2 = "SO2"
	BC  = "BC"
	CO2 = "CO2"
	CH4 = "CH4"
)

// ClimateBoxes holds the two-timescale energy-balance response of the
// climate system: a fast (ocean mixed-layer) and a slow (deep ocean) box.
// D are the relaxation timescales [yr] and C the amplitude coefficients
// [K m2 W-1] (Boucher and Reddy 2008, as used by Shine et al. 2015).
type ClimateBoxes struct {
	D [2]float64
	C [2]float64
}

// DefaultBoxes is the standard two-box parameterization.
var DefaultBoxes = ClimateBoxes{
	D: [2]float64{8.4, 409.5},
	C: [2]float64{0.631, 0.429},
}

// LatentHeatFactor converts a latent-heat flux perturbation [W m-2] to a
// precipitation-rate perturbation [mm day-1].
const LatentHeatFactor = 0.034

// Decay describes the atmospheric decay of a pollutant after a unit pulse
// emission, together with the closed-form temperature-response kernels that
// result from convolving that decay with one climate response box.
type Decay interface {
	// Burden returns the airborne fraction remaining t years after a unit
	// pulse emission.
	Burden(t float64) float64

	// IntegratedBurden returns the time integral of Burden from 0 to t.
	IntegratedBurden(t float64) float64

	// pulseResponse is the temperature response at time th to a unit pulse,
	// per unit radiative efficiency, against a single climate box with
	// amplitude c and timescale d.
	pulseResponse(c, d, th float64) float64

	// integratedResponse is the time integral of pulseResponse from 0 to th.
	integratedResponse(c, d, th float64) float64

	// minHorizon is the smallest supported time horizon in years.
	minHorizon() float64

	// lifetimeNorm is the lifetime divisor used when converting a forcing
	// delta to a radiative efficiency: tau for single-lifetime species, 1
	// where no lifetime normalization applies.
	lifetimeNorm() float64
}

// SingleExponential is the decay of a pollutant with a single atmospheric
// lifetime Tau [yr] (SO2, BC, CH4). TauStd is the one-sigma lifetime
// uncertainty used for sensitivity studies; zero if unknown.
type SingleExponential struct {
	Tau    float64
	TauStd float64
}

func (s SingleExponential) Burden(t float64) float64 { return math.Exp(-t / s.Tau) }

func (s SingleExponential) IntegratedBurden(t float64) float64 {
	return s.Tau * (1 - math.Exp(-t/s.Tau))
}

func (s SingleExponential) pulseResponse(c, d, th float64) float64 {
	return pulseTerm(s.Tau, c, d, th)
}

func (s SingleExponential) integratedResponse(c, d, th float64) float64 {
	return integratedTerm(s.Tau, c, d, th)
}

// Potentials for very short-lived species are only meaningful once the
// perturbation has decayed; 5 years follows Aamaas et al. (2013).
func (s SingleExponential) minHorizon() float64 { return 5 }

func (s SingleExponential) lifetimeNorm() float64 { return s.Tau }

// MultiExponential is the decay of a pulse of CO2: a constant airborne
// fraction A0 plus three exponential terms with weights A and timescales
// Tau [yr] (Joos et al. 2013 impulse-response fit).
type MultiExponential struct {
	A0  float64
	A   [3]float64
	Tau [3]float64
}

func (m MultiExponential) Burden(t float64) float64 {
	b := m.A0
	for i := range m.A {
		b += m.A[i] * math.Exp(-t/m.Tau[i])
	}
	return b
}

func (m MultiExponential) IntegratedBurden(t float64) float64 {
	b := m.A0 * t
	for i := range m.A {
		b += m.A[i] * m.Tau[i] * (1 - math.Exp(-t/m.Tau[i]))
	}
	return b
}

func (m MultiExponential) pulseResponse(c, d, th float64) float64 {
	r := m.A0 * c * (1 - math.Exp(-th/d))
	for i := range m.A {
		r += m.A[i] * pulseTerm(m.Tau[i], c, d, th)
	}
	return r
}

func (m MultiExponential) integratedResponse(c, d, th float64) float64 {
	r := m.A0 * c * (th - d*(1-math.Exp(-th/d)))
	for i := range m.A {
		r += m.A[i] * integratedTerm(m.Tau[i], c, d, th)
	}
	return r
}

func (m MultiExponential) minHorizon() float64 { return 0 }

func (m MultiExponential) lifetimeNorm() float64 { return 1 }

// tauEqualsD reports whether the decay and box timescales coincide closely
// enough that the 1/(tau-d) closed forms lose precision.
func tauEqualsD(tau, d float64) bool {
	return math.Abs(tau-d) < 1e-9*d
}

// pulseTerm is the contribution of a single exponential decay mode with
// timescale tau to the pulse temperature response against one climate box:
//
//	tau*c/(tau-d) * (exp(-th/tau) - exp(-th/d))
//
// The removable singularity at tau == d is evaluated as its limit.
func pulseTerm(tau, c, d, th float64) float64 {
	if tauEqualsD(tau, d) {
		return c * th / d * math.Exp(-th/d)
	}
	return tau * c / (tau - d) * (math.Exp(-th/tau) - math.Exp(-th/d))
}

// integratedTerm is the time integral of pulseTerm from 0 to th:
//
//	tau*c/(tau-d) * (tau*(1-exp(-th/tau)) - d*(1-exp(-th/d)))
func integratedTerm(tau, c, d, th float64) float64 {
	if tauEqualsD(tau, d) {
		return c * (d*(1-math.Exp(-th/d)) - th*math.Exp(-th/d))
	}
	return tau * c / (tau - d) * (tau*(1-math.Exp(-th/tau)) - d*(1-math.Exp(-th/d)))
}

// Species holds the physical constants describing one pollutant.
type Species struct {
	Name string

	// Decay is the atmospheric decay model after a pulse emission.
	Decay Decay

	// AtmosFraction (fp) is the fraction of the total effective radiative
	// forcing that is atmospheric, i.e. not exerted at the surface
	// (Kvalevåg et al. 2013). Negative for scattering aerosols.
	AtmosFraction float64

	// PrecipEfficiency (k) relates surface-temperature-driven changes in
	// radiative cooling of the atmosphere to precipitation [W m-2 K-1],
	// with its one-sigma uncertainty.
	PrecipEfficiency    float64
	PrecipEfficiencyStd float64

	// Cooling marks species whose emission cools the climate, so that an
	// emission reduction is a positive (warming) perturbation in scenario
	// calculations.
	Cooling bool

	// EmissionRegions are the perturbation-experiment source regions
	// available for this species.
	EmissionRegions []string
}

// EmissionRegions available for SO2, CO2 and CH4 perturbation experiments.
var EmissionRegions = []string{"NHML", "US", "China", "EastAsia", "India", "Europe"}

// BCEmissionRegions available for BC perturbation experiments.
var BCEmissionRegions = []string{"Global", "Asia"}

// ResponseRegions are the regions in which responses can be evaluated.
var ResponseRegions = []string{
	"Global", "Tropics", "NHML", "NHHL", "SHML", "SHHL",
	"Europe", "US", "China", "East Asia", "India", "Sahel",
}

var speciesTable = map[string]*Species{
	SO2: {
		Name:                SO2,
		Decay:               SingleExponential{Tau: 0.011},
		AtmosFraction:       -0.4,
		PrecipEfficiency:    2.2,
		PrecipEfficiencyStd: 0.22,
		Cooling:             true,
		EmissionRegions:     EmissionRegions,
	},
	BC: {
		Name:                BC,
		Decay:               SingleExponential{Tau: 0.02},
		AtmosFraction:       2.5,
		PrecipEfficiency:    2.2,
		PrecipEfficiencyStd: 0.22,
		EmissionRegions:     BCEmissionRegions,
	},
	CH4: {
		Name:                CH4,
		Decay:               SingleExponential{Tau: 12.4, TauStd: 1.4},
		AtmosFraction:       0.6,
		PrecipEfficiency:    2.2,
		PrecipEfficiencyStd: 0.22,
		EmissionRegions:     EmissionRegions,
	},
	CO2: {
		Name: CO2,
		Decay: MultiExponential{
			A0:  0.2173,
			A:   [3]float64{0.2240, 0.2824, 0.2763},
			Tau: [3]float64{394.4, 36.54, 4.304},
		},
		AtmosFraction:       0.8,
		PrecipEfficiency:    2.2,
		PrecipEfficiencyStd: 0.22,
		EmissionRegions:     EmissionRegions,
	},
}

// SpeciesNames returns the names of the supported pollutants.
func SpeciesNames() []string { return []string{SO2, BC, CO2, CH4} }

// SpeciesByName returns the constants for the named pollutant.
func SpeciesByName(name string) (*Species, error) {
	if s, ok := speciesTable[name]; ok {
		return s, nil
	}
	return nil, errInvalidParameter("pollutant", name, "must be one of %v", SpeciesNames())
}

// ValidEmissionRegion reports whether region is an accepted emission region
// for the species.
func (s *Species) ValidEmissionRegion(region string) bool {
	for _, r := range s.EmissionRegions {
		if r == region {
			return true
		}
	}
	return false
}
