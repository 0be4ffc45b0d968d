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
	"gonum.org/v1/gonum/floats"
)

// PotentialEngine computes pulse and time-integrated absolute temperature
// and precipitation potentials from radiative efficiencies using the
// two-box climate response. The zero value is not usable; construct with
// NewPotentialEngine.
//
// Engines are immutable after construction and safe for concurrent use.
type PotentialEngine struct {
	Boxes    ClimateBoxes
	Ensemble *ModelEnsemble

	// DisableClimateScaling skips the PDRMIP climate-sensitivity correction;
	// DisableForcingScaling skips the ensemble-mean forcing correction.
	// Both default to false and exist for sensitivity studies only.
	DisableClimateScaling bool
	DisableForcingScaling bool
}

// NewPotentialEngine returns an engine with the standard two-box response
// and PDRMIP ensemble scalings enabled.
func NewPotentialEngine() *PotentialEngine {
	return &PotentialEngine{Boxes: DefaultBoxes, Ensemble: NewModelEnsemble()}
}

// scalings returns the climate-sensitivity amplitudes and the forcing factor
// to use for sp, honoring the engine's sensitivity-study toggles.
func (e *PotentialEngine) scalings(sp *Species) (c [2]float64, rf float64, err error) {
	c = e.Boxes.C
	rf = 1
	if e.DisableClimateScaling && e.DisableForcingScaling {
		return c, rf, nil
	}
	f, err := e.Ensemble.Scaling(sp.Name, Temperature)
	if err != nil {
		return c, rf, err
	}
	if !e.DisableClimateScaling {
		c[0] *= f.C
		c[1] *= f.C
	}
	if !e.DisableForcingScaling {
		rf = f.RF
	}
	return c, rf, nil
}

func (e *PotentialEngine) checkHorizon(sp *Species, th float64) error {
	if min := sp.Decay.minHorizon(); th < min || th <= 0 {
		return errInvalidParameter("time horizon", th,
			"must be at least %g yr for %s", min, sp.Name)
	}
	return nil
}

// ATP computes the time-integrated and pulse absolute temperature potential
// at time horizon th [yr] for each radiative-efficiency value in radEff.
// Passing regional efficiencies yields ARTPs, a global efficiency yields the
// AGTP; the output inherits the scope and order of the input.
func (e *PotentialEngine) ATP(sp *Species, radEff []float64, th float64) (integrated, pulse []float64, err error) {
	if err := e.checkHorizon(sp, th); err != nil {
		return nil, nil, err
	}
	c, rf, err := e.scalings(sp)
	if err != nil {
		return nil, nil, err
	}
	iKernel, pKernel := responseKernels(sp.Decay, e.Boxes, c, th)

	integrated = make([]float64, len(radEff))
	pulse = make([]float64, len(radEff))
	copy(integrated, radEff)
	copy(pulse, radEff)
	floats.Scale(rf*iKernel, integrated)
	floats.Scale(rf*pKernel, pulse)
	return integrated, pulse, nil
}

// ATP1 is ATP for a single radiative-efficiency value.
func (e *PotentialEngine) ATP1(sp *Species, radEff, th float64) (integrated, pulse float64, err error) {
	i, p, err := e.ATP(sp, []float64{radEff}, th)
	if err != nil {
		return 0, 0, err
	}
	return i[0], p[0], nil
}

// responseKernels returns the integrated and pulse temperature responses to
// a unit pulse emission of unit radiative efficiency: the decay convolved
// with both climate boxes.
func responseKernels(d Decay, boxes ClimateBoxes, c [2]float64, th float64) (integrated, pulse float64) {
	for j := 0; j < 2; j++ {
		integrated += d.integratedResponse(c[j], boxes.D[j], th)
		pulse += d.pulseResponse(c[j], boxes.D[j], th)
	}
	return integrated, pulse
}

// ATPSeries evaluates the pulse temperature potential at every multiple of
// dt up to steps*dt, for convolution with an emission trajectory. Unlike
// ATP, it is not subject to the minimum reporting horizon: the convolution
// needs the response at all lags.
func (e *PotentialEngine) ATPSeries(sp *Species, radEff float64, steps int, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, errInvalidParameter("time step", dt, "must be positive")
	}
	if steps <= 0 {
		return nil, errInvalidParameter("steps", steps, "must be positive")
	}
	c, rf, err := e.scalings(sp)
	if err != nil {
		return nil, err
	}
	series := make([]float64, steps)
	for i := range series {
		_, p := responseKernels(sp.Decay, e.Boxes, c, float64(i+1)*dt)
		series[i] = radEff * rf * p
	}
	return series, nil
}

// LifetimeRange holds a potential evaluated at the species lifetime and at
// one standard deviation below and above it.
type LifetimeRange struct {
	Min, Avg, Max float64
}

// ATPLifetimeRange computes pulse and integrated temperature potentials at
// tau-tauStd, tau and tau+tauStd, quantifying the sensitivity of the metric
// to the lifetime estimate. Only single-lifetime species with a known
// lifetime uncertainty are supported.
func (e *PotentialEngine) ATPLifetimeRange(sp *Species, radEff, th float64) (integrated, pulse LifetimeRange, err error) {
	single, ok := sp.Decay.(SingleExponential)
	if !ok || single.TauStd == 0 {
		return integrated, pulse, errInvalidParameter("pollutant", sp.Name,
			"lifetime range requires a single-lifetime species with a lifetime uncertainty")
	}
	if err := e.checkHorizon(sp, th); err != nil {
		return integrated, pulse, err
	}
	c, rf, err := e.scalings(sp)
	if err != nil {
		return integrated, pulse, err
	}
	eval := func(tau float64) (float64, float64) {
		i, p := responseKernels(SingleExponential{Tau: tau}, e.Boxes, c, th)
		return radEff * rf * i, radEff * rf * p
	}
	integrated.Min, pulse.Min = eval(single.Tau - single.TauStd)
	integrated.Avg, pulse.Avg = eval(single.Tau)
	integrated.Max, pulse.Max = eval(single.Tau + single.TauStd)
	return integrated, pulse, nil
}

// PrecipPotential holds pulse and time-integrated absolute regional
// precipitation potentials, decomposed into the slow (temperature-feedback
// driven) and fast (direct atmospheric-forcing driven) components whose
// uncertainties propagate independently. Total = Slow + Fast.
type PrecipPotential struct {
	Regions []string

	Integrated     []float64
	IntegratedSlow []float64
	IntegratedFast []float64

	Pulse     []float64
	PulseSlow []float64
	PulseFast []float64
}

// APP computes the absolute regional precipitation potential at horizon th.
// radEff and radEffAtmos are the global total and atmospheric-component
// radiative efficiencies; precipRatio the regional-to-global precipitation
// ratios from ClimateDeltas.PrecipRatios, one entry per response region.
//
// The slow component is the precipitation response to the global temperature
// potential; the fast component is the direct response to atmospheric
// absorption, which depends only on the species' own decay, not on climate
// sensitivity.
func (e *PotentialEngine) APP(sp *Species, radEff, radEffAtmos, th float64, regions []string, precipRatio []float64) (*PrecipPotential, error) {
	if len(regions) != len(precipRatio) {
		return nil, errShape("precipitation ratios", []int{len(precipRatio)}, []int{len(regions)})
	}
	iagtp, agtp, err := e.ATP1(sp, radEff, th)
	if err != nil {
		return nil, err
	}
	_, rf, err := e.scalings(sp)
	if err != nil {
		return nil, err
	}

	k := sp.PrecipEfficiency
	fp := sp.AtmosFraction
	fa := rf * radEffAtmos

	n := len(precipRatio)
	p := &PrecipPotential{
		Regions:        append([]string(nil), regions...),
		Integrated:     make([]float64, n),
		IntegratedSlow: make([]float64, n),
		IntegratedFast: make([]float64, n),
		Pulse:          make([]float64, n),
		PulseSlow:      make([]float64, n),
		PulseFast:      make([]float64, n),
	}
	for i, ratio := range precipRatio {
		p.IntegratedSlow[i] = LatentHeatFactor * k * iagtp * ratio
		p.IntegratedFast[i] = LatentHeatFactor * -fp * fa * sp.Decay.IntegratedBurden(th) * ratio
		p.Integrated[i] = p.IntegratedSlow[i] + p.IntegratedFast[i]

		p.PulseSlow[i] = LatentHeatFactor * k * agtp * ratio
		p.PulseFast[i] = LatentHeatFactor * -fp * fa * sp.Decay.Burden(th) * ratio
		p.Pulse[i] = p.PulseSlow[i] + p.PulseFast[i]
	}
	return p, nil
}
