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

// RadiativeEfficiency holds the effective radiative forcing exerted per unit
// emitted mass [W m-2 Tg-1 yr, or W m-2 Tg-1 for CO2], globally and scaled
// to each response region by the regional temperature-response pattern.
type RadiativeEfficiency struct {
	// Regional is the per-response-region radiative efficiency driving the
	// ARTP closed forms.
	Regional []float64

	// Global and GlobalAtmos are the global total and atmospheric-component
	// efficiencies driving the ARPP closed forms.
	Global      float64
	GlobalAtmos float64
}

// ComputeRadiativeEfficiency converts effective-radiative-forcing deltas
// [W m-2] into radiative efficiencies. emissMass is the emission-mass delta
// of the perturbation experiment [Tg yr-1] and tempRatio the regional-to-
// global temperature-response ratios from ClimateDeltas.TempRatios.
//
// The forcing delta is divided by the emission mass, and additionally by the
// atmospheric lifetime for single-lifetime species, so that sustained- and
// pulse-emission framings use one consistent efficiency (Shine et al. 2015
// eq. 2). Multi-model forcing scaling is applied later, inside the potential
// engine, so that it can be toggled for sensitivity studies without
// recomputing efficiencies.
func ComputeRadiativeEfficiency(sp *Species, erf, erfAtmos, emissMass float64, tempRatio []float64) (*RadiativeEfficiency, error) {
	if emissMass == 0 {
		return nil, errDomain("radiative efficiency", "emission-mass delta")
	}
	norm := emissMass * sp.Decay.lifetimeNorm()
	r := &RadiativeEfficiency{
		Global:      erf / norm,
		GlobalAtmos: erfAtmos / norm,
		Regional:    make([]float64, len(tempRatio)),
	}
	for i, ratio := range tempRatio {
		r.Regional[i] = r.Global * ratio
	}
	return r, nil
}
