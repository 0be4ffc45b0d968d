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
	"math"

	"github.com/spatialclimate/rem/stats"
)

// Variable selects which climate variable a scaling factor applies to.
type Variable int

const (
	Temperature Variable = iota
	Precipitation
)

func (v Variable) String() string {
	if v == Temperature {
		return "temperature"
	}
	return "precipitation"
}

// ensembleResponse holds the equilibrium responses of the PDRMIP model
// ensemble to one perturbation experiment: global temperature change [K],
// precipitation change [%], and effective radiative forcing [W m-2]. NaN
// marks a model that did not run the experiment.
type ensembleResponse struct {
	dT, dP, dRF []float64
}

// ModelEnsemble holds the PDRMIP multi-model perturbation responses used to
// correct single-model (HadGEM3) results toward ensemble-mean behavior
// (Myhre et al. 2017; SO2 values are for the 5xSO4 experiment).
type ModelEnsemble struct {
	// Models names the ensemble members, in table order.
	Models []string

	// Reference indexes the model the regional simulations were run with;
	// forcing and variable scalings are relative to it.
	Reference int

	responses map[string]ensembleResponse
}

var nan = math.NaN()

// NewModelEnsemble returns the nine-model PDRMIP ensemble. MPI-ESM (index 4)
// did not run the aerosol experiments; its entries are NaN and are excluded
// from the ensemble statistics.
func NewModelEnsemble() *ModelEnsemble {
	return &ModelEnsemble{
		Models: []string{
			"CanESM2", "GISS-E2-R", "HadGEM2-ES", "HadGEM3", "MPI-ESM",
			"MIROC-SPRINTARS", "NCAR-CESM1-CAM4", "NorESM1-M", "IPSL-CM5A-LR",
		},
		Reference: 3, // HadGEM3
		responses: map[string]ensembleResponse{
			CO2: {
				dT:  []float64{2.70, 1.49, 2.73, 3.73, 2.15, 3.17, 2.47, 2.06, 1.46},
				dP:  []float64{4.13, 1.00, 3.41, 5.63, 2.97, 5.68, 3.48, 3.25, 1.68},
				dRF: []float64{3.57, 4.06, 3.37, 3.64, 4.14, 3.62, 4.06, 3.50, 3.62},
			},
			CH4: {
				dT:  []float64{0.60, 0.42, 0.80, 1.20, 0.44, 1.07, 0.52, 0.67, 0.30},
				dP:  []float64{1.00, 0.61, 1.40, 2.50, 0.60, 2.41, 0.71, 1.39, 0.32},
				dRF: []float64{1.36, 1.34, 0.98, 1.39, 0.95, 1.27, 0.86, 1.24, 0.78},
			},
			BC: {
				dT:  []float64{1.31, 0.398, 1.66, 0.697, nan, 0.381, 0.166, 0.673, 0.159},
				dP:  []float64{-2.39, -1.39, -1.87, 0.298, nan, -1.64, -1.16, -1.49, -1.32},
				dRF: []float64{1.55, 1.23, 1.19, 0.70, nan, 0.77, 0.41, 1.40, 0.63},
			},
			SO2: {
				dT:  []float64{-2.71, -0.93, -2.72, -6.62, nan, -1.47, -1.12, -1.65, -1.17},
				dP:  []float64{-6.54, -2.88, -6.26, -16.8, nan, -3.9, -4.05, -4.93, -3.06},
				dRF: []float64{-3.25, -2.79, -4.02, -8.26, nan, -2.04, -2.11, -3.79, -2.77},
			},
		},
	}
}

// ScalingFactors corrects single-model results toward the ensemble mean for
// one (species, variable) pair.
type ScalingFactors struct {
	// Var scales the reference model's variable response to the ensemble
	// mean.
	Var float64

	// RF scales the reference model's effective radiative forcing to the
	// ensemble mean.
	RF float64

	// C corrects the climate sensitivity used in the two-box model for the
	// species' forcing efficacy relative to CO2, with its propagated
	// one-sigma uncertainty CStd.
	C    float64
	CStd float64
}

// Scaling returns the multi-model scaling factors for one species and
// variable. The climate-sensitivity correction C is the species'
// ensemble-mean response-to-forcing ratio relative to CO2's; its uncertainty
// combines the four independent ensemble standard errors in quadrature.
func (m *ModelEnsemble) Scaling(species string, v Variable) (ScalingFactors, error) {
	resp, ok := m.responses[species]
	if !ok {
		return ScalingFactors{}, errInvalidParameter("pollutant", species, "must be one of %v", SpeciesNames())
	}
	co2 := m.responses[CO2]

	dvar := resp.dT
	if v == Precipitation {
		dvar = resp.dP
	}

	co2T, err := stats.Compute(co2.dT)
	if err != nil {
		return ScalingFactors{}, err
	}
	co2RF, err := stats.Compute(co2.dRF)
	if err != nil {
		return ScalingFactors{}, err
	}
	varStats, err := stats.Compute(dvar)
	if err != nil {
		return ScalingFactors{}, err
	}
	rfStats, err := stats.Compute(resp.dRF)
	if err != nil {
		return ScalingFactors{}, err
	}

	ref := m.Reference
	if math.IsNaN(dvar[ref]) || math.IsNaN(resp.dRF[ref]) {
		return ScalingFactors{}, &DataUnavailableError{What: "reference model " + m.Models[ref] + " response for " + species}
	}

	f := ScalingFactors{
		Var: varStats.Mean / dvar[ref],
		RF:  rfStats.Mean / resp.dRF[ref],
		C:   (varStats.Mean / co2T.Mean) / (rfStats.Mean / co2RF.Mean),
	}
	f.CStd = math.Abs(f.C) * math.Sqrt(
		sq(varStats.StdErr/varStats.Mean)+
			sq(co2T.StdErr/co2T.Mean)+
			sq(co2RF.StdErr/co2RF.Mean)+
			sq(rfStats.StdErr/rfStats.Mean))
	return f, nil
}

func sq(x float64) float64 { return x * x }
