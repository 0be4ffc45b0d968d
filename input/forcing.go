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

package input

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spatialclimate/rem"
	"github.com/spatialclimate/rem/stats"
)

// so2MeanERF is the average effective-radiative-forcing difference of the
// HadGEM3 no-SO2 experiments [W m-2], indexed like rem.EmissionRegions. The
// China experiment is unavailable.
var so2MeanERF = []float64{0.906, 0.232, math.NaN(), 0.166, 0.101, 0.275}

// uniformForcing is the forcing sample used for well-mixed greenhouse
// gases, whose forcing does not depend on the emission region.
var uniformForcing = rem.ForcingSample{ERF: 1, ERFa: 1}

// MeanForcing returns the multi-model (or HadGEM3, for SO2) mean total and
// atmospheric forcing deltas [W m-2] of the perturbation experiment for a
// species and emission region, the point estimates radiative efficiencies
// are built from.
func (p *Provider) MeanForcing(sp *rem.Species, emissionRegion string) (erf, erfa float64, err error) {
	if !sp.ValidEmissionRegion(emissionRegion) {
		return 0, 0, &rem.DataUnavailableError{
			What: fmt.Sprintf("%s forcing for region %s", sp.Name, emissionRegion),
		}
	}
	switch sp.Name {
	case rem.SO2:
		for i, r := range sp.EmissionRegions {
			if r != emissionRegion {
				continue
			}
			erf = so2MeanERF[i]
			if math.IsNaN(erf) {
				return 0, 0, &rem.DataUnavailableError{
					What: "SO2 perturbation forcing for region " + emissionRegion,
				}
			}
			return erf, sp.AtmosFraction * erf, nil
		}
		return 0, 0, &rem.DataUnavailableError{What: "SO2 forcing for region " + emissionRegion}
	case rem.BC:
		exp := "10xBC_"
		if emissionRegion == "Asia" {
			exp = "10xBCAsia"
		}
		if erf, err = p.modelMeanDelta(meanDeltaERFtFile, exp); err != nil {
			return 0, 0, err
		}
		if erfa, err = p.modelMeanDelta(meanDeltaERFaFile, exp); err != nil {
			return 0, 0, err
		}
		return erf, erfa, nil
	case rem.CO2:
		if erf, err = p.modelMeanDelta(meanDeltaERFtFile, "2xCO2"); err != nil {
			return 0, 0, err
		}
		if erfa, err = p.modelMeanDelta(meanDeltaERFaFile, "2xCO2"); err != nil {
			return 0, 0, err
		}
		return erf, erfa, nil
	case rem.CH4:
		if erf, err = p.modelMeanDelta(meanDeltaERFtFile, "3xCH4"); err != nil {
			return 0, 0, err
		}
		if erfa, err = p.modelMeanDelta(meanDeltaERFaFile, "3xCH4"); err != nil {
			return 0, 0, err
		}
		return erf, erfa, nil
	}
	return 0, 0, &rem.DataUnavailableError{What: "forcing for " + sp.Name}
}

// RegionalForcing returns the emission-region forcing sample used for
// uncertainty propagation. For SO2 it is computed from the HadGEM3 top-of-
// atmosphere time series; for BC from the PDRMIP multi-model tables. CO2 and
// CH4 forcing is spatially uniform, so their regional sample carries no
// spread of its own.
func (p *Provider) RegionalForcing(sp *rem.Species, emissionRegion string) (rem.ForcingSample, error) {
	if !sp.ValidEmissionRegion(emissionRegion) {
		return rem.ForcingSample{}, &rem.DataUnavailableError{
			What: fmt.Sprintf("%s forcing sample for region %s", sp.Name, emissionRegion),
		}
	}
	switch sp.Name {
	case rem.SO2:
		return p.so2RegionalForcing(sp, emissionRegion)
	case rem.BC:
		return p.bcRegionalForcing(emissionRegion)
	default:
		return uniformForcing, nil
	}
}

func (p *Provider) so2RegionalForcing(sp *rem.Species, emissionRegion string) (rem.ForcingSample, error) {
	ctl, err := p.tseriesERF(so2TseriesCtl)
	if err != nil {
		return rem.ForcingSample{}, err
	}
	pert, err := p.tseriesERF(fmt.Sprintf(so2TseriesPattern, emissionRegion))
	if err != nil {
		return rem.ForcingSample{}, err
	}
	erf, se, err := deltaStats(pert, ctl)
	if err != nil {
		return rem.ForcingSample{}, err
	}
	// The perturbation experiments lack the surface flux diagnostics needed
	// to separate the atmospheric component, so it is taken as a fixed
	// fraction of the total forcing.
	fp := sp.AtmosFraction
	return rem.ForcingSample{
		ERF:        erf,
		ERFStdErr:  se,
		ERFa:       fp * erf,
		ERFaStdErr: math.Abs(fp) * se,
	}, nil
}

func (p *Provider) bcRegionalForcing(emissionRegion string) (rem.ForcingSample, error) {
	exp := "10xBC_"
	if emissionRegion == "Asia" {
		exp = "10xBCAsia"
	}
	var s rem.ForcingSample
	var err error
	if s.ERF, s.ERFStdErr, err = p.modelDeltaStats(meanERFtFile, exp); err != nil {
		return s, err
	}
	if s.ERFa, s.ERFaStdErr, err = p.modelDeltaStats(meanERFaFile, exp); err != nil {
		return s, err
	}
	return s, nil
}

// GlobalForcing returns the global forcing sample for a species, from the
// HadGEM3 global-mean top-of-atmosphere time series of the PDRMIP
// perturbation experiments.
func (p *Provider) GlobalForcing(sp *rem.Species) (rem.ForcingSample, error) {
	pertName := map[string]string{
		rem.SO2: "5xSO4",
		rem.BC:  "10xBC",
		rem.CO2: "2xCO2",
		rem.CH4: "3xCH4",
	}[sp.Name]
	if pertName == "" {
		return rem.ForcingSample{}, &rem.DataUnavailableError{What: "global forcing for " + sp.Name}
	}

	ctlERF, ctlERFa, err := p.globalTseries("ctl")
	if err != nil {
		return rem.ForcingSample{}, err
	}
	pertERF, pertERFa, err := p.globalTseries(pertName)
	if err != nil {
		return rem.ForcingSample{}, err
	}

	var s rem.ForcingSample
	if s.ERF, s.ERFStdErr, err = deltaStats(pertERF, ctlERF); err != nil {
		return s, err
	}
	if s.ERFa, s.ERFaStdErr, err = deltaStats(pertERFa, ctlERFa); err != nil {
		return s, err
	}
	return s, nil
}

// tseriesERF reads an annual top-of-atmosphere flux time series and returns
// the net downward forcing: incoming shortwave minus outgoing shortwave and
// longwave.
func (p *Provider) tseriesERF(relPath string) ([]float64, error) {
	v, err := p.readSeries(relPath, "field200", "field201", "olr")
	if err != nil {
		return nil, err
	}
	erf := make([]float64, len(v["field200"]))
	for i := range erf {
		erf[i] = v["field200"][i] - (v["field201"][i] + v["olr"][i])
	}
	return erf, nil
}

// globalTseries reads a global-mean flux time series and returns the total
// forcing and its atmospheric component, the total minus the net surface
// flux.
func (p *Provider) globalTseries(experiment string) (erf, erfa []float64, err error) {
	v, err := p.readSeries(fmt.Sprintf(globalTseriesPattern, experiment),
		"field200", "field201", "olr", "solar", "longwave")
	if err != nil {
		return nil, nil, err
	}
	n := len(v["field200"])
	erf = make([]float64, n)
	erfa = make([]float64, n)
	for i := 0; i < n; i++ {
		erf[i] = v["field200"][i] - (v["field201"][i] + v["olr"][i])
		erfa[i] = erf[i] - (v["solar"][i] + v["longwave"][i])
	}
	return erf, erfa, nil
}

// deltaStats returns the mean difference between paired perturbation and
// control samples and its standard error, accounting for their covariance.
func deltaStats(pert, ctl []float64) (avg, stdErr float64, err error) {
	cs, err := stats.Compute(ctl)
	if err != nil {
		return 0, 0, err
	}
	ps, err := stats.Compute(pert)
	if err != nil {
		return 0, 0, err
	}
	cov, err := stats.Covariance(ctl, pert, true)
	if err != nil {
		return 0, 0, err
	}
	v := cs.StdErr*cs.StdErr + ps.StdErr*ps.StdErr - 2*cov
	if v < 0 {
		v = 0
	}
	return ps.Mean - cs.Mean, math.Sqrt(v), nil
}

// modelTable is a PDRMIP forcing table: model name to experiment name to
// forcing [W m-2].
type modelTable map[string]map[string]float64

func (p *Provider) readModelTable(relPath string) (modelTable, error) {
	b, err := os.ReadFile(filepath.Join(p.DataPath, relPath))
	if err != nil {
		return nil, fmt.Errorf("input: reading %s: %v", relPath, err)
	}
	var t modelTable
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("input: parsing %s: %v", relPath, err)
	}
	return t, nil
}

// modelMeanDelta averages a forcing-delta table entry over the models that
// ran the experiment.
func (p *Provider) modelMeanDelta(relPath, experiment string) (float64, error) {
	t, err := p.readModelTable(relPath)
	if err != nil {
		return 0, err
	}
	var vals []float64
	for _, exps := range t {
		if v, ok := exps[experiment]; ok {
			vals = append(vals, v)
		}
	}
	s, err := stats.Compute(vals)
	if err != nil {
		return 0, &rem.DataUnavailableError{What: experiment + " forcing in " + relPath}
	}
	return s.Mean, nil
}

// modelDeltaStats returns the multi-model mean and standard error of the
// difference between an experiment and the base run. MPI-ESM ran no BC
// experiments and is excluded.
func (p *Provider) modelDeltaStats(relPath, experiment string) (avg, stdErr float64, err error) {
	t, err := p.readModelTable(relPath)
	if err != nil {
		return 0, 0, err
	}
	delete(t, "MPI-ESM")
	var base, pert []float64
	for _, exps := range t {
		b, okB := exps["base"]
		v, okV := exps[experiment]
		if okB && okV {
			base = append(base, b)
			pert = append(pert, v)
		}
	}
	return deltaStats(pert, base)
}
