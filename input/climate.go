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
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"

	"github.com/spatialclimate/rem"
)

const secPerYear = 3600 * 24 * 365

// massRate is the dimensions of an emission rate.
var massRate = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}

// Annual emission-rate deltas of the well-mixed greenhouse-gas perturbation
// experiments (3xCH4 and 2xCO2) [Tg yr-1].
const (
	ch4EmissionTgYr = 860.827
	co2EmissionTgYr = 2.891e6
)

// Deltas holds the gridded perturbation-minus-control climate fields of one
// experiment and the emission-rate delta that caused them.
type Deltas struct {
	// Temp [K] and Precip [mm day-1] are on the N96 (lat, lon) grid.
	Temp   *sparse.DenseArray
	Precip *sparse.DenseArray

	// EmissionMass is the emission-rate delta of the perturbation [kg s-1].
	EmissionMass *unit.Unit
}

// EmissionMassTgYr returns the emission-rate delta in Tg yr-1, the unit the
// radiative-efficiency calculation expects.
func (d *Deltas) EmissionMassTgYr() float64 {
	return d.EmissionMass.Value() * secPerYear * 1e-9
}

// ClimateDeltas loads the perturbation and control experiments for a species
// and emission region and returns their difference.
func (p *Provider) ClimateDeltas(sp *rem.Species, emissionRegion string) (*Deltas, error) {
	if !sp.ValidEmissionRegion(emissionRegion) {
		return nil, &rem.DataUnavailableError{
			What: fmt.Sprintf("%s perturbation experiment for region %s", sp.Name, emissionRegion),
		}
	}
	ctlPath, pertPath, err := p.experimentPaths(sp, emissionRegion)
	if err != nil {
		return nil, err
	}
	p.logf("loading %s experiment pair: %s, %s", sp.Name, ctlPath, pertPath)

	ctl, err := p.openNC(ctlPath)
	if err != nil {
		return nil, err
	}
	defer ctl.Close()
	pert, err := p.openNC(pertPath)
	if err != nil {
		return nil, err
	}
	defer pert.Close()

	d := new(Deltas)
	if d.Temp, err = deltaGrid(pert, ctl, "temp"); err != nil {
		return nil, err
	}
	if d.Precip, err = deltaGrid(pert, ctl, "precip"); err != nil {
		return nil, err
	}

	switch sp.Name {
	case rem.SO2:
		d.EmissionMass, err = so2EmissionDelta(pert, ctl, p.GridAreas())
	case rem.BC:
		d.EmissionMass, err = p.bcEmissionDelta(emissionRegion)
	case rem.CH4:
		d.EmissionMass = unit.New(ch4EmissionTgYr*1e9/secPerYear, massRate)
	case rem.CO2:
		d.EmissionMass = unit.New(co2EmissionTgYr*1e9/secPerYear, massRate)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Provider) experimentPaths(sp *rem.Species, emissionRegion string) (ctl, pert string, err error) {
	switch sp.Name {
	case rem.SO2:
		pert, err = p.firstFileIn(fmt.Sprintf(so2PertDirPattern, emissionRegion))
		return so2ControlFile, pert, err
	case rem.BC:
		if emissionRegion == "Global" {
			return pdrmipControlFile, fmt.Sprintf(pdrmipPertPattern, "10xBC"), nil
		}
		return pdrmipControlFile, fmt.Sprintf(pdrmipPertPattern, "10xBCAsia"), nil
	case rem.CO2:
		return pdrmipControlFile, fmt.Sprintf(pdrmipPertPattern, "2xCO2"), nil
	case rem.CH4:
		return pdrmipControlFile, fmt.Sprintf(pdrmipPertPattern, "3xCH4"), nil
	}
	return "", "", &rem.DataUnavailableError{What: "experiment pair for " + sp.Name}
}

// firstFileIn returns the path (relative to DataPath) of the first file in
// the given directory; perturbation-average file names carry run identifiers
// that vary between experiments.
func (p *Provider) firstFileIn(relDir string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(p.DataPath, relDir))
	if err != nil {
		return "", fmt.Errorf("input: listing %s: %v", relDir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", &rem.DataUnavailableError{What: "perturbation file in " + relDir}
	}
	sort.Strings(names)
	return filepath.Join(relDir, names[0]), nil
}

// deltaGrid reads a variable from both experiments and returns pert - ctl.
// Precipitation fields in kg m-2 s-1 are converted to mm day-1.
func deltaGrid(pert, ctl *ncFile, v string) (*sparse.DenseArray, error) {
	pg, err := pert.readGrid(v)
	if err != nil {
		return nil, err
	}
	cg, err := ctl.readGrid(v)
	if err != nil {
		return nil, err
	}
	if v == "precip" {
		if pert.units(v) != "mm/day" {
			pg.Scale(86400)
		}
		if ctl.units(v) != "mm/day" {
			cg.Scale(86400)
		}
	}
	if len(pg.Shape) != len(cg.Shape) || pg.Shape[0] != cg.Shape[0] || pg.Shape[1] != cg.Shape[1] {
		return nil, &rem.ShapeMismatchError{Name: v, Have: pg.Shape, Want: cg.Shape}
	}
	d := pg.Copy()
	d.AddDense(cg.ScaleCopy(-1))
	return d, nil
}

// so2EmissionDelta sums the gridded SO2 emission-flux difference between the
// perturbation and control experiments. The low- and high-level source
// fields are summed; the factor 2 converts mass of sulfur to mass of SO2.
func so2EmissionDelta(pert, ctl *ncFile, areas *sparse.DenseArray) (*unit.Unit, error) {
	var total float64
	for _, field := range []string{"field569", "field569_1"} {
		pg, err := pert.readGrid(field)
		if err != nil {
			return nil, err
		}
		cg, err := ctl.readGrid(field)
		if err != nil {
			return nil, err
		}
		for i, a := range areas.Elements {
			total += a * 2 * (pg.Elements[i] - cg.Elements[i])
		}
	}
	return unit.New(total, massRate), nil
}

// bcEmissionDelta integrates the AeroCom BC emission inventory over the
// emission region. The perturbation experiments scale emissions tenfold, so
// the delta is nine times the inventory.
func (p *Provider) bcEmissionDelta(emissionRegion string) (*unit.Unit, error) {
	mask, err := p.RegionMask(regionAlias(emissionRegion))
	if err != nil {
		return nil, err
	}
	nc, err := p.openNC(bcEmissionFile)
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	emi, err := nc.readGrid("emibc")
	if err != nil {
		return nil, err
	}
	areas := p.GridAreas()
	var total float64
	for i, a := range areas.Elements {
		total += a * emi.Elements[i] * mask.Elements[i] * 9
	}
	return unit.New(total, massRate), nil
}

// regionAlias maps emission-region spellings to response-region mask names.
func regionAlias(name string) string {
	if name == "EastAsia" {
		return "East Asia"
	}
	return name
}
