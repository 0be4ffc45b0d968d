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
	"reflect"

	"github.com/ctessum/sparse"
)

// RegionMask pairs a response-region name with its 0/1 grid mask.
type RegionMask struct {
	Name string
	Mask *sparse.DenseArray
}

// ClimateDeltas holds area-weighted average temperature [K] and
// precipitation [mm day-1] differences between a perturbation and a control
// experiment, per response region and globally.
type ClimateDeltas struct {
	Regions      []string
	RegionTemp   []float64
	GlobalTemp   float64
	RegionPrecip []float64
	GlobalPrecip float64
}

// TempRatios returns the regional-to-global temperature ratios, the spatial
// response pattern that converts a global potential to regional ones.
func (d *ClimateDeltas) TempRatios() ([]float64, error) {
	return d.ratios(d.RegionTemp, d.GlobalTemp, "global temperature delta")
}

// PrecipRatios returns the regional-to-global precipitation ratios.
func (d *ClimateDeltas) PrecipRatios() ([]float64, error) {
	return d.ratios(d.RegionPrecip, d.GlobalPrecip, "global precipitation delta")
}

func (d *ClimateDeltas) ratios(regional []float64, global float64, term string) ([]float64, error) {
	if global == 0 {
		return nil, errDomain("regional response ratio", term)
	}
	r := make([]float64, len(regional))
	for i, v := range regional {
		r[i] = v / global
	}
	return r, nil
}

// ClimateVariables reduces gridded temperature and precipitation deltas to
// area-weighted regional and global averages. All grids must share the same
// shape as areas.
func ClimateVariables(deltaTemp, deltaPrecip, areas *sparse.DenseArray, regions []RegionMask) (*ClimateDeltas, error) {
	for _, g := range []struct {
		name string
		a    *sparse.DenseArray
	}{{"temperature delta", deltaTemp}, {"precipitation delta", deltaPrecip}} {
		if !reflect.DeepEqual(g.a.Shape, areas.Shape) {
			return nil, errShape(g.name, g.a.Shape, areas.Shape)
		}
	}

	d := &ClimateDeltas{
		Regions:      make([]string, len(regions)),
		RegionTemp:   make([]float64, len(regions)),
		RegionPrecip: make([]float64, len(regions)),
	}
	var err error
	if d.GlobalTemp, err = AreaAverage(deltaTemp, areas, nil); err != nil {
		return nil, err
	}
	if d.GlobalPrecip, err = AreaAverage(deltaPrecip, areas, nil); err != nil {
		return nil, err
	}
	for i, reg := range regions {
		d.Regions[i] = reg.Name
		if d.RegionTemp[i], err = AreaAverage(deltaTemp, areas, reg.Mask); err != nil {
			return nil, err
		}
		if d.RegionPrecip[i], err = AreaAverage(deltaPrecip, areas, reg.Mask); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AreaAverage returns the area-weighted average of grid over the cells where
// mask is nonzero. A nil mask averages over the whole grid.
func AreaAverage(grid, areas, mask *sparse.DenseArray) (float64, error) {
	if !reflect.DeepEqual(grid.Shape, areas.Shape) {
		return 0, errShape("grid", grid.Shape, areas.Shape)
	}
	if mask != nil && !reflect.DeepEqual(mask.Shape, areas.Shape) {
		return 0, errShape("mask", mask.Shape, areas.Shape)
	}
	var sum, weight float64
	for i, v := range grid.Elements {
		w := areas.Elements[i]
		if mask != nil {
			w *= mask.Elements[i]
		}
		sum += v * w
		weight += w
	}
	if weight == 0 {
		return 0, errDomain("area average", "total masked area")
	}
	return sum / weight, nil
}
