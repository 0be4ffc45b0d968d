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
	"testing"

	"github.com/ctessum/sparse"
)

func denseFrom(shape []int, vals []float64) *sparse.DenseArray {
	a := sparse.ZerosDense(shape...)
	copy(a.Elements, vals)
	return a
}

func TestAreaAverage(t *testing.T) {
	grid := denseFrom([]int{2, 2}, []float64{1, 2, 3, 4})
	areas := denseFrom([]int{2, 2}, []float64{1, 1, 2, 2})

	have, err := AreaAverage(grid, areas, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := (1 + 2 + 2*3 + 2*4) / 6.0
	if math.Abs(have-want) > 1e-12 {
		t.Errorf("want %g, have %g", want, have)
	}

	mask := denseFrom([]int{2, 2}, []float64{0, 0, 1, 1})
	have, err = AreaAverage(grid, areas, mask)
	if err != nil {
		t.Fatal(err)
	}
	want = 3.5
	if math.Abs(have-want) > 1e-12 {
		t.Errorf("masked: want %g, have %g", want, have)
	}
}

func TestAreaAverageErrors(t *testing.T) {
	grid := denseFrom([]int{2, 2}, []float64{1, 2, 3, 4})
	areas := denseFrom([]int{2, 2}, []float64{1, 1, 1, 1})

	_, err := AreaAverage(grid, areas, sparse.ZerosDense(2, 2))
	if err == nil {
		t.Fatal("expected error for all-zero masked area")
	}
	if _, ok := err.(*DomainError); !ok {
		t.Errorf("want *DomainError, have %T", err)
	}

	_, err = AreaAverage(denseFrom([]int{3, 2}, make([]float64, 6)), areas, nil)
	if err == nil {
		t.Fatal("expected error for mismatched shapes")
	}
	if _, ok := err.(*ShapeMismatchError); !ok {
		t.Errorf("want *ShapeMismatchError, have %T", err)
	}
}

func TestClimateVariables(t *testing.T) {
	temp := denseFrom([]int{2, 2}, []float64{1, 1, 3, 3})
	precip := denseFrom([]int{2, 2}, []float64{2, 2, 6, 6})
	areas := denseFrom([]int{2, 2}, []float64{1, 1, 1, 1})
	regions := []RegionMask{
		{Name: "North", Mask: denseFrom([]int{2, 2}, []float64{1, 1, 0, 0})},
		{Name: "South", Mask: denseFrom([]int{2, 2}, []float64{0, 0, 1, 1})},
	}

	d, err := ClimateVariables(temp, precip, areas, regions)
	if err != nil {
		t.Fatal(err)
	}
	if d.GlobalTemp != 2 || d.GlobalPrecip != 4 {
		t.Errorf("global averages: have %g, %g", d.GlobalTemp, d.GlobalPrecip)
	}
	if d.RegionTemp[0] != 1 || d.RegionTemp[1] != 3 {
		t.Errorf("regional temperatures: have %v", d.RegionTemp)
	}

	ratios, err := d.TempRatios()
	if err != nil {
		t.Fatal(err)
	}
	if ratios[0] != 0.5 || ratios[1] != 1.5 {
		t.Errorf("temperature ratios: have %v", ratios)
	}
	ratios, err = d.PrecipRatios()
	if err != nil {
		t.Fatal(err)
	}
	if ratios[0] != 0.5 || ratios[1] != 1.5 {
		t.Errorf("precipitation ratios: have %v", ratios)
	}
}

func TestRatiosZeroGlobal(t *testing.T) {
	d := &ClimateDeltas{
		Regions:    []string{"North"},
		RegionTemp: []float64{1},
	}
	_, err := d.TempRatios()
	if err == nil {
		t.Fatal("expected error for zero global average")
	}
	if _, ok := err.(*DomainError); !ok {
		t.Errorf("want *DomainError, have %T", err)
	}
}
