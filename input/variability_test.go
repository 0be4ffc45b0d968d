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
	"math"
	"path/filepath"
	"testing"

	"github.com/spatialclimate/rem"
)

func TestModelVariability(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < NumControlRuns; i++ {
		writeNC(t, filepath.Join(dir, fmt.Sprintf(controlRunPattern, i)),
			[]string{"t", "latitude", "longitude"}, []int{1, NLat, NLon},
			map[string]string{"precip": "mm/day"},
			map[string][]float64{
				"temp":   constGrid(NLat*NLon, float64(i+1)),
				"precip": constGrid(NLat*NLon, 2*float64(i+1)),
			})
	}

	p := NewProvider(dir, nil)
	temp, precip, err := p.ModelVariability()
	if err != nil {
		t.Fatal(err)
	}
	if len(temp) != len(rem.ResponseRegions) || len(precip) != len(rem.ResponseRegions) {
		t.Fatalf("region counts: have %d, %d", len(temp), len(precip))
	}
	if _, ok := temp["Global"]; !ok {
		t.Fatal("missing Global temperature sample")
	}

	// The fields are spatially constant, so every regional average equals the
	// per-run value.
	for _, name := range []string{"Global", "Tropics", "Sahel"} {
		for i := 0; i < NumControlRuns; i++ {
			if want := float64(i + 1); math.Abs(temp[name][i]-want) > 1e-9 {
				t.Errorf("%s temperature run %d: want %g, have %g", name, i, want, temp[name][i])
			}
			if want := 2 * float64(i+1); math.Abs(precip[name][i]-want) > 1e-9 {
				t.Errorf("%s precipitation run %d: want %g, have %g", name, i, want, precip[name][i])
			}
		}
	}
}

func TestModelVariabilityMissingRun(t *testing.T) {
	dir := t.TempDir()
	// Only the first control run is present.
	writeNC(t, filepath.Join(dir, fmt.Sprintf(controlRunPattern, 0)),
		[]string{"t", "latitude", "longitude"}, []int{1, NLat, NLon}, nil,
		map[string][]float64{
			"temp":   constGrid(NLat*NLon, 1),
			"precip": constGrid(NLat*NLon, 2),
		})

	p := NewProvider(dir, nil)
	if _, _, err := p.ModelVariability(); err == nil {
		t.Error("expected error for missing control runs")
	}
}
