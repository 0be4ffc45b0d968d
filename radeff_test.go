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
)

func TestRadiativeEfficiencySingleLifetime(t *testing.T) {
	sp, _ := SpeciesByName(CH4)
	const (
		erf   = 1.0
		erfa  = 0.6
		mass  = 860.827
		ratio = 1.3
	)
	r, err := ComputeRadiativeEfficiency(sp, erf, erfa, mass, []float64{1, ratio})
	if err != nil {
		t.Fatal(err)
	}
	// Single-lifetime species are normalized by mass and lifetime.
	want := erf / (mass * 12.4)
	if math.Abs(r.Global-want) > 1e-15 {
		t.Errorf("global: want %g, have %g", want, r.Global)
	}
	if want := erfa / (mass * 12.4); math.Abs(r.GlobalAtmos-want) > 1e-15 {
		t.Errorf("global atmos: want %g, have %g", want, r.GlobalAtmos)
	}
	if want := r.Global * ratio; math.Abs(r.Regional[1]-want) > 1e-15 {
		t.Errorf("regional: want %g, have %g", want, r.Regional[1])
	}
}

func TestRadiativeEfficiencyMultiLifetime(t *testing.T) {
	sp, _ := SpeciesByName(CO2)
	r, err := ComputeRadiativeEfficiency(sp, 2.5, 2.0, 2.891e6, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	// CO2 carries no lifetime normalization.
	if want := 2.5 / 2.891e6; math.Abs(r.Global-want) > 1e-20 {
		t.Errorf("global: want %g, have %g", want, r.Global)
	}
}

func TestRadiativeEfficiencyZeroMass(t *testing.T) {
	sp, _ := SpeciesByName(SO2)
	_, err := ComputeRadiativeEfficiency(sp, 1, 1, 0, []float64{1})
	if err == nil {
		t.Fatal("expected error for zero emission mass")
	}
	if _, ok := err.(*DomainError); !ok {
		t.Errorf("want *DomainError, have %T", err)
	}
}
