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

func TestSpeciesByName(t *testing.T) {
	for _, name := range SpeciesNames() {
		sp, err := SpeciesByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if sp.Name != name {
			t.Errorf("want %s, have %s", name, sp.Name)
		}
	}
	_, err := SpeciesByName("N2O")
	if err == nil {
		t.Fatal("expected error for unknown pollutant")
	}
	if _, ok := err.(*InvalidParameterError); !ok {
		t.Errorf("want *InvalidParameterError, have %T", err)
	}
}

func TestEmissionRegions(t *testing.T) {
	so2, err := SpeciesByName(SO2)
	if err != nil {
		t.Fatal(err)
	}
	if !so2.ValidEmissionRegion("Europe") {
		t.Error("Europe should be a valid SO2 emission region")
	}
	if so2.ValidEmissionRegion("Asia") {
		t.Error("Asia should not be a valid SO2 emission region")
	}
	bc, err := SpeciesByName(BC)
	if err != nil {
		t.Fatal(err)
	}
	if !bc.ValidEmissionRegion("Asia") {
		t.Error("Asia should be a valid BC emission region")
	}
}

func TestBurden(t *testing.T) {
	for _, name := range SpeciesNames() {
		sp, _ := SpeciesByName(name)
		d := sp.Decay

		if b := d.Burden(0); math.Abs(b-1) > 1e-12 {
			t.Errorf("%s: burden at t=0: want 1, have %g", name, b)
		}
		prev := 1.0
		for _, tt := range []float64{0.1, 1, 10, 100, 500} {
			b := d.Burden(tt)
			if b < 0 || b > prev {
				t.Errorf("%s: burden at t=%g is %g, not decreasing from %g", name, tt, b, prev)
			}
			prev = b
		}
	}
}

func TestIntegratedBurdenSingle(t *testing.T) {
	d := SingleExponential{Tau: 12.4}
	// The integral over all time of an exponential decay is the lifetime.
	if b := d.IntegratedBurden(1e6); math.Abs(b-12.4) > 1e-9 {
		t.Errorf("want 12.4, have %g", b)
	}
	// At short times, burden is nearly constant at 1.
	if b := d.IntegratedBurden(0.001); math.Abs(b-0.001) > 1e-7 {
		t.Errorf("want 0.001, have %g", b)
	}
}

func TestCO2WeightsNormalized(t *testing.T) {
	sp, _ := SpeciesByName(CO2)
	m := sp.Decay.(MultiExponential)
	sum := m.A0
	for _, a := range m.A {
		sum += a
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("CO2 decay weights sum to %g, want 1", sum)
	}
}

// The 1/(tau-d) closed forms have a removable singularity at tau == d; the
// guarded limit must agree with the closed form evaluated nearby.
func TestResponseTermLimits(t *testing.T) {
	const (
		c  = 0.631
		d  = 8.4
		th = 20.0
	)
	nearTau := d * (1 + 1e-7)

	limit := pulseTerm(d, c, d, th)
	near := pulseTerm(nearTau, c, d, th)
	if math.Abs(limit-near) > 1e-5*math.Abs(limit) {
		t.Errorf("pulse term: limit %g, nearby closed form %g", limit, near)
	}

	limit = integratedTerm(d, c, d, th)
	near = integratedTerm(nearTau, c, d, th)
	if math.Abs(limit-near) > 1e-5*math.Abs(limit) {
		t.Errorf("integrated term: limit %g, nearby closed form %g", limit, near)
	}
}
