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
	"testing"

	"github.com/spatialclimate/rem"
)

// latIndex and lonIndex convert coordinates to N96 grid indices; the chosen
// test points fall exactly on grid nodes.
func latIndex(lat float64) int { return int((lat + 90) / 1.25) }
func lonIndex(lon float64) int { return int(lon / 1.875) }

func TestRegionMaskGlobal(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	m, err := p.RegionMask("Global")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Elements {
		if v != 1 {
			t.Fatalf("global mask element %d: want 1, have %g", i, v)
		}
	}
}

func TestRegionMaskLatitudeBands(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	m, err := p.RegionMask("Tropics")
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Get(latIndex(0), lonIndex(90)); v != 1 {
		t.Errorf("equator: want 1, have %g", v)
	}
	if v := m.Get(latIndex(45), lonIndex(90)); v != 0 {
		t.Errorf("45N: want 0, have %g", v)
	}

	m, err = p.RegionMask("NHML")
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Get(latIndex(45), lonIndex(90)); v != 1 {
		t.Errorf("45N in northern midlatitudes: want 1, have %g", v)
	}
	if v := m.Get(latIndex(-45), lonIndex(90)); v != 0 {
		t.Errorf("45S in northern midlatitudes: want 0, have %g", v)
	}
}

// The European box spans the prime meridian, so cells just west of 360
// degrees must be included even though the grid holds no negative longitudes.
func TestRegionMaskMeridianWrap(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	m, err := p.RegionMask("Europe")
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Get(latIndex(50), lonIndex(352.5)); v != 1 {
		t.Errorf("7.5W 50N: want 1, have %g", v)
	}
	if v := m.Get(latIndex(50), lonIndex(30)); v != 1 {
		t.Errorf("30E 50N: want 1, have %g", v)
	}
	if v := m.Get(latIndex(50), lonIndex(180)); v != 0 {
		t.Errorf("180E 50N: want 0, have %g", v)
	}
}

func TestRegionMaskUS(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	m, err := p.RegionMask("US")
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Get(latIndex(40), lonIndex(251.25)); v != 1 {
		t.Errorf("interior point: want 1, have %g", v)
	}
	if v := m.Get(latIndex(40), lonIndex(0)); v != 0 {
		t.Errorf("prime meridian: want 0, have %g", v)
	}
}

func TestRegionMaskUnknown(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	_, err := p.RegionMask("Atlantis")
	if err == nil {
		t.Fatal("expected error for unknown region")
	}
	if _, ok := err.(*rem.DataUnavailableError); !ok {
		t.Errorf("want *rem.DataUnavailableError, have %T", err)
	}
}

func TestResponseRegionMasks(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	masks, err := p.ResponseRegionMasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(masks) != len(rem.ResponseRegions) {
		t.Fatalf("want %d masks, have %d", len(rem.ResponseRegions), len(masks))
	}
	for i, m := range masks {
		if m.Name != rem.ResponseRegions[i] {
			t.Errorf("mask %d: want %s, have %s", i, rem.ResponseRegions[i], m.Name)
		}
		if m.Mask.Shape[0] != NLat || m.Mask.Shape[1] != NLon {
			t.Errorf("mask %s shape: have %v", m.Name, m.Mask.Shape)
		}
	}
}
