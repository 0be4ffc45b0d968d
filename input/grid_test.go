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
	"math"
	"testing"
)

func TestGridCoordinates(t *testing.T) {
	lat := Latitudes()
	if len(lat) != NLat {
		t.Fatalf("want %d latitudes, have %d", NLat, len(lat))
	}
	if lat[0] != -90 || lat[NLat-1] != 90 {
		t.Errorf("latitude range: have %g to %g", lat[0], lat[NLat-1])
	}
	if want := 1.25; math.Abs(lat[1]-lat[0]-want) > 1e-12 {
		t.Errorf("latitude step: want %g, have %g", want, lat[1]-lat[0])
	}

	lon := Longitudes()
	if len(lon) != NLon {
		t.Fatalf("want %d longitudes, have %d", NLon, len(lon))
	}
	if lon[0] != 0 {
		t.Errorf("first longitude: have %g", lon[0])
	}
	if want := 360 - 1.875; math.Abs(lon[NLon-1]-want) > 1e-12 {
		t.Errorf("last longitude: want %g, have %g", want, lon[NLon-1])
	}
}

func TestGridAreas(t *testing.T) {
	p := NewProvider(t.TempDir(), nil)
	a := p.GridAreas()
	if a.Shape[0] != NLat || a.Shape[1] != NLon {
		t.Fatalf("shape: have %v", a.Shape)
	}

	// The cell areas tile the sphere.
	var total float64
	for _, v := range a.Elements {
		if v <= 0 {
			t.Fatalf("non-positive cell area %g", v)
		}
		total += v
	}
	want := 4 * math.Pi * earthRadius * earthRadius
	if math.Abs(total-want)/want > 1e-9 {
		t.Errorf("total area: want %g, have %g", want, total)
	}

	if polar, equator := a.Get(0, 0), a.Get(NLat/2, 0); polar >= equator {
		t.Errorf("polar cell (%g) not smaller than equatorial cell (%g)", polar, equator)
	}

	if p.GridAreas() != a {
		t.Error("areas not cached")
	}
}
