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
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"

	"github.com/spatialclimate/rem"
)

// regionBounds are lat/lon bounding boxes in degrees; longitudes follow the
// convention of the defining dataset (0-360 for US, -180-180 for Europe and
// Sahel) and are normalized when building masks.
var regionBounds = map[string]struct {
	lonMin, lonMax, latMin, latMax float64
}{
	"Global":    {0, 360, -90, 90},
	"Tropics":   {0, 360, -30, 30},
	"NHML":      {0, 360, 30, 60},
	"NHHL":      {0, 360, 60, 90},
	"SHML":      {0, 360, -60, -30},
	"SHHL":      {0, 360, -90, -60},
	"Europe":    {-10, 40, 37, 70},
	"US":        {235, 290, 30, 50},
	"China":     {80, 120, 20, 50},
	"East Asia": {105, 145, 20, 45},
	"India":     {70, 90, 10, 30},
	"Sahel":     {-17, 38, 9, 19},
	"Asia":      {60, 140, 10, 50},
}

// RegionMask returns the 0/1 N96 mask of the named region. Masks are built
// once and cached.
func (p *Provider) RegionMask(name string) (*sparse.DenseArray, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.masks[name]; ok {
		return m, nil
	}
	b, ok := regionBounds[name]
	if !ok {
		return nil, &rem.DataUnavailableError{What: "mask for region " + name}
	}

	poly := geom.Polygon{{
		geom.Point{X: b.lonMin, Y: b.latMin},
		geom.Point{X: b.lonMax, Y: b.latMin},
		geom.Point{X: b.lonMax, Y: b.latMax},
		geom.Point{X: b.lonMin, Y: b.latMax},
		geom.Point{X: b.lonMin, Y: b.latMin},
	}}

	lat, lon := Latitudes(), Longitudes()
	m := sparse.ZerosDense(NLat, NLon)
	for j, y := range lat {
		for i, x := range lon {
			// Grid longitudes run 0-360; test the -180-180 alias too so
			// boxes spanning the prime meridian are covered.
			in := geom.Point{X: x, Y: y}.Within(poly) != geom.Outside ||
				geom.Point{X: x - 360, Y: y}.Within(poly) != geom.Outside
			if in {
				m.Set(1, j, i)
			}
		}
	}
	p.masks[name] = m
	return m, nil
}

// ResponseRegionMasks returns the masks of all response regions, in the
// order used throughout the package.
func (p *Provider) ResponseRegionMasks() ([]rem.RegionMask, error) {
	masks := make([]rem.RegionMask, len(rem.ResponseRegions))
	for i, name := range rem.ResponseRegions {
		m, err := p.RegionMask(name)
		if err != nil {
			return nil, err
		}
		masks[i] = rem.RegionMask{Name: name, Mask: m}
	}
	return masks, nil
}
