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

	"github.com/ctessum/sparse"
)

// Dimensions of the HadGEM3 N96 grid that all gridded inputs share.
const (
	NLat = 145
	NLon = 192
)

const earthRadius = 6.371e6 // m

// Latitudes returns the N96 latitude coordinates [degrees north], from
// -90 to 90.
func Latitudes() []float64 {
	lat := make([]float64, NLat)
	for i := range lat {
		lat[i] = -90 + 180*float64(i)/float64(NLat-1)
	}
	return lat
}

// Longitudes returns the N96 longitude coordinates [degrees east], from 0
// to 360 exclusive.
func Longitudes() []float64 {
	lon := make([]float64, NLon)
	for i := range lon {
		lon[i] = 360 * float64(i) / float64(NLon)
	}
	return lon
}

// GridAreas returns the area of each N96 grid cell [m2], on a (lat, lon)
// grid. Cells are bounded by the midpoints between adjacent grid latitudes,
// so the polar rows are half-height caps.
func (p *Provider) GridAreas() *sparse.DenseArray {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.areas != nil {
		return p.areas
	}

	lat := Latitudes()
	dLon := 2 * math.Pi / NLon
	a := sparse.ZerosDense(NLat, NLon)
	for j := 0; j < NLat; j++ {
		south, north := -90.0, 90.0
		if j > 0 {
			south = (lat[j-1] + lat[j]) / 2
		}
		if j < NLat-1 {
			north = (lat[j] + lat[j+1]) / 2
		}
		band := math.Sin(north*math.Pi/180) - math.Sin(south*math.Pi/180)
		area := earthRadius * earthRadius * dLon * band
		for i := 0; i < NLon; i++ {
			a.Set(area, j, i)
		}
	}
	p.areas = a
	return a
}
