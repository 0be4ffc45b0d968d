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

	"github.com/spatialclimate/rem"
)

// ModelVariability area-averages temperature and precipitation over each
// response region in every control simulation. The returned maps hold one
// value per control run and always include a "Global" entry, in the form
// rem.ClimateStatsFromEnsemble consumes.
func (p *Provider) ModelVariability() (temp, precip map[string][]float64, err error) {
	masks, err := p.ResponseRegionMasks()
	if err != nil {
		return nil, nil, err
	}
	areas := p.GridAreas()

	temp = make(map[string][]float64, len(masks))
	precip = make(map[string][]float64, len(masks))
	for _, m := range masks {
		temp[m.Name] = make([]float64, NumControlRuns)
		precip[m.Name] = make([]float64, NumControlRuns)
	}

	for i := 0; i < NumControlRuns; i++ {
		path := fmt.Sprintf(controlRunPattern, i)
		p.logf("loading control run %s", path)
		nc, err := p.openNC(path)
		if err != nil {
			return nil, nil, err
		}
		t, err := nc.readGrid("temp")
		if err != nil {
			nc.Close()
			return nil, nil, err
		}
		pr, err := nc.readGrid("precip")
		nc.Close()
		if err != nil {
			return nil, nil, err
		}
		for _, m := range masks {
			if temp[m.Name][i], err = rem.AreaAverage(t, areas, m.Mask); err != nil {
				return nil, nil, err
			}
			if precip[m.Name][i], err = rem.AreaAverage(pr, areas, m.Mask); err != nil {
				return nil, nil, err
			}
		}
	}
	return temp, precip, nil
}
