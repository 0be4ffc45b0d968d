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

// Package input loads the HadGEM3 and PDRMIP simulation output that drives
// the potential calculations: gridded climate fields, emission inventories,
// forcing time series and the multi-model forcing tables.
package input

import (
	"sync"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// Locations of the simulation output within the data directory.
const (
	so2ControlFile    = "SO2/ctl_150year_avg.nc"
	so2PertDirPattern = "SO2/No_SO2_%s"
	so2TseriesCtl     = "SO2/TOA_RF_tseries/HadGEM3_Atmos_Control_25yr_RF_tseries.nc"
	so2TseriesPattern = "SO2/TOA_RF_tseries/HadGEM3_Atmos_noSO2_%s_25yr_RF_tseries.nc"

	pdrmipControlFile = "pdrmip/regridded_files/base_mm_mean.nc"
	pdrmipPertPattern = "pdrmip/regridded_files/%s_mm_mean.nc"
	bcEmissionFile    = "pdrmip/emissions/regridded_aerocom_BC_emissions_2006.nc"

	globalTseriesPattern = "pdrmip/extracts/HadGEM3_atmos_%s_global_tseries_15.nc"

	meanDeltaERFtFile = "pdrmip/PDRMIP_mean_dERFt.json"
	meanDeltaERFaFile = "pdrmip/PDRMIP_mean_dERFa.json"
	meanERFtFile      = "pdrmip/PDRMIP_mean_ERFt.json"
	meanERFaFile      = "pdrmip/PDRMIP_mean_ERFa.json"

	controlRunPattern = "ctl/%d_150.nc"
	// NumControlRuns is the size of the control-simulation ensemble used to
	// estimate internal climate variability.
	NumControlRuns = 6
)

// Provider loads simulation output from a local data directory. Grid areas
// and region masks are computed once and cached; a Provider is safe for
// concurrent use.
type Provider struct {
	// DataPath is the root of the data directory.
	DataPath string

	// Log receives progress information. If nil, nothing is logged.
	Log logrus.FieldLogger

	mu    sync.Mutex
	areas *sparse.DenseArray
	masks map[string]*sparse.DenseArray
}

// NewProvider returns a Provider reading from dataPath.
func NewProvider(dataPath string, log logrus.FieldLogger) *Provider {
	return &Provider{
		DataPath: dataPath,
		Log:      log,
		masks:    make(map[string]*sparse.DenseArray),
	}
}

func (p *Provider) logf(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Infof(format, args...)
	}
}
