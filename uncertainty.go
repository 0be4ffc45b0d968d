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

	"github.com/spatialclimate/rem/stats"
)

// ForcingSample is an effective-radiative-forcing difference between a
// perturbation and a control experiment [W m-2], with the atmospheric
// component and standard errors from inter-model or inter-annual spread.
type ForcingSample struct {
	ERF        float64
	ERFStdErr  float64
	ERFa       float64
	ERFaStdErr float64
}

// ClimateStats holds the control-climate regional and global temperature and
// precipitation averages, and the standard errors of their regional/global
// ratios, from an ensemble of control simulations.
type ClimateStats struct {
	Regions []string

	RegionTemp      []float64
	GlobalTemp      float64
	TempRatioStdErr []float64

	RegionPrecip      []float64
	GlobalPrecip      float64
	PrecipRatioStdErr []float64
}

// ClimateStatsFromEnsemble reduces per-region control-run samples to the
// statistics needed for uncertainty propagation. temp and precip map region
// name to one value per ensemble member (NaN for missing members) and must
// include a "Global" entry; the regional/global ratio standard errors use
// the ratio-uncertainty formula with the member-paired covariance.
func ClimateStatsFromEnsemble(regions []string, temp, precip map[string][]float64) (*ClimateStats, error) {
	globTemp, ok := temp["Global"]
	if !ok {
		return nil, &DataUnavailableError{What: "global control-run temperature sample"}
	}
	globPrecip, ok := precip["Global"]
	if !ok {
		return nil, &DataUnavailableError{What: "global control-run precipitation sample"}
	}
	gt, err := stats.Compute(globTemp)
	if err != nil {
		return nil, err
	}
	gp, err := stats.Compute(globPrecip)
	if err != nil {
		return nil, err
	}

	cs := &ClimateStats{
		Regions:           append([]string(nil), regions...),
		GlobalTemp:        gt.Mean,
		GlobalPrecip:      gp.Mean,
		RegionTemp:        make([]float64, len(regions)),
		TempRatioStdErr:   make([]float64, len(regions)),
		RegionPrecip:      make([]float64, len(regions)),
		PrecipRatioStdErr: make([]float64, len(regions)),
	}
	for i, name := range regions {
		rt, ok := temp[name]
		if !ok {
			return nil, &DataUnavailableError{What: "control-run temperature sample for " + name}
		}
		rp, ok := precip[name]
		if !ok {
			return nil, &DataUnavailableError{What: "control-run precipitation sample for " + name}
		}
		ts, err := stats.Compute(rt)
		if err != nil {
			return nil, err
		}
		ps, err := stats.Compute(rp)
		if err != nil {
			return nil, err
		}
		tCov, err := stats.Covariance(rt, globTemp, true)
		if err != nil {
			return nil, err
		}
		pCov, err := stats.Covariance(rp, globPrecip, true)
		if err != nil {
			return nil, err
		}
		cs.RegionTemp[i] = ts.Mean
		cs.RegionPrecip[i] = ps.Mean
		if cs.TempRatioStdErr[i], err = stats.RatioStd(ts.Mean, gt.Mean, ts.StdErr, gt.StdErr, tCov); err != nil {
			return nil, err
		}
		if cs.PrecipRatioStdErr[i], err = stats.RatioStd(ps.Mean, gp.Mean, ps.StdErr, gp.StdErr, pCov); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// Propagator combines the independent relative uncertainties of a potential
// in quadrature: forcing spread, climate-sensitivity scaling spread,
// control-climate ratio variability and precipitation-efficiency
// uncertainty. No cross-term covariances are modeled.
type Propagator struct {
	Ensemble *ModelEnsemble
}

// NewPropagator returns a propagator using the PDRMIP ensemble.
func NewPropagator() *Propagator { return &Propagator{Ensemble: NewModelEnsemble()} }

// PotentialStd converts the point estimates of a temperature potential and
// the slow/fast components of a precipitation potential into propagated
// standard deviations, one per response region. regional and global are the
// emission-region and global forcing samples for the species (for CO2 and
// CH4 the regional sample is {1, 0, 1, 0}: spatially uniform forcing).
// artp, slowARPP and fastARPP may each hold either pulse or integrated
// values; the standard deviations apply to whichever was passed.
func (p *Propagator) PotentialStd(sp *Species, regional, global ForcingSample, climate *ClimateStats, artp, slowARPP, fastARPP []float64) (artpStd, arppStd []float64, err error) {
	n := len(climate.Regions)
	for _, v := range []struct {
		name string
		x    []float64
	}{{"artp", artp}, {"slow arpp", slowARPP}, {"fast arpp", fastARPP}} {
		if len(v.x) != n {
			return nil, nil, errShape(v.name, []int{len(v.x)}, []int{n})
		}
	}
	for _, d := range []struct {
		op, term string
		v        float64
	}{
		{"potential uncertainty", "regional ERF average", regional.ERF},
		{"potential uncertainty", "global ERF average", global.ERF},
		{"potential uncertainty", "regional ERFa average", regional.ERFa},
		{"potential uncertainty", "global ERFa average", global.ERFa},
		{"potential uncertainty", "global control temperature", climate.GlobalTemp},
		{"potential uncertainty", "global control precipitation", climate.GlobalPrecip},
		{"potential uncertainty", "precipitation efficiency", sp.PrecipEfficiency},
	} {
		if d.v == 0 {
			return nil, nil, errDomain(d.op, d.term)
		}
	}

	scaling, err := p.Ensemble.Scaling(sp.Name, Temperature)
	if err != nil {
		return nil, nil, err
	}
	if scaling.C == 0 {
		return nil, nil, errDomain("potential uncertainty", "climate-sensitivity scaling")
	}

	regERF := sq(regional.ERFStdErr / regional.ERF)
	gloERF := sq(global.ERFStdErr / global.ERF)
	regERFa := sq(regional.ERFaStdErr / regional.ERFa)
	gloERFa := sq(global.ERFaStdErr / global.ERFa)
	cScal := sq(scaling.CStd / scaling.C)
	kRel := sq(sp.PrecipEfficiencyStd / sp.PrecipEfficiency)

	artpStd = make([]float64, n)
	arppStd = make([]float64, n)
	for i := 0; i < n; i++ {
		if climate.RegionTemp[i] == 0 {
			return nil, nil, errDomain("potential uncertainty", "control temperature for "+climate.Regions[i])
		}
		if climate.RegionPrecip[i] == 0 {
			return nil, nil, errDomain("potential uncertainty", "control precipitation for "+climate.Regions[i])
		}
		tRatio := sq(climate.TempRatioStdErr[i] / (climate.RegionTemp[i] / climate.GlobalTemp))
		pRatio := sq(climate.PrecipRatioStdErr[i] / (climate.RegionPrecip[i] / climate.GlobalPrecip))

		artpRel := math.Sqrt(regERF + gloERF + tRatio + cScal)
		slowRel := math.Sqrt(regERF + gloERF + pRatio + cScal + kRel)
		fastRel := math.Sqrt(regERFa + gloERFa + pRatio)

		artpStd[i] = math.Abs(artp[i]) * artpRel
		slow := math.Abs(slowARPP[i]) * slowRel
		fast := math.Abs(fastARPP[i]) * fastRel
		arppStd[i] = math.Sqrt(slow*slow + fast*fast)
	}
	return artpStd, arppStd, nil
}
