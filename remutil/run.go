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

package remutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialclimate/rem"
	"github.com/spatialclimate/rem/input"
)

// metrics holds the intermediate results shared by the commands: the
// radiative efficiencies and regional response ratios derived from one
// perturbation experiment.
type metrics struct {
	species      *rem.Species
	engine       *rem.PotentialEngine
	provider     *input.Provider
	radEff       *rem.RadiativeEfficiency
	regions      []string
	precipRatios []float64
	emissMass    float64
}

// prepare runs the shared part of the pipeline: load the experiment pair,
// reduce it to regional responses, and convert forcing to radiative
// efficiencies.
func prepare(cfg *viper.Viper) (*metrics, error) {
	sp, err := rem.SpeciesByName(cfg.GetString("pollutant"))
	if err != nil {
		return nil, err
	}
	emissionRegion := cfg.GetString("emissionRegion")

	provider := input.NewProvider(cfg.GetString("DataPath"), logger())
	deltas, err := provider.ClimateDeltas(sp, emissionRegion)
	if err != nil {
		return nil, err
	}
	masks, err := provider.ResponseRegionMasks()
	if err != nil {
		return nil, err
	}
	cv, err := rem.ClimateVariables(deltas.Temp, deltas.Precip, provider.GridAreas(), masks)
	if err != nil {
		return nil, err
	}
	tempRatios, err := cv.TempRatios()
	if err != nil {
		return nil, err
	}
	precipRatios, err := cv.PrecipRatios()
	if err != nil {
		return nil, err
	}
	erf, erfa, err := provider.MeanForcing(sp, emissionRegion)
	if err != nil {
		return nil, err
	}
	radEff, err := rem.ComputeRadiativeEfficiency(sp, erf, erfa, deltas.EmissionMassTgYr(), tempRatios)
	if err != nil {
		return nil, err
	}

	engine := rem.NewPotentialEngine()
	engine.DisableClimateScaling = cfg.GetBool("noClimateScaling")
	engine.DisableForcingScaling = cfg.GetBool("noForcingScaling")

	return &metrics{
		species:      sp,
		engine:       engine,
		provider:     provider,
		radEff:       radEff,
		regions:      cv.Regions,
		precipRatios: precipRatios,
		emissMass:    deltas.EmissionMassTgYr(),
	}, nil
}

// Potentials computes pulse and integrated ARTPs and ARPPs with propagated
// uncertainties for every response region and writes them as a table.
func Potentials(cfg *viper.Viper, w io.Writer) error {
	m, err := prepare(cfg)
	if err != nil {
		return err
	}
	th := cfg.GetFloat64("timeHorizon")
	if th > 500 {
		return fmt.Errorf("rem: time horizon %g yr is beyond the 500 yr validity of the response model", th)
	}

	iartp, artp, err := m.engine.ATP(m.species, m.radEff.Regional, th)
	if err != nil {
		return err
	}
	app, err := m.engine.APP(m.species, m.radEff.Global, m.radEff.GlobalAtmos, th, m.regions, m.precipRatios)
	if err != nil {
		return err
	}

	regFS, err := m.provider.RegionalForcing(m.species, cfg.GetString("emissionRegion"))
	if err != nil {
		return err
	}
	gloFS, err := m.provider.GlobalForcing(m.species)
	if err != nil {
		return err
	}
	temp, precip, err := m.provider.ModelVariability()
	if err != nil {
		return err
	}
	cs, err := rem.ClimateStatsFromEnsemble(m.regions, temp, precip)
	if err != nil {
		return err
	}
	prop := &rem.Propagator{Ensemble: m.engine.Ensemble}
	artpStd, arppStd, err := prop.PotentialStd(m.species, regFS, gloFS, cs, artp, app.PulseSlow, app.PulseFast)
	if err != nil {
		return err
	}
	iartpStd, iarppStd, err := prop.PotentialStd(m.species, regFS, gloFS, cs, iartp, app.IntegratedSlow, app.IntegratedFast)
	if err != nil {
		return err
	}

	rows := make([][]string, len(m.regions))
	for i, region := range m.regions {
		rows[i] = []string{
			region,
			fmtNum(artp[i]), fmtNum(artpStd[i]),
			fmtNum(iartp[i]), fmtNum(iartpStd[i]),
			fmtNum(app.Pulse[i]), fmtNum(arppStd[i]),
			fmtNum(app.Integrated[i]), fmtNum(iarppStd[i]),
		}
	}
	header := []string{
		"Region",
		"ARTP", "ARTP std",
		"iARTP", "iARTP std",
		"ARPP", "ARPP std",
		"iARPP", "iARPP std",
	}
	return writeResults(cfg, w, header, rows)
}

// Scenario projects the temperature response in one response region to a
// segmented emission change and writes the yearly time series.
func Scenario(cfg *viper.Viper, w io.Writer) error {
	m, err := prepare(cfg)
	if err != nil {
		return err
	}
	segs, err := parseSegments(cfg)
	if err != nil {
		return err
	}
	dt := cfg.GetFloat64("scenario.timeStep")

	responseRegion := cfg.GetString("responseRegion")
	idx := -1
	for i, r := range m.regions {
		if r == responseRegion {
			idx = i
		}
	}
	if idx < 0 {
		return &rem.InvalidParameterError{
			Param: "responseRegion", Value: responseRegion,
			Reason: fmt.Sprintf("must be one of %v", m.regions),
		}
	}

	horizon := segs[len(segs)-1].End
	steps := int(math.Round(horizon / dt))
	pulse, err := m.engine.ATPSeries(m.species, m.radEff.Regional[idx], steps, dt)
	if err != nil {
		return err
	}
	sc := &rem.Scenario{
		Species:  m.species,
		Mass:     m.emissMass,
		Segments: segs,
		Pulse:    pulse,
	}
	resp, err := sc.Response(dt)
	if err != nil {
		return err
	}

	// Report once per year; the trajectory itself is finer.
	stride := int(math.Round(1 / dt))
	if stride < 1 {
		stride = 1
	}
	var rows [][]string
	for i := stride - 1; i < len(resp); i += stride {
		year := float64(i+1) * dt
		rows = append(rows, []string{fmtNum(year), fmtNum(resp[i])})
	}
	return writeResults(cfg, w, []string{"Year", "Temperature response (K)"}, rows)
}

// LifetimeRange evaluates the global temperature potential at the species
// lifetime plus and minus one standard deviation.
func LifetimeRange(cfg *viper.Viper, w io.Writer) error {
	m, err := prepare(cfg)
	if err != nil {
		return err
	}
	th := cfg.GetFloat64("timeHorizon")
	integrated, pulse, err := m.engine.ATPLifetimeRange(m.species, m.radEff.Global, th)
	if err != nil {
		return err
	}
	rows := [][]string{
		{"AGTP", fmtNum(pulse.Min), fmtNum(pulse.Avg), fmtNum(pulse.Max)},
		{"iAGTP", fmtNum(integrated.Min), fmtNum(integrated.Avg), fmtNum(integrated.Max)},
	}
	return writeResults(cfg, w, []string{"Metric", "tau-sigma", "tau", "tau+sigma"}, rows)
}

func parseSegments(cfg *viper.Viper) ([]rem.Segment, error) {
	shapes := cfg.GetStringSlice("scenario.shapes")
	ends, err := cast.ToIntSliceE(cfg.Get("scenario.ends"))
	if err != nil {
		return nil, fmt.Errorf("rem: parsing scenario.ends: %v", err)
	}
	mags := cfg.GetStringSlice("scenario.magnitudes")
	if len(shapes) != len(ends) || len(mags) != len(ends) {
		return nil, fmt.Errorf("rem: scenario.shapes, scenario.ends and scenario.magnitudes must have the same length (have %d, %d and %d)",
			len(shapes), len(ends), len(mags))
	}
	segs := make([]rem.Segment, len(shapes))
	for i := range segs {
		shape, err := rem.ParseShape(shapes[i])
		if err != nil {
			return nil, err
		}
		mag, err := cast.ToFloat64E(mags[i])
		if err != nil {
			return nil, fmt.Errorf("rem: parsing scenario magnitude %q: %v", mags[i], err)
		}
		segs[i] = rem.Segment{Shape: shape, End: float64(ends[i]), Magnitude: mag}
	}
	return segs, nil
}

func fmtNum(v float64) string { return fmt.Sprintf("%.6g", v) }

// writeResults writes rows to the configured CSV file, or as an aligned
// table on w if no output file is configured.
func writeResults(cfg *viper.Viper, w io.Writer, header []string, rows [][]string) error {
	if path := cfg.GetString("OutputFile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("rem: creating output file: %v", err)
		}
		cw := csv.NewWriter(f)
		if err := cw.Write(header); err != nil {
			f.Close()
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			f.Close()
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprint(tw, "\n")
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return tw.Flush()
}
