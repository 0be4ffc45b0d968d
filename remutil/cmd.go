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

// Package remutil wires the rem libraries into the command-line interface.
package remutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialclimate/rem"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to REM.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DataPath",
			usage: `
              DataPath is the directory holding the HadGEM3 and PDRMIP
              simulation output.`,
			defaultVal: "data",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the CSV file to write results to.
              If empty, results are printed as a table on standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Verbose",
			usage: `
              Verbose enables debug-level progress logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "pollutant",
			usage: `
              pollutant is the emitted species to compute metrics for:
              SO2, BC, CO2 or CH4.`,
			shorthand:  "p",
			defaultVal: "SO2",
			flagsets:   []*pflag.FlagSet{potentialsCmd.PersistentFlags(), scenarioCmd.Flags(), lifetimeCmd.Flags()},
		},
		{
			name: "emissionRegion",
			usage: `
              emissionRegion is the source region of the emission
              perturbation. NHML, US, China, EastAsia, India or Europe for
              SO2, CO2 and CH4; Global or Asia for BC.`,
			shorthand:  "r",
			defaultVal: "NHML",
			flagsets:   []*pflag.FlagSet{potentialsCmd.PersistentFlags(), scenarioCmd.Flags(), lifetimeCmd.Flags()},
		},
		{
			name: "timeHorizon",
			usage: `
              timeHorizon is the time horizon of the metrics in years,
              between 5 and 500.`,
			shorthand:  "t",
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{potentialsCmd.PersistentFlags(), lifetimeCmd.Flags()},
		},
		{
			name: "noClimateScaling",
			usage: `
              noClimateScaling disables the PDRMIP multi-model
              climate-sensitivity correction, for sensitivity studies.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{potentialsCmd.PersistentFlags(), scenarioCmd.Flags()},
		},
		{
			name: "noForcingScaling",
			usage: `
              noForcingScaling disables the PDRMIP multi-model forcing
              correction, for sensitivity studies.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{potentialsCmd.PersistentFlags(), scenarioCmd.Flags()},
		},
		{
			name: "responseRegion",
			usage: `
              responseRegion is the region whose temperature response the
              scenario is evaluated in.`,
			defaultVal: "Global",
			flagsets:   []*pflag.FlagSet{scenarioCmd.Flags()},
		},
		{
			name: "scenario.shapes",
			usage: `
              scenario.shapes are the shapes of the emission-change
              segments, in order: sustained, linear, quadratic or sin.`,
			defaultVal: []string{"sustained"},
			flagsets:   []*pflag.FlagSet{scenarioCmd.Flags()},
		},
		{
			name: "scenario.ends",
			usage: `
              scenario.ends are the end years of the emission-change
              segments. They must be strictly increasing; the last one is
              the scenario horizon.`,
			defaultVal: []int{100},
			flagsets:   []*pflag.FlagSet{scenarioCmd.Flags()},
		},
		{
			name: "scenario.magnitudes",
			usage: `
              scenario.magnitudes are the emission levels reached by the end
              of each segment, as percentages of the current emission rate:
              0 is a complete phase-out, 100 no change, 1000 a tenfold
              increase.`,
			defaultVal: []string{"0"},
			flagsets:   []*pflag.FlagSet{scenarioCmd.Flags()},
		},
		{
			name: "scenario.timeStep",
			usage: `
              scenario.timeStep is the emission-trajectory time step in
              years.`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{scenarioCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("REM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(potentialsCmd)
	Root.AddCommand(scenarioCmd)
	Root.AddCommand(lifetimeCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("rem: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// logger returns the logger commands should report progress to.
func logger() logrus.FieldLogger {
	log := logrus.New()
	if Cfg.GetBool("Verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "rem",
	Short: "Regional emission metrics for short- and long-lived pollutants.",
	Long: `REM computes absolute regional temperature and precipitation potentials
(ARTP, ARPP) for emissions of SO2, BC, CO2 and CH4, with uncertainty
estimates, and projects temperature responses under multi-stage emission
scenarios.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'REM_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of REM.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("REM v%s\n", rem.Version)
	},
	DisableAutoGenTag: true,
}

var potentialsCmd = &cobra.Command{
	Use:   "potentials",
	Short: "Compute regional temperature and precipitation potentials.",
	Long: `potentials computes pulse and time-integrated absolute regional
temperature and precipitation potentials (ARTP, ARPP) for a pulse emission
of the chosen pollutant from the chosen emission region, together with
propagated one-sigma uncertainties, in every response region.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Potentials(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Project the temperature response to an emission scenario.",
	Long: `scenario projects the temperature response in a response region to a
multi-stage emission change of the chosen pollutant, built from up to three
segments each with its own shape, end year and magnitude.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Scenario(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var lifetimeCmd = &cobra.Command{
	Use:   "lifetime",
	Short: "Quantify the lifetime sensitivity of temperature potentials.",
	Long: `lifetime evaluates the global temperature potential of the chosen
pollutant at its mean atmospheric lifetime and one standard deviation either
side of it, quantifying the sensitivity of the metric to the lifetime
estimate. Only pollutants with a published lifetime uncertainty (CH4) are
supported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return LifetimeRange(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}
