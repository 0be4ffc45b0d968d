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
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lnashier/viper"

	"github.com/spatialclimate/rem"
)

func TestParseSegments(t *testing.T) {
	cfg := viper.New()
	cfg.Set("scenario.shapes", []string{"sustained", "linear"})
	cfg.Set("scenario.ends", []int{50, 100})
	cfg.Set("scenario.magnitudes", []string{"0", "75.5"})

	segs, err := parseSegments(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []rem.Segment{
		{Shape: rem.Sustained, End: 50, Magnitude: 0},
		{Shape: rem.Linear, End: 100, Magnitude: 75.5},
	}
	if len(segs) != len(want) {
		t.Fatalf("want %d segments, have %d", len(want), len(segs))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: want %+v, have %+v", i, want[i], segs[i])
		}
	}
}

func TestParseSegmentsErrors(t *testing.T) {
	cfg := viper.New()
	cfg.Set("scenario.shapes", []string{"sustained", "linear"})
	cfg.Set("scenario.ends", []int{50})
	cfg.Set("scenario.magnitudes", []string{"0"})
	if _, err := parseSegments(cfg); err == nil {
		t.Error("expected error for mismatched lengths")
	}

	cfg = viper.New()
	cfg.Set("scenario.shapes", []string{"staircase"})
	cfg.Set("scenario.ends", []int{50})
	cfg.Set("scenario.magnitudes", []string{"0"})
	if _, err := parseSegments(cfg); err == nil {
		t.Error("expected error for unknown shape")
	}

	cfg = viper.New()
	cfg.Set("scenario.shapes", []string{"sustained"})
	cfg.Set("scenario.ends", []int{50})
	cfg.Set("scenario.magnitudes", []string{"lots"})
	if _, err := parseSegments(cfg); err == nil {
		t.Error("expected error for unparseable magnitude")
	}
}

func TestWriteResultsTable(t *testing.T) {
	cfg := viper.New()
	var buf bytes.Buffer
	err := writeResults(cfg, &buf,
		[]string{"Region", "ARTP"},
		[][]string{{"Global", "1.5"}, {"Europe", "-2"}})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Region", "Global", "1.5", "Europe", "-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := viper.New()
	cfg.Set("OutputFile", path)

	var buf bytes.Buffer
	err := writeResults(cfg, &buf,
		[]string{"Year", "Response"},
		[][]string{{"1", "0.5"}, {"2", "0.75"}})
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected writer output when writing CSV: %q", buf.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("want 3 records, have %d", len(records))
	}
	if records[0][0] != "Year" || records[2][1] != "0.75" {
		t.Errorf("unexpected records %v", records)
	}
}
