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
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// ncFile wraps an open NetCDF file.
type ncFile struct {
	f    *cdf.File
	ff   *os.File
	path string
}

func (p *Provider) openNC(relPath string) (*ncFile, error) {
	path := filepath.Join(p.DataPath, relPath)
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: opening %s: %v", path, err)
	}
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("input: reading %s: %v", path, err)
	}
	return &ncFile{f: f, ff: ff, path: path}, nil
}

func (nc *ncFile) Close() error { return nc.ff.Close() }

// readVar reads the full contents of a variable as float64s.
func (nc *ncFile) readVar(v string) ([]float64, error) {
	r := nc.f.Reader(v, nil, nil)
	if r == nil {
		return nil, fmt.Errorf("input: %s has no variable %s", nc.path, v)
	}
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("input: reading %s from %s: %v", v, nc.path, err)
	}
	switch d := buf.(type) {
	case []float64:
		return d, nil
	case []float32:
		out := make([]float64, len(d))
		for i, x := range d {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(d))
		for i, x := range d {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("input: %s in %s has unsupported type %T", v, nc.path, buf)
	}
}

// readGrid reads a variable and returns it as a 2-d array, dropping any
// leading dimensions of length 1 (time and level axes of monthly-mean files).
func (nc *ncFile) readGrid(v string) (*sparse.DenseArray, error) {
	data, err := nc.readVar(v)
	if err != nil {
		return nil, err
	}
	dims := squeeze(nc.f.Header.Lengths(v))
	if len(dims) != 2 {
		return nil, fmt.Errorf("input: %s in %s is not a 2-d grid (dimensions %v)",
			v, nc.path, nc.f.Header.Lengths(v))
	}
	a := sparse.ZerosDense(dims...)
	copy(a.Elements, data)
	return a, nil
}

func squeeze(dims []int) []int {
	out := append([]int(nil), dims...)
	for len(out) > 2 && out[0] == 1 {
		out = out[1:]
	}
	return out
}

// units returns the units attribute of a variable, or "" if it has none.
func (nc *ncFile) units(v string) string {
	switch u := nc.f.Header.GetAttribute(v, "units").(type) {
	case string:
		return u
	case []byte:
		return string(u)
	}
	return ""
}

// readSeries reads several time-series variables from one file.
func (p *Provider) readSeries(relPath string, vars ...string) (map[string][]float64, error) {
	nc, err := p.openNC(relPath)
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	out := make(map[string][]float64, len(vars))
	for _, v := range vars {
		if out[v], err = nc.readVar(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
