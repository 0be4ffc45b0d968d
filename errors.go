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

import "fmt"

// InvalidParameterError reports a parameter outside its accepted set or
// range: an unknown pollutant or region name, a time horizon below the
// minimum, or a malformed scenario description.
type InvalidParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("rem: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

func errInvalidParameter(param string, value interface{}, format string, args ...interface{}) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// ShapeMismatchError reports arrays whose dimensions do not line up, such as
// a pulse-response series whose length does not match the scenario time grid
// or grids of differing resolution.
type ShapeMismatchError struct {
	Name       string
	Have, Want []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("rem: %s has shape %v, want %v", e.Name, e.Have, e.Want)
}

func errShape(name string, have, want []int) error {
	return &ShapeMismatchError{Name: name, Have: have, Want: want}
}

// DomainError reports a mathematically undefined operation, such as a
// relative uncertainty with a zero-valued denominator, that would otherwise
// silently propagate NaN through every downstream result.
type DomainError struct {
	Op   string
	Term string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("rem: %s: %s is zero", e.Op, e.Term)
}

func errDomain(op, term string) error {
	return &DomainError{Op: op, Term: term}
}

// DataUnavailableError reports required input data that is entirely missing.
// Individual ensemble members lacking an experiment are absorbed as NaN at
// the statistics level; this error is returned only when no valid members
// remain.
type DataUnavailableError struct {
	What string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("rem: no valid data available for %s", e.What)
}
