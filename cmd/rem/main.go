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

// Command rem is a command-line interface for computing regional emission
// metrics.
package main

import (
	"fmt"
	"os"

	"github.com/spatialclimate/rem/remutil"
)

func main() {
	if err := remutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
