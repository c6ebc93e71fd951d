// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package armdump renders the structural counterpart of dump_cpu: a
// Graphviz graph of CPU state, for when the text rendering in
// hardware/arm isn't enough. It shows what arm.StateSnapshot holds: the
// live registers, CPSR/SPSR, flags, pending exceptions and the active
// coprocessor; the banked copies of r13/r14/SPSR are not included.
package armdump

import (
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/armvm/hardware/arm"
)

// Graph writes a Graphviz dot representation of a CPU's state, as captured
// by arm.CPU.Snapshot, to w. memviz walks exported fields only, which is
// exactly what StateSnapshot is for.
func Graph(w io.Writer, snap arm.StateSnapshot) {
	memviz.Map(w, &snap)
}
