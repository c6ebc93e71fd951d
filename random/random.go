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

// Package random supplies the pseudo-randomness used to fill unspecified
// register content on reset. Two flavours are offered: a Rewindable value,
// which is a pure function of the emulation's current position and so
// produces identical results if the emulation is rewound and replayed; and
// a NoRewind value, drawn from a fixed-seed stream that advances on every
// call and is independent of the emulation's position, for callers that
// don't care about rewind determinism.
package random

import (
	"math/rand"
)

// Source reports how far into the execution stream the emulation currently
// is. The CPU's instruction counter satisfies this.
type Source interface {
	InstructionCount() uint64
}

// Random is a position-seeded source of pseudo-random values.
type Random struct {
	src Source

	// ZeroSeed forces the rewindable stream to behave as though the
	// instruction counter were always zero. Used by regression tests that
	// need the same "random" sequence on every run.
	ZeroSeed bool

	noRewind *rand.Rand
}

// NewRandom creates a Random tied to src.
func NewRandom(src Source) *Random {
	return &Random{
		src:      src,
		noRewind: rand.New(rand.NewSource(1)),
	}
}

// Rewindable returns a value in [0,n) that depends only on the current
// instruction count (or zero, if ZeroSeed is set) and n itself. Replaying
// the same instruction count always produces the same value.
func (r *Random) Rewindable(n int) int {
	if n <= 0 {
		return 0
	}

	var seed uint64
	if !r.ZeroSeed && r.src != nil {
		seed = r.src.InstructionCount()
	}

	rnd := rand.New(rand.NewSource(int64(seed) + 1))
	return rnd.Intn(n)
}

// NoRewind returns a value in [0,n) drawn from a source that is not tied to
// the instruction count, and so is not reproducible across a rewind.
func (r *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	return r.noRewind.Intn(n)
}
