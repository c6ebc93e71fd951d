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

package arm

import "strings"

// ISA is the architecture level a CPU type implements.
type ISA int

const (
	ISAv4 ISA = iota
	ISAv5
	ISAv5e
	ISAv6
)

func (i ISA) String() string {
	switch i {
	case ISAv4:
		return "v4"
	case ISAv5:
		return "v5"
	case ISAv5e:
		return "v5e"
	case ISAv6:
		return "v6"
	}
	return "?"
}

// Family is the core family a CPU type belongs to.
type Family int

const (
	FamilyARM7 Family = iota
	FamilyARM9
	FamilyARM9e
)

func (f Family) String() string {
	switch f {
	case FamilyARM7:
		return "ARM7"
	case FamilyARM9:
		return "ARM9"
	case FamilyARM9e:
		return "ARM9e"
	}
	return "?"
}

// Identity is the static description of a named CPU type: its
// architecture level, its core family, and the two capability flags that
// gate CP15 and MMU installation.
type Identity struct {
	Name    string
	ISA     ISA
	Family  Family
	HasCP15 bool
	HasMMU  bool
}

// defaultIdentity is used when initialize_cpu is given an empty or
// unrecognised type name: an ARMv4/ARM7 core without CP15 or an MMU.
var defaultIdentity = Identity{
	Name:    "armv4",
	ISA:     ISAv4,
	Family:  FamilyARM7,
	HasCP15: false,
	HasMMU:  false,
}

// cpuTypes is the static table mapping a CPU type name to its identity,
// preserved bit-exact from the source header this core is modelled on.
// Lookups are case-insensitive.
var cpuTypes = map[string]Identity{
	"armv4": defaultIdentity,
	"arm7": {
		Name: "arm7", ISA: ISAv4, Family: FamilyARM7,
		HasCP15: false, HasMMU: false,
	},
	"arm7tdmi": {
		Name: "arm7tdmi", ISA: ISAv4, Family: FamilyARM7,
		HasCP15: false, HasMMU: false,
	},
	"armv5": {
		Name: "armv5", ISA: ISAv5, Family: FamilyARM9,
		HasCP15: true, HasMMU: true,
	},
	"arm9tdmi": {
		Name: "arm9tdmi", ISA: ISAv5, Family: FamilyARM9,
		HasCP15: true, HasMMU: true,
	},
	"arm9": {
		Name: "arm9", ISA: ISAv5, Family: FamilyARM9,
		HasCP15: true, HasMMU: true,
	},
	"armv5e": {
		Name: "armv5e", ISA: ISAv5e, Family: FamilyARM9e,
		HasCP15: true, HasMMU: true,
	},
	"arm9e": {
		Name: "arm9e", ISA: ISAv5e, Family: FamilyARM9e,
		HasCP15: true, HasMMU: true,
	},
	"arm926ejs": {
		Name: "arm926ejs", ISA: ISAv5e, Family: FamilyARM9e,
		HasCP15: true, HasMMU: true,
	},
	"arm926": {
		Name: "arm926", ISA: ISAv5e, Family: FamilyARM9e,
		HasCP15: true, HasMMU: true,
	},
	"armv6": {
		Name: "armv6", ISA: ISAv6, Family: FamilyARM9e,
		HasCP15: true, HasMMU: true,
	},
}

// lookupIdentity resolves a case-insensitive type name to an Identity. The
// second return value is false for an unrecognised (or empty) name, in
// which case the defaultIdentity should be used -- an unknown type is a
// non-fatal initialization error (§7, class 3), never a panic.
func lookupIdentity(name string) (Identity, bool) {
	if name == "" {
		return defaultIdentity, false
	}
	id, ok := cpuTypes[strings.ToLower(name)]
	return id, ok
}
