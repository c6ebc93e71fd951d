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

// Mode is the five-bit CPSR mode field.
type Mode uint32

// The seven architectural modes and their bit-exact encodings.
const (
	ModeUser Mode = 0b10000
	ModeFIQ  Mode = 0b10001
	ModeIRQ  Mode = 0b10010
	ModeSVC  Mode = 0b10011
	ModeAbt  Mode = 0b10111
	ModeUnd  Mode = 0b11011
	ModeSys  Mode = 0b11111
)

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "usr"
	case ModeFIQ:
		return "fiq"
	case ModeIRQ:
		return "irq"
	case ModeSVC:
		return "svc"
	case ModeAbt:
		return "abt"
	case ModeUnd:
		return "und"
	case ModeSys:
		return "sys"
	}
	return "???"
}

// bank indices. user and sys share a bank; every other mode is unique.
const (
	bankUserSys = iota
	bankFIQ
	bankIRQ
	bankSVC
	bankAbt
	bankUnd
	bankCount
)

// bankOf maps a mode to its bank index. The second return value is false
// for a reserved/unknown mode code, which maps to no bank at all.
func bankOf(m Mode) (int, bool) {
	switch m {
	case ModeUser, ModeSys:
		return bankUserSys, true
	case ModeFIQ:
		return bankFIQ, true
	case ModeIRQ:
		return bankIRQ, true
	case ModeSVC:
		return bankSVC, true
	case ModeAbt:
		return bankAbt, true
	case ModeUnd:
		return bankUnd, true
	}
	return 0, false
}

// CPSR bit positions.
const (
	cpsrBitN = 31
	cpsrBitZ = 30
	cpsrBitC = 29
	cpsrBitV = 28
	cpsrBitQ = 27
	cpsrBitI = 7
	cpsrBitF = 6
	cpsrBitT = 5
)

const (
	cpsrMaskN    uint32 = 1 << cpsrBitN
	cpsrMaskZ    uint32 = 1 << cpsrBitZ
	cpsrMaskC    uint32 = 1 << cpsrBitC
	cpsrMaskV    uint32 = 1 << cpsrBitV
	cpsrMaskI    uint32 = 1 << cpsrBitI
	cpsrMaskF    uint32 = 1 << cpsrBitF
	cpsrMaskT    uint32 = 1 << cpsrBitT
	cpsrMaskMode uint32 = 0x1f
)
