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

// Package armprefs is the disk-backed configuration leaf for the emulator
// core: the handful of options that change how initialize_cpu and
// start_cpu behave, on top of package prefs' flat key/value store.
package armprefs

import (
	"github.com/jetsetilly/armvm/prefs"
)

// Prefs holds every preference the front controller consults before and
// during a run.
type Prefs struct {
	disk *prefs.Disk

	// ResetRandomizesState, when true, has reset_cpu randomize general
	// registers instead of zeroing them -- useful for shaking out code
	// that wrongly assumes a clean reset.
	ResetRandomizesState prefs.Bool

	// HighVectors selects the 0xFFFF0000 exception vector base.
	HighVectors prefs.Bool

	// BankFIQRegisters turns on FIQ's private r8..r12 (off by default, to
	// match the core this package is modelled on; see DESIGN.md).
	BankFIQRegisters prefs.Bool

	// TelemetryHz is the sampling rate passed to armtelemetry.New (default
	// 1). armtelemetry treats zero or negative as 1.
	TelemetryHz prefs.Int
}

// Load creates a Prefs backed by path, reading whatever values already
// exist there. A non-existent file is not an error: every field keeps its
// default, which is false for the three flags and 1 for TelemetryHz.
func Load(path string) (*Prefs, error) {
	disk, err := prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	p := &Prefs{disk: disk}
	p.TelemetryHz.Set(1)

	if err := disk.Add("arm.reset.randomize", &p.ResetRandomizesState); err != nil {
		return nil, err
	}
	if err := disk.Add("arm.vectors.high", &p.HighVectors); err != nil {
		return nil, err
	}
	if err := disk.Add("arm.fiq.bank_registers", &p.BankFIQRegisters); err != nil {
		return nil, err
	}
	if err := disk.Add("arm.telemetry.hz", &p.TelemetryHz); err != nil {
		return nil, err
	}

	if err := disk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// Save persists the current values of every preference to disk.
func (p *Prefs) Save() error {
	return p.disk.Save()
}
