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

// Package armtelemetry runs the periodic instrumentation for a running CPU:
// a live Go runtime-metrics dashboard (via statsview) alongside a periodic
// instructions/sec line in the shared logger, driven from an instruction
// counter sampled at a configurable rate (1Hz by default). It is started by
// the embedder, not by start_cpu.
package armtelemetry

import (
	"time"

	"github.com/go-echarts/statsview"

	"github.com/jetsetilly/armvm/logger"
)

// Source is satisfied by arm.CPU. Kept as a narrow interface here so this
// package doesn't need to import hardware/arm, and so a test can supply a
// fake counter.
type Source interface {
	InstructionCount() uint64
}

// Telemetry samples a Source hz times a second and logs the instruction
// rate to the shared logger. The statsview dashboard it runs alongside
// shows Go runtime metrics only; the instruction counter is not fed to it.
type Telemetry struct {
	src Source
	hz  int

	mgr   *statsview.Manager
	stop  chan struct{}
	done  chan struct{}
}

// New creates a Telemetry sampling src at hz samples/sec. hz <= 0 is
// treated as 1.
func New(src Source, hz int) *Telemetry {
	if hz <= 0 {
		hz = 1
	}
	return &Telemetry{
		src:  src,
		hz:   hz,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the statsview dashboard on addr (e.g. ":18066") and begins
// the sampling loop. Safe to call at most once.
func (tm *Telemetry) Start(addr string) {
	tm.mgr = statsview.New(statsview.WithAddr(addr))
	go func() {
		if err := tm.mgr.Start(); err != nil {
			logger.Logf("armtelemetry", "dashboard stopped: %v", err)
		}
	}()

	go tm.sampleLoop()
}

func (tm *Telemetry) sampleLoop() {
	defer close(tm.done)

	interval := time.Second / time.Duration(tm.hz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-tm.stop:
			return
		case <-ticker.C:
			now := tm.src.InstructionCount()
			logger.Logf("armtelemetry", "instructions/sec: %d", (now-last)*uint64(tm.hz))
			last = now
		}
	}
}

// Stop ends the sampling loop and the dashboard, and blocks until both have
// stopped.
func (tm *Telemetry) Stop() {
	close(tm.stop)
	<-tm.done
	if tm.mgr != nil {
		tm.mgr.Stop()
	}
}
