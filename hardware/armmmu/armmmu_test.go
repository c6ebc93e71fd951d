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

package armmmu_test

import (
	"testing"

	"github.com/jetsetilly/armvm/hardware/armmmu"
	"github.com/jetsetilly/armvm/test"
)

type stubSignaler struct {
	dataAborts     []uint32
	prefetchAborts []uint32
}

func (s *stubSignaler) SignalDataAbort(addr uint32)     { s.dataAborts = append(s.dataAborts, addr) }
func (s *stubSignaler) SignalPrefetchAbort(addr uint32) { s.prefetchAborts = append(s.prefetchAborts, addr) }

func TestTranslateIdentityMappedWhenDisabled(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(false)

	addr, ok := m.Translate(0x1000, armmmu.AccessRead)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x1000))
	test.ExpectEquality(t, len(sig.dataAborts), 0)
}

func TestTranslateUnmappedPageRaisesAbort(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(true)

	_, ok := m.Translate(0x2000, armmmu.AccessRead)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, sig.dataAborts, []uint32{0x2000})
}

func TestTranslateMappedPageSucceeds(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(true)
	m.MapPage(0x3000, true, false, false)

	addr, ok := m.Translate(0x3004, armmmu.AccessRead)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x3004))
}

func TestTranslatePermissionMismatchRaisesAbort(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(true)
	m.MapPage(0x4000, true, false, false)

	_, ok := m.Translate(0x4000, armmmu.AccessWrite)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, sig.dataAborts, []uint32{0x4000})
}

func TestTranslateExecuteFailureRaisesPrefetchAbort(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(true)

	_, ok := m.Translate(0x5000, armmmu.AccessExecute)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, sig.prefetchAborts, []uint32{0x5000})
	test.ExpectEquality(t, len(sig.dataAborts), 0)
}

func TestMapPageGranularityIsWholePage(t *testing.T) {
	sig := &stubSignaler{}
	m := armmmu.New(sig)
	m.Init(true)
	m.MapPage(0x6000, true, true, true)

	// any address inside the same 4K page is covered by one MapPage call.
	addr, ok := m.Translate(0x6FFF, armmmu.AccessWrite)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x6FFF))
}
