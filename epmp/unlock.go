// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package epmp

import (
	"fmt"

	"github.com/usbarmory/tamago/bits"

	"github.com/mundaym/opentitan/csr"
)

// TestStatusEntry is the PMP entry permanently reserved for the DV test
// status window. Whether the index survives future hardware revisions is for
// the calling firmware to decide, it must only ever be changed here.
const TestStatusEntry = 6

// UnlockTestStatus grants locked read/write access to the four byte test
// status window at addr, which verification tests use to report progress and
// results through an otherwise fully blocked address space.
//
// The shadow state, when supplied, is updated ahead of the register writes
// and checked against hardware once they land, demonstrating the intended
// compute-push-verify calling pattern on a single entry.
func UnlockTestStatus(c csr.Interface, state *State, addr uint32) error {
	if addr%4 != 0 {
		return fmt.Errorf("%w: address %#x is not word aligned", ErrBadArg, addr)
	}

	perm := PermLockedMachineReadWriteUserReadWrite
	region := Region{Start: addr, End: addr + 4}

	if state != nil {
		if err := state.ConfigureNA4(TestStatusEntry, region, perm); err != nil {
			return err
		}
	}

	if err := c.Write(csr.PMPADDR0+csr.Reg(TestStatusEntry), addr>>addrShift); err != nil {
		return err
	}

	reg, pos := cfgReg(TestStatusEntry)

	w, err := c.Read(reg)

	if err != nil {
		return err
	}

	bits.SetN(&w, pos, 0xff, uint32(packCfg(MODE_NA4, perm)))

	if err := c.Write(reg, w); err != nil {
		return err
	}

	if state != nil {
		return Verify(c, state)
	}

	return nil
}
