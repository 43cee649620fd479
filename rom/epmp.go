// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package rom builds and installs the boot time ePMP schema.
package rom

import (
	"github.com/mundaym/opentitan/csr"
	"github.com/mundaym/opentitan/epmp"
	"github.com/mundaym/opentitan/mem"
)

// Schema computes the boot protection schema: ROM text locked read/execute,
// embedded flash locked read only, peripheral MMIO locked read/write, main
// SRAM read/write for machine mode. Everything else is denied through the
// machine mode whitelist policy. Entry 6 stays disabled, reserved for the DV
// test status unlock.
func Schema() (*epmp.State, error) {
	s := &epmp.State{
		MSecCfg: 1<<epmp.MSECCFG_RLB | 1<<epmp.MSECCFG_MMWP,
	}

	// ROM text
	if err := s.ConfigureNAPOT(0,
		epmp.Region{Start: mem.ROMStart, End: mem.ROMStart + mem.ROMSize},
		epmp.PermLockedMachineReadExecuteUserReadExecute); err != nil {
		return nil, err
	}

	// embedded flash, lower bound absorbed by the disabled entry 1
	if err := s.ConfigureTOR(2,
		epmp.Region{Start: mem.FlashStart, End: mem.FlashStart + mem.FlashSize},
		epmp.PermLockedMachineReadUserRead); err != nil {
		return nil, err
	}

	// peripheral MMIO, lower bound absorbed by the disabled entry 3
	if err := s.ConfigureTOR(4,
		epmp.Region{Start: mem.MMIOStart, End: mem.MMIOStart + mem.MMIOSize},
		epmp.PermLockedMachineReadWriteUserReadWrite); err != nil {
		return nil, err
	}

	// main SRAM, machine mode only
	if err := s.ConfigureNAPOT(15,
		epmp.Region{Start: mem.RAMStart, End: mem.RAMStart + mem.RAMSize},
		epmp.PermUnlockedMachineAllUserNone); err != nil {
		return nil, err
	}

	return s, nil
}

// Configure computes the boot schema, pushes it to the register file and
// verifies the read back. The returned state is the caller's single source of
// truth for later attestation against live hardware. A verification failure
// propagates as epmp.ErrMismatch and must abort the boot sequence.
func Configure(c csr.Interface) (*epmp.State, error) {
	s, err := Schema()

	if err != nil {
		return nil, err
	}

	if err = epmp.Apply(c, s); err != nil {
		return nil, err
	}

	if err = epmp.Verify(c, s); err != nil {
		return nil, err
	}

	return s, nil
}
