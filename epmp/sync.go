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

// Machine security configuration policy bits pinned by Verify independently
// of the expected state: rule locking bypass stays enabled and machine mode
// lockdown disabled so locked entries remain rewritable to boot stages, while
// the whitelist policy denies machine mode anything not explicitly granted.
const (
	mseccfgSet   = 1<<MSECCFG_RLB | 1<<MSECCFG_MMWP
	mseccfgClear = 1 << MSECCFG_MML
)

// cfgReg returns the pmpcfg register holding the configuration byte for entry
// and the bit offset of that byte within it, entries being packed four per
// register.
func cfgReg(entry int) (reg csr.Reg, pos int) {
	return csr.PMPCFG0 + csr.Reg(entry/4), (entry % 4) * 8
}

// cfgWord assembles the pmpcfg register value covering entries 4i through
// 4i+3.
func (s *State) cfgWord(i int) (w uint32) {
	for j := 0; j < 4; j++ {
		bits.SetN(&w, j*8, 0xff, uint32(s.Cfg[4*i+j]))
	}

	return
}

// Apply writes the state to the register file. Address registers land first
// so that no rule is ever live with a stale bound, configuration registers
// follow, mseccfg last. No read back is performed (see Verify).
func Apply(c csr.Interface, s *State) error {
	for i := 0; i < NumRegions; i++ {
		if err := c.Write(csr.PMPADDR0+csr.Reg(i), s.Addr[i]); err != nil {
			return err
		}
	}

	for i := 0; i < NumRegions/4; i++ {
		if err := c.Write(csr.PMPCFG0+csr.Reg(i), s.cfgWord(i)); err != nil {
			return err
		}
	}

	return c.Write(csr.MSECCFG, s.MSecCfg)
}

// Read captures the live ePMP configuration in a freshly constructed state
// without mutating hardware.
func Read(c csr.Interface) (*State, error) {
	s := &State{}

	for i := 0; i < NumRegions; i++ {
		addr, err := c.Read(csr.PMPADDR0 + csr.Reg(i))

		if err != nil {
			return nil, err
		}

		s.Addr[i] = addr
	}

	for i := 0; i < NumRegions/4; i++ {
		w, err := c.Read(csr.PMPCFG0 + csr.Reg(i))

		if err != nil {
			return nil, err
		}

		for j := 0; j < 4; j++ {
			s.Cfg[4*i+j] = uint8(bits.Get(&w, j*8, 0xff))
		}
	}

	m, err := c.Read(csr.MSECCFG)

	if err != nil {
		return nil, err
	}

	s.MSecCfg = m

	return s, nil
}

// Verify compares the live register file word for word against the expected
// state and asserts the pinned mseccfg policy bits (RLB=1, MML=0, MMWP=1)
// along with an all-zero mseccfgh. Any difference yields ErrMismatch: the
// caller must treat it as evidence of fault injection or a hardware fault,
// not as a configuration bug.
func Verify(c csr.Interface, expected *State) error {
	for i := 0; i < NumRegions; i++ {
		addr, err := c.Read(csr.PMPADDR0 + csr.Reg(i))

		if err != nil {
			return err
		}

		if addr != expected.Addr[i] {
			return fmt.Errorf("%w: pmpaddr%d is %#x expected %#x", ErrMismatch, i, addr, expected.Addr[i])
		}
	}

	for i := 0; i < NumRegions/4; i++ {
		w, err := c.Read(csr.PMPCFG0 + csr.Reg(i))

		if err != nil {
			return err
		}

		if w != expected.cfgWord(i) {
			return fmt.Errorf("%w: pmpcfg%d is %#x expected %#x", ErrMismatch, i, w, expected.cfgWord(i))
		}
	}

	m, err := c.Read(csr.MSECCFG)

	if err != nil {
		return err
	}

	if m != expected.MSecCfg {
		return fmt.Errorf("%w: mseccfg is %#x expected %#x", ErrMismatch, m, expected.MSecCfg)
	}

	if m&mseccfgSet != mseccfgSet || m&mseccfgClear != 0 {
		return fmt.Errorf("%w: mseccfg %#x violates required policy", ErrMismatch, m)
	}

	mh, err := c.Read(csr.MSECCFGH)

	if err != nil {
		return err
	}

	if mh != 0 {
		return fmt.Errorf("%w: mseccfgh is %#x expected 0", ErrMismatch, mh)
	}

	return nil
}
