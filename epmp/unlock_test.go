// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package epmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundaym/opentitan/csr"
)

const testStatusAddr = 0x30000000

func TestUnlockTestStatus(t *testing.T) {
	c := csr.NewFile()
	s := &State{
		MSecCfg: 1<<MSECCFG_RLB | 1<<MSECCFG_MMWP,
	}

	require.NoError(t, Apply(c, s))
	require.NoError(t, UnlockTestStatus(c, s, testStatusAddr))

	// shadow state carries the locked NA4 window on the reserved entry
	r, perm, err := s.Decode(TestStatusEntry)

	require.NoError(t, err)
	assert.Equal(t, Region{Start: testStatusAddr, End: testStatusAddr + 4}, r)
	assert.Equal(t, PermLockedMachineReadWriteUserReadWrite, perm)

	// hardware agrees with it word for word
	require.NoError(t, Verify(c, s))

	addr, err := c.Read(csr.PMPADDR0 + csr.Reg(TestStatusEntry))

	require.NoError(t, err)
	assert.Equal(t, uint32(testStatusAddr>>2), addr)
}

func TestUnlockTestStatusWithoutShadow(t *testing.T) {
	c := csr.NewFile()

	require.NoError(t, UnlockTestStatus(c, nil, testStatusAddr))

	s, err := Read(c)

	require.NoError(t, err)

	r, perm, err := s.Decode(TestStatusEntry)

	require.NoError(t, err)
	assert.Equal(t, Region{Start: testStatusAddr, End: testStatusAddr + 4}, r)
	assert.Equal(t, PermLockedMachineReadWriteUserReadWrite, perm)
}

func TestUnlockTestStatusBadAddress(t *testing.T) {
	c := csr.NewFile()
	s := &State{}
	before := *s

	err := UnlockTestStatus(c, s, testStatusAddr+2)

	assert.ErrorIs(t, err, ErrBadArg)
	assert.Equal(t, before, *s)
}

func TestUnlockTestStatusDetectsTampering(t *testing.T) {
	c := csr.NewFile()
	s := &State{
		MSecCfg: 1<<MSECCFG_RLB | 1<<MSECCFG_MMWP,
	}

	require.NoError(t, Apply(c, s))

	// out-of-band change to an unrelated entry surfaces in the inline check
	require.NoError(t, c.Write(csr.PMPADDR0, 0xbad))

	assert.ErrorIs(t, UnlockTestStatus(c, s, testStatusAddr), ErrMismatch)
}
