// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package epmp

import (
	"github.com/usbarmory/tamago/bits"
)

// pmpcfg entry byte address matching modes (A field)
const (
	MODE_OFF   = 0b00
	MODE_TOR   = 0b01
	MODE_NA4   = 0b10
	MODE_NAPOT = 0b11
)

// pmpcfg entry byte A field position and mask
const (
	CFG_A      = 3
	CFG_A_MASK = 0b11
)

// packCfg assembles a pmpcfg configuration byte from an address matching mode
// and a permission. The byte layout is a silicon contract (R=0, W=1, X=2,
// A=4:3, L=7, bits 6:5 reserved) and must match the target bit for bit.
func packCfg(mode uint32, perm Perm) uint8 {
	cfg := uint32(perm)
	bits.SetN(&cfg, CFG_A, CFG_A_MASK, mode)

	return uint8(cfg)
}

// unpackCfg splits a pmpcfg configuration byte into its address matching mode
// and permission.
func unpackCfg(c uint8) (mode uint32, perm Perm) {
	cfg := uint32(c)

	mode = bits.Get(&cfg, CFG_A, CFG_A_MASK)
	bits.SetN(&cfg, CFG_A, CFG_A_MASK, 0)

	return mode, Perm(cfg)
}
