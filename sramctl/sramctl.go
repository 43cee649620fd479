// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sramctl drives the scrambling interface of an SRAM controller
// instance, used by the boot ROM to wipe the retention SRAM.
package sramctl

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/usbarmory/tamago/bits"
)

// SRAM controller registers
const (
	CTRL_REGWEN    = 0x10
	CTRL_REGWEN_EN = 0

	CTRL               = 0x14
	CTRL_RENEW_SCR_KEY = 0
	CTRL_INIT          = 1
)

// ErrLocked is returned when control register writes have been disabled for
// the remainder of the power cycle.
var ErrLocked = errors.New("sramctl: control register locked")

// SRAMCtrl represents an SRAM controller instance.
type SRAMCtrl struct {
	// Base is the controller register base address.
	Base uintptr
}

func (hw *SRAMCtrl) read(off uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(hw.Base + off)))
}

func (hw *SRAMCtrl) write(off uintptr, val uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(hw.Base + off)), val)
}

// Scramble requests a new scrambling key and re-initialization to random
// values, wiping the SRAM contents. Accesses to the SRAM stall until the
// operation completes.
func (hw *SRAMCtrl) Scramble() error {
	regwen := hw.read(CTRL_REGWEN)

	if bits.Get(&regwen, CTRL_REGWEN_EN, 1) == 0 {
		return ErrLocked
	}

	var ctrl uint32

	bits.Set(&ctrl, CTRL_RENEW_SCR_KEY)
	bits.Set(&ctrl, CTRL_INIT)

	hw.write(CTRL, ctrl)

	return nil
}
