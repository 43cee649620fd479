// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mem defines the Earl Grey physical address map regions covered by
// the boot time ePMP schema. All addresses are physical byte addresses, the
// chip performs no address translation.
package mem

const (
	// Boot ROM
	ROMStart = 0x00008000
	ROMSize  = 0x00008000 // 32kB

	// Embedded flash
	FlashStart = 0x20000000
	FlashSize  = 0x00100000 // 1MB

	// Main SRAM
	RAMStart = 0x10000000
	RAMSize  = 0x00020000 // 128kB

	// Peripheral MMIO window
	MMIOStart = 0x40000000
	MMIOSize  = 0x10000000 // 256MB

	// Retention SRAM controller
	SRAMCtrlRetBase = 0x40500000

	// DV test status window
	TestStatusStart = 0x30000000
	TestStatusSize  = 0x00000004
)
