// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package epmp implements the configuration engine for the enhanced physical
// memory protection (ePMP) unit of the Ibex core: the per-entry address range
// encodings (OFF, TOR, NA4, NAPOT), their decoding inverse and the
// synchronization protocol between an in-memory shadow state and the live
// machine mode register file.
//
// The package assumes the machine security configuration set up by the boot
// ROM: rule locking bypass enabled (mseccfg.RLB=1), machine mode whitelist
// policy enabled (mseccfg.MMWP=1) and machine mode lockdown disabled
// (mseccfg.MML=0). Verify asserts these assumptions against hardware.
package epmp

import (
	"errors"
	"fmt"

	"github.com/usbarmory/tamago/bits"
)

const (
	// NumRegions is the number of PMP entries implemented in hardware.
	NumRegions = 16

	// Granularity is the PMP granularity (G) of the target silicon. With
	// G = 0 the minimum matching unit is 4 bytes and NA4 is available.
	Granularity = 0
)

// Machine Security Configuration (mseccfg) bits
const (
	MSECCFG_MML  = 0 // Machine Mode Lockdown
	MSECCFG_MMWP = 1 // Machine Mode Whitelist Policy
	MSECCFG_RLB  = 2 // Rule Locking Bypass
)

// Operation outcome kinds. Configuration errors indicate misuse by the
// calling firmware, ErrMismatch indicates that live hardware disagrees with
// the shadow state and must be treated as a potential fault injection attack.
var (
	ErrBadArg    = errors.New("invalid argument")
	ErrBadRegion = errors.New("invalid region")
	ErrConflict  = errors.New("conflict with pre-existing entry")
	ErrMismatch  = errors.New("state mismatch")
)

// Region is a half-open physical address range [Start, End). A zero length
// region is the sentinel for disabled address matching.
type Region struct {
	Start uint32
	End   uint32
}

// pmpcfg entry byte permission bits
const (
	PERM_R = 0 // read
	PERM_W = 1 // write
	PERM_X = 2 // execute
	PERM_L = 7 // locked
)

// Perm selects the access permissions and lock state of an entry.
//
// Unlocked entries can be rewritten in machine mode at any time, locked
// entries only while rule locking bypass (mseccfg.RLB) is set. With machine
// mode lockdown disabled the write-without-read combinations are reserved by
// hardware and therefore have no named value.
type Perm uint8

const (
	// Unlocked, machine mode has full access, lower modes as named.
	PermUnlockedMachineAllUserNone        Perm = 0b00000000
	PermUnlockedMachineAllUserExecute     Perm = 0b00000100
	PermUnlockedMachineAllUserRead        Perm = 0b00000001
	PermUnlockedMachineAllUserReadExecute Perm = 0b00000101
	PermUnlockedMachineAllUserReadWrite   Perm = 0b00000011
	PermUnlockedMachineAllUserAll         Perm = 0b00000111

	// Locked, machine mode and lower modes share the named access mask.
	PermLockedMachineNoneUserNone               Perm = 0b10000000
	PermLockedMachineExecuteUserExecute         Perm = 0b10000100
	PermLockedMachineReadUserRead               Perm = 0b10000001
	PermLockedMachineReadExecuteUserReadExecute Perm = 0b10000101
	PermLockedMachineReadWriteUserReadWrite     Perm = 0b10000011
	PermLockedMachineAllUserAll                 Perm = 0b10000111
)

// PermFor returns the permission value carrying the argument lock state and
// access mask. Write permission without read permission is reserved by
// hardware and rejected.
func PermFor(l, r, w, x bool) (Perm, error) {
	if w && !r {
		return 0, fmt.Errorf("%w: write permission without read is reserved", ErrBadArg)
	}

	var p uint32

	if l {
		bits.Set(&p, PERM_L)
	}

	if r {
		bits.Set(&p, PERM_R)
	}

	if w {
		bits.Set(&p, PERM_W)
	}

	if x {
		bits.Set(&p, PERM_X)
	}

	return Perm(p), nil
}

// Locked reports whether the permission locks its entry against modification
// in normal operation.
func (p Perm) Locked() bool {
	cfg := uint32(p)
	return bits.Get(&cfg, PERM_L, 1) != 0
}

// String renders the permission in LRWX flag form (e.g. `L:R-X`).
func (p Perm) String() string {
	cfg := uint32(p)
	b := []byte("-:---")

	if bits.Get(&cfg, PERM_L, 1) != 0 {
		b[0] = 'L'
	}

	if bits.Get(&cfg, PERM_R, 1) != 0 {
		b[2] = 'R'
	}

	if bits.Get(&cfg, PERM_W, 1) != 0 {
		b[3] = 'W'
	}

	if bits.Get(&cfg, PERM_X, 1) != 0 {
		b[4] = 'X'
	}

	return string(b)
}

// State is an in-memory mirror of the ePMP register file: one configuration
// byte and one encoded address per entry, plus the machine security
// configuration (mseccfg) register.
//
// State is a plain value with no identity beyond its contents. Configuration
// operations either update it in place or, on error, leave it untouched. The
// zero value encodes a fully disabled unit.
type State struct {
	Cfg     [NumRegions]uint8
	Addr    [NumRegions]uint32
	MSecCfg uint32
}
