// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package csr models access to the machine mode control and status registers
// backing the ePMP: sixteen pmpaddr registers, four pmpcfg registers packing
// four configuration bytes each, and the machine security configuration
// register pair.
//
// On silicon these registers are reached through target specific csrr/csrw
// instructions, which is why access is abstracted behind Interface rather
// than bound here.
package csr

// Reg is a CSR number as assigned by the RISC-V privileged specification.
type Reg uint16

// ePMP register numbers
const (
	PMPCFG0  Reg = 0x3a0 // pmpcfg0 through pmpcfg3
	PMPADDR0 Reg = 0x3b0 // pmpaddr0 through pmpaddr15
	MSECCFG  Reg = 0x747
	MSECCFGH Reg = 0x757
)

// Interface is the register access collaborator. Reads and writes cover whole
// registers, are atomic and have no side effects beyond the target register.
type Interface interface {
	Read(reg Reg) (uint32, error)
	Write(reg Reg, val uint32) error
}
