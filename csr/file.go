// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package csr

// File is an in-memory register file implementing Interface. It backs unit
// tests, where out-of-band writes stand in for fault injection, and the DV
// shell when it runs off silicon. Unwritten registers read as zero.
type File struct {
	regs map[Reg]uint32
}

// NewFile returns an all-zero register file.
func NewFile() *File {
	return &File{
		regs: make(map[Reg]uint32),
	}
}

func (f *File) Read(reg Reg) (uint32, error) {
	return f.regs[reg], nil
}

func (f *File) Write(reg Reg, val uint32) error {
	f.regs[reg] = val
	return nil
}
