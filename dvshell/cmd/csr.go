// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"

	"github.com/mundaym/opentitan/csr"
)

func init() {
	Add(Cmd{
		Name:    "csr",
		Args:    1,
		Pattern: regexp.MustCompile(`^csr ([[:xdigit:]]+)$`),
		Syntax:  "<hex number>",
		Help:    "read CSR      (use with caution)",
		Fn:      csrReadCmd,
	})

	Add(Cmd{
		Name:    "csr write",
		Args:    2,
		Pattern: regexp.MustCompile(`^csr ([[:xdigit:]]+) ([[:xdigit:]]+)$`),
		Syntax:  "<hex number> <hex value>",
		Help:    "write CSR     (use with caution)",
		Fn:      csrWriteCmd,
	})
}

func csrReadCmd(_ *term.Terminal, arg []string) (res string, err error) {
	reg, err := strconv.ParseUint(arg[0], 16, 12)

	if err != nil {
		return "", fmt.Errorf("invalid CSR number, %v", err)
	}

	val, err := Registers.Read(csr.Reg(reg))

	if err != nil {
		return
	}

	return fmt.Sprintf("CSR:%#.3x %.8x", reg, val), nil
}

func csrWriteCmd(_ *term.Terminal, arg []string) (res string, err error) {
	reg, err := strconv.ParseUint(arg[0], 16, 12)

	if err != nil {
		return "", fmt.Errorf("invalid CSR number, %v", err)
	}

	val, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid value, %v", err)
	}

	err = Registers.Write(csr.Reg(reg), uint32(val))

	return
}
