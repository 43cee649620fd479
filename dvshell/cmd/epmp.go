// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/mundaym/opentitan/epmp"
	"github.com/mundaym/opentitan/mem"
)

var modes = []string{"off", "tor", "na4", "napot"}

func init() {
	Add(Cmd{
		Name: "epmp",
		Help: "decode all ePMP entries",
		Fn:   epmpStatusCmd,
	})

	Add(Cmd{
		Name:    "epmp ",
		Args:    1,
		Pattern: regexp.MustCompile(`^epmp (\d+)$`),
		Syntax:  "<index>",
		Help:    "decode single ePMP entry",
		Fn:      epmpReadCmd,
	})

	Add(Cmd{
		Name:    "epmp cfg",
		Args:    8,
		Pattern: regexp.MustCompile(`^epmp (off|tor|na4|napot) (\d+) ([[:xdigit:]]+) ([[:xdigit:]]+) (\S+) (\S+) (\S+) (\S+)$`),
		Syntax:  "<mode> <index> <hex start> <hex end> <r> <w> <x> <l>",
		Help:    "configure ePMP entry, apply and verify",
		Fn:      epmpConfigureCmd,
	})

	Add(Cmd{
		Name: "verify",
		Help: "compare live ePMP state against shadow state",
		Fn:   verifyCmd,
	})

	Add(Cmd{
		Name: "unlock",
		Help: "unlock DV test status window",
		Fn:   unlockCmd,
	})
}

func epmpEntry(s *epmp.State, i int) (res string, err error) {
	mode, err := s.Mode(i)

	if err != nil {
		return
	}

	r, perm, err := s.Decode(i)

	if err != nil {
		return
	}

	return fmt.Sprintf("ePMP:%.2d addr:%.8x cfg:%.2x %-5s %s %#.8x-%#.8x",
		i, s.Addr[i], s.Cfg[i], modes[mode], perm, r.Start, r.End), nil
}

func epmpStatusCmd(_ *term.Terminal, _ []string) (res string, err error) {
	s, err := epmp.Read(Registers)

	if err != nil {
		return
	}

	var status strings.Builder

	fmt.Fprintf(&status, "mseccfg:%.8x\n", s.MSecCfg)

	for i := 0; i < epmp.NumRegions; i++ {
		entry, err := epmpEntry(s, i)

		if err != nil {
			return "", err
		}

		fmt.Fprintln(&status, entry)
	}

	return status.String(), nil
}

func epmpReadCmd(_ *term.Terminal, arg []string) (res string, err error) {
	i, err := strconv.ParseUint(arg[0], 10, 8)

	if err != nil {
		return "", fmt.Errorf("invalid index, %v", err)
	}

	s, err := epmp.Read(Registers)

	if err != nil {
		return
	}

	return epmpEntry(s, int(i))
}

func epmpConfigureCmd(_ *term.Terminal, arg []string) (res string, err error) {
	i, err := strconv.ParseUint(arg[1], 10, 8)

	if err != nil {
		return "", fmt.Errorf("invalid index, %v", err)
	}

	start, err := strconv.ParseUint(arg[2], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid start address, %v", err)
	}

	end, err := strconv.ParseUint(arg[3], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid end address, %v", err)
	}

	var flag [4]bool

	for n, name := range []string{"r", "w", "x", "l"} {
		if flag[n], err = strconv.ParseBool(arg[4+n]); err != nil {
			return "", fmt.Errorf("invalid %s boolean, %v", name, err)
		}
	}

	perm, err := epmp.PermFor(flag[3], flag[0], flag[1], flag[2])

	if err != nil {
		return
	}

	entry := int(i)
	region := epmp.Region{Start: uint32(start), End: uint32(end)}

	switch arg[0] {
	case "off":
		err = Shadow.ConfigureOff(entry, region, perm)
	case "tor":
		err = Shadow.ConfigureTOR(entry, region, perm)
	case "na4":
		err = Shadow.ConfigureNA4(entry, region, perm)
	case "napot":
		err = Shadow.ConfigureNAPOT(entry, region, perm)
	}

	if err != nil {
		return
	}

	if err = epmp.Apply(Registers, Shadow); err != nil {
		return
	}

	if err = epmp.Verify(Registers, Shadow); err != nil {
		return
	}

	return epmpEntry(Shadow, entry)
}

func verifyCmd(_ *term.Terminal, _ []string) (res string, err error) {
	if err = epmp.Verify(Registers, Shadow); err != nil {
		return
	}

	return "live state matches shadow state", nil
}

func unlockCmd(_ *term.Terminal, _ []string) (res string, err error) {
	if err = epmp.UnlockTestStatus(Registers, Shadow, mem.TestStatusStart); err != nil {
		return
	}

	return epmpEntry(Shadow, epmp.TestStatusEntry)
}
