// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// The dvshell tool installs the boot ePMP schema on a simulated register
// file and exposes it through an interactive DV console, allowing the
// entry encodings, the shadow state verification flow and the test status
// unlock path to be exercised off silicon.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/term"

	"github.com/mundaym/opentitan/csr"
	"github.com/mundaym/opentitan/dvshell/cmd"
	"github.com/mundaym/opentitan/rom"
	"github.com/mundaym/opentitan/sramctl"
)

// Simulated retention SRAM controller register file, control writes enabled.
var sramRegs = [8]uint32{
	sramctl.CTRL_REGWEN / 4: 1 << sramctl.CTRL_REGWEN_EN,
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	cmd.Banner = fmt.Sprintf("%s/%s (%s) • ePMP DV shell", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	regs := csr.NewFile()

	state, err := rom.Configure(regs)

	if err != nil {
		log.Fatalf("could not install boot ePMP schema, %v", err)
	}

	log.Printf("boot ePMP schema installed and verified")

	cmd.Registers = regs
	cmd.Shadow = state
	cmd.SRAM = &sramctl.SRAMCtrl{
		Base: uintptr(unsafe.Pointer(&sramRegs[0])),
	}

	old, err := term.MakeRaw(int(os.Stdin.Fd()))

	if err != nil {
		log.Fatalf("could not set raw terminal mode, %v", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), old)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "> ")

	cmd.Console(t)
}
