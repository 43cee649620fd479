// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"

	"golang.org/x/term"

	"github.com/mundaym/opentitan/sramctl"
)

// SRAM is the retention SRAM controller instance acted on by the scramble
// command.
var SRAM *sramctl.SRAMCtrl

func init() {
	Add(Cmd{
		Name: "scramble",
		Help: "renew retention SRAM scrambling key (wipes contents)",
		Fn:   scrambleCmd,
	})
}

func scrambleCmd(_ *term.Terminal, _ []string) (res string, err error) {
	if SRAM == nil {
		return "", errors.New("no retention SRAM controller")
	}

	if err = SRAM.Scramble(); err != nil {
		return
	}

	return "retention SRAM scrambling key renewal requested", nil
}
