// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/mundaym/opentitan/csr"
	"github.com/mundaym/opentitan/epmp"
)

// Banner is printed on console start.
var Banner string

// Registers is the register access collaborator commands act on.
var Registers csr.Interface

// Shadow is the in-memory source of truth mirrored against Registers.
var Shadow *epmp.State

// CmdFn is the function prototype for terminal interface commands.
type CmdFn func(term *term.Terminal, arg []string) (res string, err error)

// Cmd describes a terminal interface command.
type Cmd struct {
	Name    string
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      CmdFn
}

var cmds = make(map[string]*Cmd)

// Add registers a terminal interface command.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Help returns the terminal interface command list.
func Help(term *term.Terminal) string {
	var help strings.Builder
	var names []string

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		cmd := cmds[name]
		fmt.Fprintf(&help, "%-12s%-32s # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	return help.String()
}

// Handle dispatches a single console line to the matching command.
func Handle(term *term.Terminal, line string) (res string, err error) {
	line = strings.TrimSpace(line)

	if len(line) == 0 {
		return
	}

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if line == cmd.Name {
				return cmd.Fn(term, nil)
			}

			continue
		}

		if m := cmd.Pattern.FindStringSubmatch(line); len(m) == cmd.Args+1 {
			return cmd.Fn(term, m[1:])
		}
	}

	return "", fmt.Errorf("unknown command, type `help`")
}

// Console starts the command interpreter on the argument terminal, returning
// on EOF or `exit`.
func Console(term *term.Terminal) {
	fmt.Fprintf(term, "%s\n\n", Banner)

	for {
		line, err := term.ReadLine()

		if err == io.EOF {
			break
		}

		if err != nil {
			log.Printf("readline error, %v", err)
			break
		}

		res, err := Handle(term, line)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			fmt.Fprintf(term, "error, %v\n", err)
			continue
		}

		if len(res) > 0 {
			fmt.Fprintln(term, res)
		}
	}
}
