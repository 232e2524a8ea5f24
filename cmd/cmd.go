// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/scrollrun/internal/render"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	commandArg   = "command"
	numLinesFlag = "num-lines"

	// usageExitCode is returned for invalid flag values.
	usageExitCode = 2
	// spawnFailureExitCode is returned when the command could not be
	// launched at all. It is distinct from anything a well-behaved child
	// would exit with, so callers can tell the two apart.
	spawnFailureExitCode = 125
)

// RootCmd is the root command for the CLI.
var RootCmd = New()

// New builds the root command. Tests construct their own instance because a
// cli.Command carries parse state after Run.
func New() *cli.Command {
	return &cli.Command{
		Name:  "scrollrun",
		Usage: "Run a command and display its output in a scrolling window",
		Description: `Scrollrun runs a command through a shell and displays its combined
stdout and stderr in a fixed-height window headed by a live elapsed-time
counter. The window shows the most recent lines of output and is repainted
in place, so long-running builds and batch jobs stay readable. The child's
exit code is forwarded as scrollrun's own.

With no command, and with data piped on stdin, the window displays stdin
instead.

Doesn't work particularly well with commands that emit cursor-control
sequences of their own.`,
		Version:   fmt.Sprintf("%s (%s)", Version, Commit),
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      commandArg,
				UsageText: "COMMAND",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        numLinesFlag,
				Aliases:     []string{"n"},
				Usage:       "Number of lines to display at a time",
				DefaultText: "derived from terminal height",
			},
		},
		EnableShellCompletion: true,
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	numLines := int(cmd.Int(numLinesFlag))
	if cmd.IsSet(numLinesFlag) && numLines < 1 {
		return cli.Exit(fmt.Sprintf("--%s must be at least 1", numLinesFlag), usageExitCode)
	}

	opts := render.Options{
		NumLines: numLines,
		Output:   cmd.Writer,
	}

	command := cmd.StringArg(commandArg)
	if command == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(cmd.ErrWriter, "nothing to do: no command given and stdin is a terminal; see '%s --help'\n", cmd.Name)

			return nil
		}

		if err := render.RunReader(ctx, os.Stdin, opts); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		return nil
	}

	code, err := render.RunCommand(ctx, command, opts)
	if err != nil {
		return cli.Exit(err.Error(), spawnFailureExitCode)
	}

	if code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
