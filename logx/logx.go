// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default slog setup and
// colored diagnostic printing for the ladder hosts.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [Init] or [SetLevel].
var UserLevel = slog.Level(defaultUserLevel)

// output is the colored terminal output for diagnostics.
var output = termenv.NewOutput(os.Stderr)

// Init installs a text [slog.Handler] writing to w at [UserLevel]
// as the default logger.
func Init(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel, AddSource: addSource})))
}

// SetLevel sets [UserLevel] from a level name (debug, info, warn, error).
// The empty string leaves the level unchanged.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("logx.SetLevel: %w", err)
	}
	UserLevel = lv
	return nil
}

// PrintlnError prints the given values in red if [UserLevel]
// allows errors to be shown.
func PrintlnError(a ...any) {
	if UserLevel > slog.LevelError {
		return
	}
	fmt.Fprintln(os.Stderr, output.String(fmt.Sprint(a...)).Foreground(termenv.ANSIRed).Bold())
}
