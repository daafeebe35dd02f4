// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ladder opens a window and runs one of the ladder demos.
package main

import (
	"fmt"
	"os"
	"runtime"

	"cogentcore.org/ladder/config"
	"cogentcore.org/ladder/ladder"
	"cogentcore.org/ladder/logx"
	"github.com/spf13/cobra"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.PrintlnError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cf := &config.Config{}
	cf.Defaults()
	var cfgFile string

	root := &cobra.Command{
		Use:           "ladder [demo]",
		Short:         "Run one of the ladder rendering demos",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				fcf := &config.Config{}
				fcf.Defaults()
				if err := config.Open(fcf, cfgFile); err != nil {
					return err
				}
				applyFlags(cmd, cf, fcf)
				cf = fcf
			}
			if len(args) == 1 {
				cf.Demo = args[0]
			}
			if err := cf.Validate(); err != nil {
				return err
			}
			if err := logx.SetLevel(cf.LogLevel); err != nil {
				return err
			}
			logx.Init(os.Stderr)
			return run(cf)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&cfgFile, "config", "c", "", "TOML or YAML config file")
	fl.StringVarP(&cf.Demo, "demo", "d", cf.Demo, config.Usage("demo"))
	fl.IntVar(&cf.Width, "width", cf.Width, config.Usage("width"))
	fl.IntVar(&cf.Height, "height", cf.Height, config.Usage("height"))
	fl.StringVar(&cf.Title, "title", cf.Title, config.Usage("title"))
	fl.IntVar(&cf.Interval, "interval", cf.Interval, config.Usage("interval"))
	fl.Float32Var(&cf.Step, "step", cf.Step, config.Usage("step"))
	fl.StringVar(&cf.TextureDir, "texture-dir", cf.TextureDir, config.Usage("texture_dir"))
	fl.StringVar(&cf.Fallback, "fallback", cf.Fallback, config.Usage("fallback"))
	fl.Float32SliceVar(&cf.ClearColor, "clear-color", cf.ClearColor, config.Usage("clear_color"))
	fl.StringVar(&cf.LogLevel, "log-level", cf.LogLevel, config.Usage("log_level"))

	root.AddCommand(newListCmd())
	return root
}

// applyFlags copies the flags set on the command line from cf to fcf,
// so they override the values read from the config file.
func applyFlags(cmd *cobra.Command, cf, fcf *config.Config) {
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("demo", func() { fcf.Demo = cf.Demo })
	set("width", func() { fcf.Width = cf.Width })
	set("height", func() { fcf.Height = cf.Height })
	set("title", func() { fcf.Title = cf.Title })
	set("interval", func() { fcf.Interval = cf.Interval })
	set("step", func() { fcf.Step = cf.Step })
	set("texture-dir", func() { fcf.TextureDir = cf.TextureDir })
	set("fallback", func() { fcf.Fallback = cf.Fallback })
	set("clear-color", func() { fcf.ClearColor = cf.ClearColor })
	set("log-level", func() { fcf.LogLevel = cf.LogLevel })
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range ladder.Demos() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", d.Name, d.Title)
			}
		},
	}
}
