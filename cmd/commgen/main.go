// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command commgen generates TypeScript, Rust and Python bindings from
// Comm contract documents.
//
// Usage:
//
//	commgen [flags]
//
// Flags:
//
//	-config     Path to the TOML configuration (default: commgen.toml)
//	-list       List available generators
//	-verbose    Verbose logging
//	-version    Show version information
//
// On success every generated file is printed to stdout. Logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/internal/config"
	"github.com/albertocavalcante/commgen/internal/logging"
	"github.com/albertocavalcante/commgen/internal/pipeline"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("commgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to the TOML configuration (default: "+config.DefaultPath+")")
	verbose := fs.Bool("verbose", false, "Verbose logging")
	list := fs.Bool("list", false, "List available generators")
	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `commgen - Comm binding generator

Reads <name>-frontend-openrpc.json and <name>-backend-openrpc.json
documents and writes TypeScript, Rust and Python bindings for each Comm.

Usage:
  commgen [flags]

Flags:
  -config string   Path to the TOML configuration (default: %s)
  -list            List available generators
  -verbose         Verbose logging
  -version         Show version information
  -help            Show this help

Environment:
  %s   trace, debug, info, warn, error or disabled
  %s  disable colored log output
`, config.DefaultPath, logging.EnvLogLevel, logging.EnvLogNoColor)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *showHelp {
		fs.Usage()
		return nil
	}

	if *showVersion {
		fmt.Fprintf(stdout, "commgen %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	if *list {
		for _, g := range generator.All() {
			meta := g.Metadata()
			fmt.Fprintf(stdout, "%-12s %s\n", meta.Name, meta.Description)
		}
		return nil
	}

	logger := logging.Init(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	runCfg, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx, runCfg, logger)
	if err != nil {
		if len(report.Processed) > 0 {
			logger.Warn().Strs("comms", report.Processed).Msg("comms completed before the failure")
		}
		return err
	}

	for _, f := range report.Files {
		fmt.Fprintf(stdout, "==> %s <==\n", f.Path)
		stdout.Write(f.Content)
		if n := len(f.Content); n > 0 && f.Content[n-1] != '\n' {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout)
	}
	logger.Info().Strs("comms", report.Processed).Msg("processed")
	return nil
}
