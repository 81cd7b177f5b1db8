/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli wires the vecraster commands onto cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"vecraster/internal/config"
	applog "vecraster/internal/log"
	"vecraster/internal/store"
	"vecraster/internal/version"
)

// ErrStoreDisabled is returned by library commands when no store is configured.
var ErrStoreDisabled = errors.New("scene library disabled: set store.enabled in the config or " + config.EnvStoreEnabled + "=1")

// app carries what every command needs after the root pre-run.
type app struct {
	cfg    config.AppConfig
	secret string
	log    *slog.Logger

	// flags
	configPath string
	verbose    bool
}

// NewRootCmd builds the command tree. Output and diagnostics go to the
// command's out and err writers so tests can capture them.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "vecraster",
		Short:         "Render vector scenes to raster images",
		Long:          `vecraster draws circles, lines, rectangles and polygons described in JSON, YAML or TOML scene files onto a white canvas and writes PNG, BMP, TIFF or PDF output.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate("vecraster {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newDemoCmd())
	root.AddCommand(a.newValidateCmd())
	root.AddCommand(a.newNewCmd())
	root.AddCommand(a.newSceneCmd())
	root.AddCommand(a.newHistoryCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI with the given arguments.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, a.secret, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, a.secret, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	opts := applog.Options{
		Level:     a.cfg.Logging.Level,
		Format:    a.cfg.Logging.Format,
		AddSource: a.cfg.Logging.Source,
		File:      a.cfg.Logging.File,
		Writer:    cmd.ErrOrStderr(),
	}
	if a.verbose {
		opts.Level = "debug"
	}
	applog.Init(opts)
	a.log = applog.WithComponent("cli")
	a.log.Debug("start", slog.String("command", cmd.CommandPath()), slog.String("version", version.String()))
	return nil
}

// openStore opens the configured scene library or returns ErrStoreDisabled.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if !a.cfg.Store.Enabled {
		return nil, ErrStoreDisabled
	}
	dsn, err := a.cfg.StoreDSN(a.secret)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, store.Config{Driver: a.cfg.Store.Driver, DSN: dsn})
}

// CrashDir is where crash reports are written.
func CrashDir() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "crash")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vecraster %s\n", version.String())
			return err
		},
	}
}
