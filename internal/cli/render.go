/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vecraster/internal/export"
	"vecraster/internal/render"
	"vecraster/internal/scene"
	"vecraster/internal/store"
)

// renderOpts holds the output flags shared by render, demo and scene render.
type renderOpts struct {
	output string // output path; empty means the document's output or <name>.<format>
	format string // png | bmp | tiff | pdf; overrides the extension
	preset string // web | print | archive; writes several formats
}

func (o *renderOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVar(&o.preset, "preset", "", "export preset: web, print, archive")
}

func (a *app) newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render <scene-file>",
		Short: "Render a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			return a.renderDocument(cmd, doc, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) newDemoCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in demo scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderDocument(cmd, scene.Demo(), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene-file>...",
		Short: "Check scene files against the scene schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, p := range args {
				doc, err := scene.Load(p)
				if err != nil {
					failed++
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", p, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%dx%d, %d commands)\n", p, doc.Width, doc.Height, len(doc.Commands))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scene files invalid", failed, len(args))
			}
			return nil
		},
	}
}

// newNewCmd writes an empty scene sized from the render defaults.
func (a *app) newNewCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <scene-file>",
		Short: "Create an empty scene file (format from extension)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := scene.FormatFor(path)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s exists (use --force)", path)
				}
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			doc := &scene.Document{
				Name:   name,
				Width:  a.cfg.Render.Width,
				Height: a.cfg.Render.Height,
				Output: name + "." + a.cfg.Render.Format,
			}
			data, err := scene.Encode(doc, f)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%dx%d)\n", path, doc.Width, doc.Height)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// destination resolves where doc is written. An explicit -o is used as
// given; document and default names are placed under the output dir.
func (a *app) destination(doc *scene.Document, opts renderOpts) string {
	if opts.output != "" {
		return opts.output
	}
	if doc.Output != "" {
		return a.cfg.OutputPath(doc.Output)
	}
	name := doc.Name
	if name == "" {
		name = "scene"
	}
	return a.cfg.OutputPath(name + "." + a.cfg.Render.Format)
}

func (a *app) renderDocument(cmd *cobra.Command, doc *scene.Document, opts renderOpts) error {
	ctx := cmd.Context()
	cmds, err := doc.DrawCommands()
	if err != nil {
		return err
	}
	dest := a.destination(doc, opts)
	l := a.log.With(slog.String("scene", doc.Name))

	preset := opts.preset
	if preset == "" && opts.format == "" {
		preset = a.cfg.Render.Preset
	}

	var (
		outputs []string
		format  string
		elapsed time.Duration
	)
	r := render.New(doc.Width, doc.Height, dest, render.WithLogger(l))
	start := time.Now()
	switch {
	case preset != "":
		sinks, perr := export.PresetSinks(export.PresetName(preset), doc.Name)
		if perr != nil {
			return perr
		}
		img, rerr := r.RenderImage(ctx, cmds)
		if rerr == nil {
			outputs, err = export.WriteBatch(dest, img, sinks)
		} else {
			err = rerr
		}
		format = preset
	default:
		if opts.format != "" {
			sink, ferr := export.ForFormat(opts.format)
			if ferr != nil {
				return ferr
			}
			dest = export.WithExt(dest, sink)
			r = render.New(doc.Width, doc.Height, dest, render.WithLogger(l), render.WithSink(sink))
		}
		var res *render.Result
		res, err = r.Render(ctx, cmds)
		if err == nil {
			outputs = []string{res.Output}
			format = string(res.Format)
		}
	}
	elapsed = time.Since(start)

	// A preset writes several files; history keeps all of them.
	recorded := dest
	if len(outputs) > 0 {
		recorded = strings.Join(outputs, ",")
	}
	a.record(ctx, &store.RenderRecord{
		Scene:    doc.Name,
		Output:   recorded,
		Format:   format,
		Width:    doc.Width,
		Height:   doc.Height,
		Commands: len(cmds),
		Duration: elapsed,
		Error:    errString(err),
	})
	if err != nil {
		return err
	}
	for _, p := range outputs {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d commands, %s)\n",
			p, doc.Width, doc.Height, len(cmds), elapsed.Round(time.Microsecond)); err != nil {
			return err
		}
	}
	return nil
}

// record appends to the render history when a store is configured. History
// failures are logged and never fail the render.
func (a *app) record(ctx context.Context, rec *store.RenderRecord) {
	st, err := a.openStore(ctx)
	if errors.Is(err, ErrStoreDisabled) {
		return
	}
	if err != nil {
		a.log.Warn("render history unavailable", slog.Any("err", err))
		return
	}
	defer func() { _ = st.Close() }()
	if err := st.RecordRender(ctx, rec); err != nil {
		a.log.Warn("render not recorded", slog.Any("err", err))
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
