/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vecraster/internal/scene"
	"vecraster/internal/store"
)

func (a *app) newSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage the scene library",
	}
	cmd.AddCommand(a.newSceneSaveCmd())
	cmd.AddCommand(a.newSceneListCmd())
	cmd.AddCommand(a.newSceneShowCmd())
	cmd.AddCommand(a.newSceneRmCmd())
	cmd.AddCommand(a.newSceneRenderCmd())
	return cmd
}

func (a *app) newSceneSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <scene-file>",
		Short: "Validate a scene file and store it under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.Load(args[1])
			if err != nil {
				return err
			}
			doc.Name = args[0]
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			rec, err := st.SaveScene(cmd.Context(), args[0], doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", rec.Name, rec.ID)
			return err
		},
	}
}

func (a *app) newSceneListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored scenes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			recs, err := st.ListScenes(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tSIZE\tCOMMANDS\tUPDATED")
			for _, r := range recs {
				_, _ = fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n", r.Name, r.Width, r.Height, r.Commands, r.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func (a *app) newSceneShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			rec, err := st.LoadScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := scene.Encode(rec.Document, scene.Format(strings.ToLower(format)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(scene.JSON), "document format: json, yaml, toml")
	return cmd
}

func (a *app) newSceneRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if err := st.DeleteScene(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}

func (a *app) newSceneRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := st.LoadScene(cmd.Context(), args[0])
			_ = st.Close()
			if err != nil {
				return err
			}
			return a.renderDocument(cmd, rec.Document, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [scene]",
		Short: "Show recent renders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			recs, err := st.ListRenders(cmd.Context(), name, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "WHEN\tSCENE\tFORMAT\tSIZE\tDURATION\tRESULT")
			for _, r := range recs {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%s\t%s\n",
					r.CreatedAt.Format(time.RFC3339), r.Scene, r.Format, r.Width, r.Height, r.Duration, result(r))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries")
	return cmd
}

func result(r store.RenderRecord) string {
	if r.OK() {
		return r.Output
	}
	return "error: " + r.Error
}
