/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RenderRecord is one entry of the render history. Error is empty for
// successful renders.
type RenderRecord struct {
	ID        string
	Scene     string
	Output    string
	Format    string
	Width     int
	Height    int
	Commands  int
	Duration  time.Duration
	Error     string
	CreatedAt time.Time
}

// OK reports whether the render succeeded.
func (r RenderRecord) OK() bool { return r.Error == "" }

// RecordRender appends rec to the history, assigning ID and CreatedAt when
// they are unset.
func (s *Store) RecordRender(ctx context.Context, rec *RenderRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO renders
		(id, scene_name, output, format, width, height, commands, duration_us, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID, rec.Scene, rec.Output, rec.Format, rec.Width, rec.Height, rec.Commands,
		rec.Duration.Microseconds(), rec.Error, formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("record render: %w", err)
	}
	return nil
}

// ListRenders returns the newest renders first. An empty scene lists all
// scenes; limit <= 0 means 50.
func (s *Store) ListRenders(ctx context.Context, sceneName string, limit int) ([]RenderRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT id, scene_name, output, format, width, height, commands, duration_us, error, created_at FROM renders`
	args := []any{}
	if sceneName != "" {
		q += ` WHERE scene_name = ?`
		args = append(args, sceneName)
	}
	q += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []RenderRecord
	for rows.Next() {
		var (
			r       RenderRecord
			us      int64
			created string
		)
		if err := rows.Scan(&r.ID, &r.Scene, &r.Output, &r.Format, &r.Width, &r.Height, &r.Commands, &us, &r.Error, &created); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(us) * time.Microsecond
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}
