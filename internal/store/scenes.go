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
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"vecraster/internal/scene"
)

// SceneRecord is a stored scene. Document is nil in listings.
type SceneRecord struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Commands  int
	Document  *scene.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveScene stores doc under name, replacing an existing scene of that name
// while keeping its id and creation time.
func (s *Store) SaveScene(ctx context.Context, name string, doc *scene.Document) (*SceneRecord, error) {
	if name == "" {
		return nil, errors.New("scene name is required")
	}
	body, err := scene.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	now := time.Now()
	rec := &SceneRecord{
		Name:      name,
		Width:     doc.Width,
		Height:    doc.Height,
		Commands:  len(doc.Commands),
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var created string
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT id, created_at FROM scenes WHERE name = ?`), name).Scan(&rec.ID, &created)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		rec.ID = uuid.NewString()
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO scenes (id, name, width, height, commands, document, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			rec.ID, name, rec.Width, rec.Height, rec.Commands, string(body), formatTime(now), formatTime(now))
	case err != nil:
		return nil, fmt.Errorf("lookup scene: %w", err)
	default:
		rec.CreatedAt = parseTime(created)
		_, err = tx.ExecContext(ctx, s.rebind(`UPDATE scenes SET width = ?, height = ?, commands = ?, document = ?, updated_at = ? WHERE id = ?`),
			rec.Width, rec.Height, rec.Commands, string(body), formatTime(now), rec.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("save scene: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	s.log.InfoContext(ctx, "scene saved", slog.String("name", name), slog.String("id", rec.ID))
	return rec, nil
}

// LoadScene returns the scene stored under name.
func (s *Store) LoadScene(ctx context.Context, name string) (*SceneRecord, error) {
	var (
		rec              SceneRecord
		body             string
		created, updated string
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, name, width, height, commands, document, created_at, updated_at
		FROM scenes WHERE name = ?`), name).
		Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.Commands, &body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scene %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	doc, err := scene.Parse([]byte(body), scene.JSON)
	if err != nil {
		return nil, fmt.Errorf("stored scene %q: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = rec.Name
	}
	rec.Document = doc
	rec.CreatedAt, rec.UpdatedAt = parseTime(created), parseTime(updated)
	return &rec, nil
}

// ListScenes returns all scenes ordered by name, without documents.
func (s *Store) ListScenes(ctx context.Context) ([]SceneRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, width, height, commands, created_at, updated_at FROM scenes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []SceneRecord
	for rows.Next() {
		var (
			rec              SceneRecord
			created, updated string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.Commands, &created, &updated); err != nil {
			return nil, err
		}
		rec.CreatedAt, rec.UpdatedAt = parseTime(created), parseTime(updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteScene removes a scene. Its render history stays.
func (s *Store) DeleteScene(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM scenes WHERE name = ?`), name)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("scene %q: %w", name, ErrNotFound)
	}
	s.log.InfoContext(ctx, "scene deleted", slog.String("name", name))
	return nil
}
