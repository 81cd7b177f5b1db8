/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is a scene document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// ErrInvalid marks documents that cannot be decoded or fail the schema.
var ErrInvalid = errors.New("invalid scene")

//go:embed scene.schema.json
var schemaJSON []byte

// Schema returns the JSON schema scene documents are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: unsupported scene file %s", ErrInvalid, path)
	}
}

// Load reads and validates the scene at path. A document without a name is
// named after the file.
func Load(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	doc, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse decodes a document in the given format, validating it first.
func Parse(data []byte, f Format) (*Document, error) {
	js, err := normalize(data, f)
	if err != nil {
		return nil, err
	}
	if err := Validate(js); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &doc, nil
}

// Validate checks a JSON document against the embedded schema.
func Validate(js []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile scene schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(js))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}

// normalize turns YAML or TOML into JSON text. JSON passes through.
func normalize(data []byte, f Format) ([]byte, error) {
	var v any
	switch f {
	case JSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed json", ErrInvalid)
		}
		return data, nil
	case YAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
		}
	case TOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: toml: %v", ErrInvalid, err)
		}
		v = m
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalid, f)
	}
	js, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return js, nil
}

// Marshal writes doc as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	d := *doc
	if d.Commands == nil {
		d.Commands = []Command{}
	}
	return json.MarshalIndent(&d, "", "  ")
}

// Encode writes doc in format f. YAML and TOML are produced from the JSON
// form so all three encodings carry the same fields.
func Encode(doc *Document, f Format) ([]byte, error) {
	js, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	if f == JSON {
		return js, nil
	}
	var generic map[string]any
	if err := json.Unmarshal(js, &generic); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch f {
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case TOML:
		if err := toml.NewEncoder(&buf).Encode(generic); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalid, f)
	}
	return buf.Bytes(), nil
}
