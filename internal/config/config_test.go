/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zalando/go-keyring"
)

func isolate(t *testing.T) string {
	t.Helper()
	keyring.MockInit()
	for _, k := range []string{EnvRenderWidth, EnvRenderHeight, EnvRenderFormat, EnvOutputDir,
		EnvStoreEnabled, EnvStoreDriver, EnvStoreDSN, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, secret, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if secret != "" {
		t.Fatalf("secret = %q, want empty", secret)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := isolate(t)
	want := Defaults()
	want.Render.Width = 800
	want.Render.Format = "tiff"
	want.Render.Preset = "archive"
	want.Store.Enabled = true
	want.Store.Driver = "postgres"
	want.Logging.Level = "debug"
	if err := Save(want, "postgres://u:p@db/scenes"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	got, secret, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if secret != "postgres://u:p@db/scenes" {
		t.Fatalf("secret = %q", secret)
	}
	data, _ := os.ReadFile(path)
	if string(data) == "" || strings.Contains(string(data), "u:p@db") {
		t.Fatalf("DSN secret leaked into config file:\n%s", data)
	}
	if err := ForgetSecret(); err != nil {
		t.Fatalf("ForgetSecret() error: %v", err)
	}
	if err := ForgetSecret(); err != nil {
		t.Fatalf("second ForgetSecret() error: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(); err == nil {
		t.Fatal("expected YAML error")
	}
}

func TestEnvOverridesRender(t *testing.T) {
	isolate(t)
	t.Setenv(EnvRenderWidth, "1024")
	t.Setenv(EnvRenderHeight, "nope")
	t.Setenv(EnvRenderFormat, "PDF")
	t.Setenv(EnvOutputDir, "/tmp/out")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 250 || cfg.Render.Format != "pdf" || cfg.Render.OutputDir != "/tmp/out" {
		t.Fatalf("render overrides not applied: %#v", cfg.Render)
	}
	if env, ok := EnvOverrideFor("render.width"); !ok || env != EnvRenderWidth {
		t.Fatalf("EnvOverrideFor(render.width) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("render.height"); !ok {
		t.Fatal("render.height env is set, override expected")
	}
	if _, ok := EnvOverrideFor("logging.level"); ok {
		t.Fatal("logging.level not set, no override expected")
	}
}

func TestMergeIncludesStore(t *testing.T) {
	dst := Defaults()
	src := AppConfig{Store: StoreConfig{Enabled: true, Driver: "Postgres", Path: "/var/lib/scenes.db"}}
	mergeInto(&dst, &src)
	want := StoreConfig{Enabled: true, Driver: "postgres", Path: "/var/lib/scenes.db"}
	if diff := cmp.Diff(want, dst.Store); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if dst.Render.Width != 500 {
		t.Fatalf("zero width in file must keep default, got %d", dst.Render.Width)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/vrs.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/vrs.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/vrs.log")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/vrs.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestStoreDSN(t *testing.T) {
	isolate(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	cfg := Defaults()

	if runtime.GOOS == "linux" {
		got, err := cfg.StoreDSN("")
		if err != nil || got != filepath.Join("/cfg", "vecraster", "library.sqlite") {
			t.Fatalf("sqlite default DSN = %q, %v", got, err)
		}
	}

	cfg.Store.Path = "/data/lib.db"
	if got, _ := cfg.StoreDSN(""); got != "/data/lib.db" {
		t.Fatalf("sqlite path DSN = %q", got)
	}

	cfg.Store.Driver = "postgres"
	if _, err := cfg.StoreDSN(""); err == nil {
		t.Fatal("postgres without secret should fail")
	}
	if got, _ := cfg.StoreDSN("postgres://k"); got != "postgres://k" {
		t.Fatalf("postgres keyring DSN = %q", got)
	}

	t.Setenv(EnvStoreDSN, "postgres://env")
	if got, _ := cfg.StoreDSN("postgres://k"); got != "postgres://env" {
		t.Fatalf("env DSN should win, got %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Defaults()
	if got := cfg.OutputPath("a.png"); got != "a.png" {
		t.Fatalf("OutputPath with default dir = %q", got)
	}
	cfg.Render.OutputDir = "/out"
	if got := cfg.OutputPath("a.png"); got != filepath.Join("/out", "a.png") {
		t.Fatalf("OutputPath = %q", got)
	}
	if got := cfg.OutputPath("/abs/a.png"); got != "/abs/a.png" {
		t.Fatalf("absolute OutputPath = %q", got)
	}
}
