/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type RenderConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Format    string `yaml:"format"`     // png | bmp | tiff | pdf
	OutputDir string `yaml:"output_dir"` // relative outputs are placed here
	Preset    string `yaml:"preset"`     // optional: web | print | archive
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"` // sqlite | postgres
	// Path is the sqlite database file. Postgres connection strings are not
	// stored on disk; they live in the OS keychain.
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Store         StoreConfig   `yaml:"store"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render:        RenderConfig{Width: 500, Height: 250, Format: "png", OutputDir: "."},
		Store:         StoreConfig{Enabled: false, Driver: "sqlite", Path: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "VRS_CONFIG"
	EnvRenderWidth  = "VRS_RENDER_WIDTH"
	EnvRenderHeight = "VRS_RENDER_HEIGHT"
	EnvRenderFormat = "VRS_RENDER_FORMAT"
	EnvOutputDir    = "VRS_OUTPUT_DIR"
	EnvStoreEnabled = "VRS_STORE"
	EnvStoreDriver  = "VRS_STORE_DRIVER"
	EnvStoreDSN     = "VRS_STORE_DSN"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "VRS_LOG_LEVEL"
	EnvLogFormat = "VRS_LOG_FORMAT"
	EnvLogSource = "VRS_LOG_SOURCE"
	EnvLogFile   = "VRS_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService = "vecraster"
	keyringDSN     = "store_dsn"
)

// secretStore abstracts the keyring so tests can swap it.
var secretStore SecretStore = osKeyring{}

type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements SecretStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// ConfigDir returns the per-user configuration directory of vecraster.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "vecraster")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "vecraster")
	default: // linux and others
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "vecraster")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "vecraster")
		}
	}
	if base == "" || base == "vecraster" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path. VRS_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// It also loads the store DSN secret from the keyring (not kept inside the struct; returned separately).
func Load() (AppConfig, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), "", err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an
// error; a malformed one is.
func LoadFrom(path string) (AppConfig, string, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, "", err
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, "", err
	}
	applyEnvOverrides(&cfg)
	secret, _ := secretStore.Get(keyringService, keyringDSN)
	return cfg, secret, nil
}

// Save writes the user config YAML and persists the DSN secret into the OS keyring (if non-empty).
func Save(cfg AppConfig, secret string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg, secret)
}

// SaveTo is Save with an explicit file path.
func SaveTo(path string, cfg AppConfig, secret string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if secret != "" {
		if err := secretStore.Set(keyringService, keyringDSN, secret); err != nil {
			return err
		}
	}
	return nil
}

// ForgetSecret removes the stored DSN from the keyring.
func ForgetSecret() error {
	err := secretStore.Delete(keyringService, keyringDSN)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// StoreDSN resolves the connection string for the configured driver:
// VRS_STORE_DSN wins, then the keyring secret, then (sqlite only) the file
// path or library.sqlite in the config directory.
func (c AppConfig) StoreDSN(secret string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvStoreDSN)); v != "" {
		return v, nil
	}
	if c.Store.Driver == "postgres" {
		if secret == "" {
			return "", errors.New("postgres store selected but no DSN in keyring or " + EnvStoreDSN)
		}
		return secret, nil
	}
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "library.sqlite"), nil
}

// OutputPath places a relative output name under Render.OutputDir.
func (c AppConfig) OutputPath(name string) string {
	if filepath.IsAbs(name) || c.Render.OutputDir == "" || c.Render.OutputDir == "." {
		return name
	}
	return filepath.Join(c.Render.OutputDir, name)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// render
	if src.Render.Width > 0 {
		dst.Render.Width = src.Render.Width
	}
	if src.Render.Height > 0 {
		dst.Render.Height = src.Render.Height
	}
	if v := strings.TrimSpace(src.Render.Format); v != "" {
		dst.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Render.OutputDir); v != "" {
		dst.Render.OutputDir = v
	}
	if v := strings.TrimSpace(src.Render.Preset); v != "" {
		dst.Render.Preset = strings.ToLower(v)
	}
	// store: booleans copy directly from src (file) so user preferences persist
	dst.Store.Enabled = src.Store.Enabled
	if v := strings.TrimSpace(src.Store.Driver); v != "" {
		dst.Store.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Store.Path); v != "" {
		dst.Store.Path = v
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvRenderWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Render.Width = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderHeight)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Render.Height = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderFormat)); v != "" {
		cfg.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Render.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoreEnabled)); v != "" {
		cfg.Store.Enabled = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoreDriver)); v != "" {
		cfg.Store.Driver = strings.ToLower(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envByKey = map[string]string{
	"render.width":      EnvRenderWidth,
	"render.height":     EnvRenderHeight,
	"render.format":     EnvRenderFormat,
	"render.output_dir": EnvOutputDir,
	"store.enabled":     EnvStoreEnabled,
	"store.driver":      EnvStoreDriver,
	"store.dsn":         EnvStoreDSN,
	"logging.level":     EnvLogLevel,
	"logging.format":    EnvLogFormat,
	"logging.source":    EnvLogSource,
	"logging.file":      EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envByKey[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
