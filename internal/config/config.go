package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/tvnav/internal/events"
)

const (
	configDir  = ".tvnav"
	configFile = ".tvnav/config.json"
)

// Catalog drivers
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverCGO     = "sqlite3" // mattn/go-sqlite3
)

// Config holds the user-tunable settings of tvnav
type Config struct {
	ThresholdRows       float64             `json:"pagination_threshold_rows"`
	PageSize            int                 `json:"page_size"`
	GridRowUp           bool                `json:"grid_row_up"`
	KeyboardShowDelayMS int                 `json:"keyboard_show_delay_ms"`
	KeyboardMaxLength   int                 `json:"keyboard_max_length,omitempty"`
	CatalogPath         string              `json:"catalog_path"`
	CatalogDriver       string              `json:"catalog_driver"`
	LogLevel            string              `json:"log_level"`
	Keymap              map[string][]string `json:"keymap,omitempty"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		ThresholdRows:       1.5,
		PageSize:            10,
		KeyboardShowDelayMS: 300,
		CatalogPath:         filepath.Join(configDir, "catalog.db"),
		CatalogDriver:       DriverModernc,
		LogLevel:            "info",
	}
}

// ParseError reports an invalid setting
type ParseError struct {
	Field string
	Value string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s=%q: %s", e.Field, e.Value, e.Msg)
}

// Path returns the config file location under baseDir
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Dir returns the tvnav state directory under baseDir
func Dir(baseDir string) string {
	return filepath.Join(baseDir, configDir)
}

// Load reads the config from disk, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(baseDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(baseDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Unmarshal over the defaults so omitted fields keep them
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ApplyEnv overrides settings from TVNAV_* variables.
// Priority: env > project config > defaults.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("TVNAV_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ParseError{Field: "TVNAV_PAGE_SIZE", Value: v, Msg: "not an integer"}
		}
		c.PageSize = n
	}
	if v := getenv("TVNAV_THRESHOLD_ROWS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ParseError{Field: "TVNAV_THRESHOLD_ROWS", Value: v, Msg: "not a number"}
		}
		c.ThresholdRows = f
	}
	if v := getenv("TVNAV_GRID_ROW_UP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ParseError{Field: "TVNAV_GRID_ROW_UP", Value: v, Msg: "not a boolean"}
		}
		c.GridRowUp = b
	}
	if v := getenv("TVNAV_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("TVNAV_CATALOG_DRIVER"); v != "" {
		c.CatalogDriver = v
	}
	return nil
}

// Validate rejects settings the rest of the program cannot use
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return &ParseError{Field: "page_size", Value: strconv.Itoa(c.PageSize), Msg: "must be positive"}
	}
	if c.ThresholdRows < 0 {
		return &ParseError{Field: "pagination_threshold_rows", Value: strconv.FormatFloat(c.ThresholdRows, 'g', -1, 64), Msg: "must not be negative"}
	}
	if c.KeyboardShowDelayMS < 0 {
		return &ParseError{Field: "keyboard_show_delay_ms", Value: strconv.Itoa(c.KeyboardShowDelayMS), Msg: "must not be negative"}
	}
	if c.KeyboardMaxLength < 0 {
		return &ParseError{Field: "keyboard_max_length", Value: strconv.Itoa(c.KeyboardMaxLength), Msg: "must not be negative"}
	}
	if strings.TrimSpace(c.CatalogPath) == "" {
		return &ParseError{Field: "catalog_path", Value: c.CatalogPath, Msg: "must not be empty"}
	}
	switch c.CatalogDriver {
	case DriverModernc, DriverCGO:
	default:
		return &ParseError{Field: "catalog_driver", Value: c.CatalogDriver, Msg: "want sqlite or sqlite3"}
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return &ParseError{Field: "log_level", Value: c.LogLevel, Msg: "want debug, info, warn or error"}
	}
	for name, keys := range c.Keymap {
		if _, err := events.Parse(name); err != nil {
			return &ParseError{Field: "keymap", Value: name, Msg: "unknown event"}
		}
		if len(keys) == 0 {
			return &ParseError{Field: "keymap", Value: name, Msg: "no keys bound"}
		}
	}
	return nil
}

var levels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// ResolveCatalogPath returns the catalog path, relative paths resolved
// against baseDir
func (c *Config) ResolveCatalogPath(baseDir string) string {
	if filepath.IsAbs(c.CatalogPath) {
		return c.CatalogPath
	}
	return filepath.Join(baseDir, c.CatalogPath)
}
