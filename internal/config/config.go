// Package config provides configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/snapvault/snapvault/internal/colors"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML configuration files.
	FileExtTOML = ".toml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SNAPVAULT_"
)

// Config is an explicitly constructed configuration handle. Values are
// stored flat under dotted key paths (e.g. "storage.organize_by").
type Config struct {
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string

	configDir string
	stateDir  string
}

// Load initializes a configuration handle from defaults, the TOML config
// file, and environment variable overrides (env wins).
func Load() *Config {
	c := &Config{
		values:   make(map[string]string),
		defaults: make(map[string]string),
	}
	c.setDefaults()
	c.loadFromFile()
	c.loadFromEnv()
	c.validate()
	c.createSampleConfig()
	return c
}

// setDefaults populates the handle with default values.
func (c *Config) setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}
	c.configDir = filepath.Join(xdgConfigHome, "snapvault")
	c.stateDir = filepath.Join(xdgStateHome, "snapvault")

	c.setDefault("storage.save_location", filepath.Join(home, "Pictures", "snapvault"))
	c.setDefault("storage.naming_pattern", "%Y%m%d_%H%M%S_{window}")
	c.setDefault("storage.organize_by", "date")
	c.setDefault("storage.format", "png")
	c.setDefault("auto_delete.enabled", "false")
	c.setDefault("auto_delete.days_to_keep", "30")
	c.setDefault("clipboard.copy_on_capture", "false")
	c.setDefault("clipboard.save_and_copy", "true")
	c.setDefault("history.max_items", "1000")
	c.setDefault("hotkeys.quick_capture", "ctrl+shift+s")
	c.setDefault("hotkeys.window_capture", "ctrl+shift+w")
	c.setDefault("hotkeys.region_capture", "ctrl+shift+r")
	c.setDefault("logging.enabled", "false")
	c.setDefault("logging.level", "info")
	c.setDefault("logging.max_files", "10")
	c.setDefault("debug", "false")
	c.setDefault("quiet", "false")
}

func (c *Config) setDefault(key, value string) {
	c.values[key] = value
	c.defaults[key] = value
}

// ConfigPath returns the path of the TOML configuration file.
func (c *Config) ConfigPath() string {
	if path := os.Getenv(EnvPrefix + "CONFIG_PATH"); path != "" {
		return path
	}
	return filepath.Join(c.configDir, "config"+FileExtTOML)
}

// StateDir returns the application state directory.
func (c *Config) StateDir() string {
	if dir := os.Getenv(EnvPrefix + "STATE_DIR"); dir != "" {
		return dir
	}
	return c.stateDir
}

// CatalogPath returns the path of the capture history database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.StateDir(), "history.db")
}

// loadFromFile reads configuration from the TOML file, flattening nested
// tables into dotted key paths.
func (c *Config) loadFromFile() {
	configPath := c.ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			colors.Debug(fmt.Sprintf("unable to read config file %s: %v", configPath, err))
		}
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", configPath, err))
		return
	}
	c.mergeRaw("", raw)
}

func (c *Config) mergeRaw(prefix string, raw map[string]interface{}) {
	for k, v := range raw {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]interface{}); ok {
			c.mergeRaw(key, nested)
			continue
		}
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		c.values[key] = converted
	}
}

// coerceConfigValue converts a configuration value to its string representation.
// Supported types are string, int, int64, float64, and bool.
func coerceConfigValue(value interface{}) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

// loadFromEnv applies environment variable overrides. The variable name is
// the dotted key path upper-cased with separators mapped to underscores:
// storage.organize_by -> SNAPVAULT_STORAGE_ORGANIZE_BY.
func (c *Config) loadFromEnv() {
	for key := range c.defaults {
		if val, ok := os.LookupEnv(EnvName(key)); ok {
			c.values[key] = val
		}
	}
}

// EnvName returns the environment variable name for a dotted key path.
func EnvName(key string) string {
	name := strings.ReplaceAll(key, ".", "_")
	return EnvPrefix + strings.ToUpper(name)
}

// validate checks and normalizes configuration values using registered validators.
func (c *Config) validate() {
	for key, value := range c.values {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		defaultValue := c.defaults[key]
		normalized, err := validator(key, value, defaultValue)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, defaultValue))
			c.values[key] = defaultValue
			continue
		}
		c.values[key] = normalized
	}
}

// createSampleConfig creates a sample configuration file if none exists.
func (c *Config) createSampleConfig() {
	samplePath := c.ConfigPath()
	if _, err := os.Stat(samplePath); err == nil {
		return // file exists
	}
	if err := os.MkdirAll(filepath.Dir(samplePath), FileModeDir); err != nil {
		return
	}

	data, err := toml.Marshal(c.nested(c.defaults))
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to marshal sample config: %v", err))
		return
	}
	header := "# snapvault configuration\n# This file is in TOML format.\n# Edit values as needed.\n\n"
	if err := os.WriteFile(samplePath, append([]byte(header), data...), FileModeFile); err != nil {
		colors.Warning(fmt.Sprintf("unable to write sample config to %s: %v", samplePath, err))
	}
}

// nested rebuilds a nested map from flat dotted keys for TOML output.
func (c *Config) nested(flat map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for key, val := range flat {
		parts := strings.Split(key, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = valueToInterface(val)
	}
	return out
}

// valueToInterface converts a configuration value to an appropriate type for TOML.
func valueToInterface(val string) interface{} {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

// Save persists the current values to the TOML configuration file.
func (c *Config) Save() error {
	c.mu.RLock()
	flat := make(map[string]string, len(c.values))
	for k, v := range c.values {
		flat[k] = v
	}
	c.mu.RUnlock()

	path := c.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("config: create config directory: %w", err)
	}
	data, err := toml.Marshal(c.nested(flat))
	if err != nil {
		return fmt.Errorf("config: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, FileModeFile); err != nil {
		return fmt.Errorf("config: write config file: %w", err)
	}
	return nil
}

// Get returns a configuration value or default.
func (c *Config) Get(key, defaultValue string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if val, ok := c.values[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or default.
func (c *Config) GetInt(key string, defaultValue int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or default.
func (c *Config) GetBool(key string, defaultValue bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// Set updates a configuration value after running its validator, if any.
// Unknown keys are rejected so typos do not silently grow the file.
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, known := c.defaults[key]; !known {
		return fmt.Errorf("config: unknown key: %s", key)
	}
	if validator := getValidator(key); validator != nil {
		normalized, err := validator(key, value, c.defaults[key])
		if err != nil {
			return fmt.Errorf("config: invalid value for %s: %w", key, err)
		}
		value = normalized
	}
	c.values[key] = value
	return nil
}

// Keys returns all known configuration keys, for display.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
