package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "netstorctl"

	// KeyCollectionsFile points at the collections YAML file.
	KeyCollectionsFile = "collections_file"
	// KeyLogLevel sets the default log level (debug, info, warn, error).
	KeyLogLevel = "log_level"
)

// knownKeys is the closed set of tool settings.
var knownKeys = []string{KeyCollectionsFile, KeyLogLevel}

// Manager owns the tool's settings file.
type Manager struct {
	v    *viper.Viper
	path string
}

func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving user config directory: %w", err)
	}

	dir := filepath.Join(configDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return NewManagerAt(filepath.Join(dir, ConfigFileName))
}

// NewManagerAt loads (or initializes) the settings file at an explicit path.
func NewManagerAt(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCollectionsFile, filepath.Join(filepath.Dir(path), "collections.yaml"))

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means nothing has been set yet.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return &Manager{v: v, path: path}, nil
}

func isKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (m *Manager) SetValue(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q. Known keys: %v", key, knownKeys)
	}
	m.v.Set(key, value)
	return m.save()
}

func (m *Manager) GetValue(key string) (string, bool) {
	value := m.v.GetString(key)
	return value, value != ""
}

// DeleteValue clears a key. Reports whether anything was set.
func (m *Manager) DeleteValue(key string) (bool, error) {
	if !isKnownKey(key) {
		return false, fmt.Errorf("unknown config key %q", key)
	}
	if m.v.GetString(key) == "" {
		return false, nil
	}
	m.v.Set(key, "")
	if err := m.save(); err != nil {
		return false, err
	}
	return true, nil
}

// GetAllSettings returns the known settings with their effective values,
// defaults included.
func (m *Manager) GetAllSettings() map[string]string {
	settings := make(map[string]string, len(knownKeys))
	for _, key := range knownKeys {
		settings[key] = m.v.GetString(key)
	}
	return settings
}

// Keys returns the known setting names, sorted.
func (m *Manager) Keys() []string {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)
	return keys
}

func (m *Manager) CollectionsFile() string {
	return m.v.GetString(KeyCollectionsFile)
}

func (m *Manager) LogLevel() slog.Level {
	switch strings.ToLower(m.v.GetString(KeyLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (m *Manager) save() error {
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
