// Package config provides configuration management for clickwheel.
// It uses Viper for configuration file handling and supports YAML format.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/dtg01100/clickwheel/internal/errors"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/dtg01100/clickwheel/pkg/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "clickwheel"

// ExportData is the portable subset of the configuration. Auth sessions are
// never exported.
type ExportData struct {
	Version  string        `json:"version" yaml:"version"`
	Device   DeviceConfig  `json:"device" yaml:"device"`
	Service  ServiceConfig `json:"service" yaml:"service"`
	Exported string        `json:"exported" yaml:"exported"`
}

// Config represents the application configuration.
type Config struct {
	Version string        `mapstructure:"version"`
	Device  DeviceConfig  `mapstructure:"device"`
	Service ServiceConfig `mapstructure:"service"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

// DeviceConfig holds the look of the rendered device.
type DeviceConfig struct {
	Theme string `mapstructure:"theme" json:"theme" yaml:"theme"`
	Side  string `mapstructure:"side" json:"side" yaml:"side"`
}

// ServiceConfig holds the streaming service selection.
type ServiceConfig struct {
	Selected string `mapstructure:"selected" json:"selected" yaml:"selected"`
}

// AuthConfig holds one session per streaming service.
type AuthConfig struct {
	Apple   SessionConfig `mapstructure:"apple"`
	Spotify SessionConfig `mapstructure:"spotify"`
}

// SessionConfig is the persisted form of models.Session.
type SessionConfig struct {
	Authorized bool   `mapstructure:"authorized"`
	SessionID  string `mapstructure:"session_id"`
	SignedInAt string `mapstructure:"signed_in_at"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads the configuration from the default config file location.
// If the config file doesn't exist, it returns a new Config with defaults.
func Load() (*Config, error) {
	v := viper.New()

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, apperrors.NewConfigInvalidError("failed to read config file", err)
		}
		return newConfigWithDefaults(configDir), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError("failed to parse config", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the default config file location.
// It writes to a temp file first and renames it over the old file, keeping
// a backup of the previous config.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := utils.EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	backupPath := configPath + ".bak"

	if utils.FileExists(configPath) {
		if err := utils.CopyFile(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	v.Set("version", c.Version)
	v.Set("device.theme", c.Device.Theme)
	v.Set("device.side", c.Device.Side)
	v.Set("service.selected", c.Service.Selected)
	v.Set("auth.apple.authorized", c.Auth.Apple.Authorized)
	v.Set("auth.apple.session_id", c.Auth.Apple.SessionID)
	v.Set("auth.apple.signed_in_at", c.Auth.Apple.SignedInAt)
	v.Set("auth.spotify.authorized", c.Auth.Spotify.Authorized)
	v.Set("auth.spotify.session_id", c.Auth.Spotify.SessionID)
	v.Set("auth.spotify.signed_in_at", c.Auth.Spotify.SignedInAt)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)
	v.Set("log.max_size_mb", c.Log.MaxSizeMB)
	v.Set("log.max_backups", c.Log.MaxBackups)
	v.Set("log.max_age_days", c.Log.MaxAgeDays)
	v.Set("log.compress", c.Log.Compress)

	tempPath := configPath + ".tmp.yaml"

	if err := v.WriteConfigAs(tempPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Validate checks enum fields and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := models.ParseDeviceTheme(c.Device.Theme); err != nil {
		return apperrors.NewConfigInvalidError("device.theme", err)
	}
	if _, err := models.ParseDeviceSide(c.Device.Side); err != nil {
		return apperrors.NewConfigInvalidError("device.side", err)
	}
	if c.Service.Selected != "" {
		if _, err := models.ParseService(c.Service.Selected); err != nil {
			return apperrors.NewConfigInvalidError("service.selected", err)
		}
	}
	return nil
}

// State converts the configuration into settings state. Invalid values fall
// back to their defaults.
func (c *Config) State() models.State {
	state := models.DefaultState()

	if theme, err := models.ParseDeviceTheme(c.Device.Theme); err == nil {
		state.Theme = theme
	}
	if side, err := models.ParseDeviceSide(c.Device.Side); err == nil {
		state.Side = side
	}
	if service, err := models.ParseService(c.Service.Selected); err == nil {
		state.Service = service
	}

	state.Apple = c.Auth.Apple.session()
	state.Spotify = c.Auth.Spotify.session()

	return state
}

// ApplyState copies settings state into the configuration.
func (c *Config) ApplyState(state models.State) {
	c.Device.Theme = string(state.Theme)
	c.Device.Side = string(state.Side)
	c.Service.Selected = string(state.Service)
	c.Auth.Apple = sessionConfig(state.Apple)
	c.Auth.Spotify = sessionConfig(state.Spotify)
}

// Persist applies state and saves the configuration.
func (c *Config) Persist(state models.State) error {
	c.ApplyState(state)
	return c.Save()
}

func (s SessionConfig) session() models.Session {
	session := models.Session{
		Authorized: s.Authorized,
		SessionID:  s.SessionID,
	}
	if t, err := time.Parse(time.RFC3339, s.SignedInAt); err == nil {
		session.SignedInAt = t
	}
	return session
}

func sessionConfig(s models.Session) SessionConfig {
	cfg := SessionConfig{
		Authorized: s.Authorized,
		SessionID:  s.SessionID,
	}
	if !s.SignedInAt.IsZero() {
		cfg.SignedInAt = s.SignedInAt.Format(time.RFC3339)
	}
	return cfg
}

// RestoreFromBackup restores the configuration from the backup file.
func RestoreFromBackup() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	backupPath := configPath + ".bak"

	if !utils.FileExists(backupPath) {
		return apperrors.ErrNoBackup
	}

	if err := os.Rename(backupPath, configPath); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}

	return nil
}

// HasBackup returns true if a backup file exists.
func HasBackup() (bool, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return false, fmt.Errorf("failed to get config directory: %w", err)
	}

	_, err = os.Stat(filepath.Join(configDir, "config.yaml.bak"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	return getConfigDir()
}

// getConfigDir returns the configuration directory path.
var getConfigDir = func() (string, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// setDefaults sets default values in viper.
func setDefaults(v *viper.Viper, configDir string) {
	defaults := newConfigWithDefaults(configDir)

	v.SetDefault("version", defaults.Version)
	v.SetDefault("device.theme", defaults.Device.Theme)
	v.SetDefault("device.side", defaults.Device.Side)
	v.SetDefault("service.selected", "")
	v.SetDefault("auth.apple.authorized", false)
	v.SetDefault("auth.spotify.authorized", false)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("log.compress", defaults.Log.Compress)
}

// newConfigWithDefaults creates a new Config with default values.
func newConfigWithDefaults(configDir string) *Config {
	state := models.DefaultState()
	return &Config{
		Version: "1.0",
		Device: DeviceConfig{
			Theme: string(state.Theme),
			Side:  string(state.Side),
		},
		Log: LogConfig{
			Level:      "INFO",
			File:       filepath.Join(configDir, "clickwheel.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// ExportConfig writes the device and service settings to a file.
// The format follows the file extension (.json, .yaml or .yml).
func (c *Config) ExportConfig(filePath string) error {
	data := ExportData{
		Version:  c.Version,
		Device:   c.Device,
		Service:  c.Service,
		Exported: time.Now().Format(time.RFC3339),
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return apperrors.NewUnsupportedFormatError(ext)
	}

	fileDir := filepath.Dir(filePath)
	if fileDir != "" && fileDir != "." {
		if err := utils.EnsureDir(fileDir); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if ext == ".json" {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// ImportConfig reads device and service settings from a file written by
// ExportConfig. Values are validated before anything is applied.
func (c *Config) ImportConfig(filePath string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return apperrors.NewUnsupportedFormatError(ext)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	var data ExportData
	if ext == ".json" {
		if err := json.NewDecoder(file).Decode(&data); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	} else {
		if err := yaml.NewDecoder(file).Decode(&data); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	}

	if data.Version == "" && data.Device.Theme == "" && data.Device.Side == "" {
		return apperrors.NewConfigInvalidError("no valid configuration data found", nil)
	}

	imported := *c
	if data.Device.Theme != "" {
		imported.Device.Theme = data.Device.Theme
	}
	if data.Device.Side != "" {
		imported.Device.Side = data.Device.Side
	}
	imported.Service = data.Service

	if err := imported.Validate(); err != nil {
		return err
	}

	c.Device = imported.Device
	c.Service = imported.Service
	return nil
}
