package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "multicloud"
	EnvPrefix      = "MULTICLOUD"
)

// NamingConfig overrides the appName length bound for one provider. The exact
// bound differs per platform, so it is configuration rather than a constant.
type NamingConfig struct {
	MaxLength int `mapstructure:"maxlength"`
}

type AWSConfig struct {
	Region string       `mapstructure:"region"`
	Naming NamingConfig `mapstructure:"naming"`
}

type AzureConfig struct {
	Location string       `mapstructure:"location"`
	Naming   NamingConfig `mapstructure:"naming"`
}

type GCPConfig struct {
	Project string       `mapstructure:"project"`
	Region  string       `mapstructure:"region"`
	Zone    string       `mapstructure:"zone"`
	Naming  NamingConfig `mapstructure:"naming"`
}

type APIConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds the persisted per-provider defaults. Deployment flags always
// take precedence over these values.
type Config struct {
	AWS   AWSConfig   `mapstructure:"aws"`
	Azure AzureConfig `mapstructure:"azure"`
	GCP   GCPConfig   `mapstructure:"gcp"`
	API   APIConfig   `mapstructure:"api"`
}

var knownKeys = map[string]bool{
	"aws.region":             true,
	"aws.naming.maxlength":   true,
	"azure.location":         true,
	"azure.naming.maxlength": true,
	"gcp.project":            true,
	"gcp.region":             true,
	"gcp.zone":               true,
	"gcp.naming.maxlength":   true,
	"api.addr":               true,
}

// KnownKeys returns the settable configuration keys, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigManager reads and writes the configuration file, with environment
// overrides via MULTICLOUD_* variables.
type ConfigManager struct {
	v    *viper.Viper
	path string
}

func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	return NewConfigManagerAt(filepath.Join(homeDir, ".config", ConfigDirName, ConfigFileName))
}

func NewConfigManagerAt(path string) (*ConfigManager, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return &ConfigManager{v: v, path: path}, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := emptyViper(path)

	if err := v.ReadInConfig(); err != nil {
		// A missing file means no configuration yet, not a failure
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return v, nil
}

func emptyViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig decodes the current settings into a typed Config.
func (m *ConfigManager) LoadConfig() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	key = strings.ToLower(key)
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q. Known keys: %s", key, strings.Join(KnownKeys(), ", "))
	}

	if strings.HasSuffix(key, ".naming.maxlength") {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("config key %q requires a positive integer, got %q", key, value)
		}
		m.v.Set(key, n)
	} else {
		m.v.Set(key, value)
	}

	return m.write()
}

func (m *ConfigManager) GetValue(key string) (string, bool) {
	key = strings.ToLower(key)
	if !m.v.IsSet(key) {
		return "", false
	}
	return m.v.GetString(key), true
}

func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	key = strings.ToLower(key)
	if !knownKeys[key] {
		return false, fmt.Errorf("unknown config key %q", key)
	}
	if !m.v.IsSet(key) || m.v.GetString(key) == "" {
		return false, nil
	}

	// Viper cannot unset a key, so rebuild the settings map without it
	settings := m.v.AllSettings()
	deleteNested(settings, strings.Split(key, "."))

	fresh := emptyViper(m.path)
	if err := fresh.MergeConfigMap(settings); err != nil {
		return false, fmt.Errorf("rebuilding configuration: %w", err)
	}

	m.v = fresh
	if err := m.write(); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) GetAllSettings() map[string]interface{} {
	return m.v.AllSettings()
}

func (m *ConfigManager) write() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func deleteNested(settings map[string]interface{}, path []string) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		delete(settings, path[0])
		return
	}
	next, ok := settings[path[0]].(map[string]interface{})
	if !ok {
		return
	}
	deleteNested(next, path[1:])
	if len(next) == 0 {
		delete(settings, path[0])
	}
}
