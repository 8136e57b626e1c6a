package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// MOTO_WINDOW_WIDTH, MOTO_ENGINE_HEADLESS, ...
	v.SetEnvPrefix("MOTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "MOTO_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind MOTO_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "MOTO_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind MOTO_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.decode()
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, normalizes and validates. Must hold m.mu for write.
func (m *Manager) decode() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = config
	return nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch strings.ToLower(config.Appearance.ColorScheme) {
	case ThemePreferDark, "dark":
		config.Appearance.ColorScheme = ThemePreferDark
	case ThemePreferLight, "light":
		config.Appearance.ColorScheme = ThemePreferLight
	default:
		config.Appearance.ColorScheme = ThemeDefault
	}

	switch RestartPolicy(strings.ToLower(string(config.Engine.RestartPolicy))) {
	case RestartAlways:
		config.Engine.RestartPolicy = RestartAlways
	case RestartNever:
		config.Engine.RestartPolicy = RestartNever
	default:
		config.Engine.RestartPolicy = RestartPrompt
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Permissions.Default = strings.ToLower(strings.TrimSpace(config.Permissions.Default))
	config.Engine.Path = strings.TrimSpace(config.Engine.Path)
	if config.Shortcuts == nil {
		config.Shortcuts = map[string][]string{}
	}
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if err := WriteSchemaFile(filepath.Join(filepath.Dir(configFile), schemaName)); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.chrome_height", defaults.Window.ChromeHeight)
	m.viper.SetDefault("window.frame_interval_ms", defaults.Window.FrameIntervalMs)
	m.viper.SetDefault("window.hidden_frame_interval_ms", defaults.Window.HiddenFrameIntervalMs)

	m.viper.SetDefault("engine.path", defaults.Engine.Path)
	m.viper.SetDefault("engine.remote_url", defaults.Engine.RemoteURL)
	m.viper.SetDefault("engine.headless", defaults.Engine.Headless)
	m.viper.SetDefault("engine.allow_popups", defaults.Engine.AllowPopups)
	m.viper.SetDefault("engine.restart_policy", string(defaults.Engine.RestartPolicy))
	m.viper.SetDefault("engine.flags", defaults.Engine.Flags)
	m.viper.SetDefault("engine.dispatch_timeout_ms", defaults.Engine.DispatchTimeoutMs)

	m.viper.SetDefault("permissions.default", defaults.Permissions.Default)
	m.viper.SetDefault("permissions.overrides", defaults.Permissions.Overrides)

	m.viper.SetDefault("appearance.color_scheme", defaults.Appearance.ColorScheme)
	m.viper.SetDefault("shortcuts", defaults.Shortcuts)
	m.viper.SetDefault("homepage", defaults.Homepage)
	m.viper.SetDefault("search_engine", defaults.SearchEngine)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)

	m.viper.SetDefault("history.max_entries", defaults.History.MaxEntries)
}

var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
