package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Music    MusicConfig    `mapstructure:"music"`
	Printer  PrinterConfig  `mapstructure:"printer"`
	Skyblock SkyblockConfig `mapstructure:"skyblock"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// MusicConfig holds the Mopidy/MPD backend configuration. An empty
// host disables the backend: the worker publishes mock data forever.
type MusicConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	PollMs int    `mapstructure:"poll_ms"`
}

// Interval returns the poll interval as a duration.
func (c MusicConfig) Interval() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// Enabled reports whether a backend address is configured.
func (c MusicConfig) Enabled() bool { return c.Host != "" }

// PrinterConfig holds the Klipper/Moonraker backend configuration.
type PrinterConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	PollMs int    `mapstructure:"poll_ms"`
}

// Interval returns the poll interval as a duration.
func (c PrinterConfig) Interval() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// Enabled reports whether a backend address is configured.
func (c PrinterConfig) Enabled() bool { return c.Host != "" }

// BaseURL returns the Moonraker API base URL.
func (c PrinterConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// SkyblockConfig holds the derived-calendar constants and the sidebar
// refresh rate.
type SkyblockConfig struct {
	EpochUnix          int64  `mapstructure:"epoch_unix"`
	RealMinPerDay      int    `mapstructure:"real_min_per_day"`
	DaysPerMonth       int    `mapstructure:"days_per_month"`
	HoursPerDay        int    `mapstructure:"hours_per_day"`
	FreeWillCycleHours int    `mapstructure:"free_will_cycle_hours"`
	TickMs             int    `mapstructure:"tick_ms"`
	AnchorFile         string `mapstructure:"anchor_file"`
}

// Tick returns the sidebar refresh interval.
func (c SkyblockConfig) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// UIConfig holds presentation configuration.
type UIConfig struct {
	StateFile      string `mapstructure:"state_file"`
	SidebarVisible bool   `mapstructure:"sidebar_visible"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Music: MusicConfig{
			Host:   "localhost",
			Port:   6600,
			PollMs: 2000,
		},
		Printer: PrinterConfig{
			Host:   "192.168.1.100",
			Port:   7125,
			PollMs: 5000,
		},
		Skyblock: SkyblockConfig{
			EpochUnix:          1560275700,
			RealMinPerDay:      20,
			DaysPerMonth:       31,
			HoursPerDay:        24,
			FreeWillCycleHours: 96,
			TickMs:             500,
			AnchorFile:         filepath.Join(defaultDataPath(), "fw_anchor"),
		},
		UI: UIConfig{
			StateFile:      filepath.Join(defaultDataPath(), "ui.db"),
			SidebarVisible: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "skydeck.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skydeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "skydeck")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skydeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "skydeck")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("SKYDECK")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("music.host", cfg.Music.Host)
	viper.Set("music.port", cfg.Music.Port)
	viper.Set("music.poll_ms", cfg.Music.PollMs)

	viper.Set("printer.host", cfg.Printer.Host)
	viper.Set("printer.port", cfg.Printer.Port)
	viper.Set("printer.poll_ms", cfg.Printer.PollMs)

	viper.Set("skyblock.epoch_unix", cfg.Skyblock.EpochUnix)
	viper.Set("skyblock.real_min_per_day", cfg.Skyblock.RealMinPerDay)
	viper.Set("skyblock.days_per_month", cfg.Skyblock.DaysPerMonth)
	viper.Set("skyblock.hours_per_day", cfg.Skyblock.HoursPerDay)
	viper.Set("skyblock.free_will_cycle_hours", cfg.Skyblock.FreeWillCycleHours)
	viper.Set("skyblock.tick_ms", cfg.Skyblock.TickMs)
	viper.Set("skyblock.anchor_file", cfg.Skyblock.AnchorFile)

	viper.Set("ui.state_file", cfg.UI.StateFile)
	viper.Set("ui.sidebar_visible", cfg.UI.SidebarVisible)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
