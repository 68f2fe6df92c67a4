// Package config loads shopplan settings from defaults, an optional YAML
// file, a .env file and SHOPPLAN_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
)

// Config holds runtime settings
type Config struct {
	Timezone           string  `yaml:"timezone"`
	WorkdayStart       string  `yaml:"workday_start"`
	WorkdayEnd         string  `yaml:"workday_end"`
	Capacity           float64 `yaml:"capacity"`
	WorkingDaysPerYear int     `yaml:"working_days_per_year"`
	OrderIntervalDays  float64 `yaml:"order_interval_days"`
	DBPath             string  `yaml:"db_path"`
	DatabaseURL        string  `yaml:"database_url"`
	LogLevel           string  `yaml:"log_level"`
	LogDir             string  `yaml:"log_dir"`
	Debug              bool    `yaml:"debug"`
}

// Default returns the built-in settings
func Default() *Config {
	dir := dataDir()
	return &Config{
		Timezone:           "Local",
		WorkdayStart:       "07:00",
		WorkdayEnd:         "15:00",
		Capacity:           10,
		WorkingDaysPerYear: 365,
		OrderIntervalDays:  30,
		DBPath:             filepath.Join(dir, "shopplan.db"),
		LogLevel:           "warn",
		LogDir:             dir,
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopplan"
	}
	return filepath.Join(home, ".shopplan")
}

// Load builds the configuration. An empty path falls back to
// SHOPPLAN_CONFIG; with neither set no YAML file is read.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("SHOPPLAN_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Timezone, "SHOPPLAN_TIMEZONE")
	setString(&c.WorkdayStart, "SHOPPLAN_WORKDAY_START")
	setString(&c.WorkdayEnd, "SHOPPLAN_WORKDAY_END")
	setString(&c.DBPath, "SHOPPLAN_DB")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.LogLevel, "SHOPPLAN_LOG_LEVEL")
	setString(&c.LogDir, "SHOPPLAN_LOG_DIR")

	if v := os.Getenv("SHOPPLAN_CAPACITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SHOPPLAN_CAPACITY: invalid number %q", v)
		}
		c.Capacity = f
	}
	if v := os.Getenv("SHOPPLAN_WORKING_DAYS_PER_YEAR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHOPPLAN_WORKING_DAYS_PER_YEAR: invalid integer %q", v)
		}
		c.WorkingDaysPerYear = n
	}
	if v := os.Getenv("SHOPPLAN_ORDER_INTERVAL_DAYS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SHOPPLAN_ORDER_INTERVAL_DAYS: invalid number %q", v)
		}
		c.OrderIntervalDays = f
	}
	if v := os.Getenv("SHOPPLAN_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SHOPPLAN_DEBUG: invalid boolean %q", v)
		}
		c.Debug = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, _, err := c.WorkingWindow(); err != nil {
		return err
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %g", c.Capacity)
	}
	if c.WorkingDaysPerYear <= 0 || c.WorkingDaysPerYear > 366 {
		return fmt.Errorf("working days per year must be between 1 and 366, got %d", c.WorkingDaysPerYear)
	}
	if c.OrderIntervalDays <= 0 {
		return fmt.Errorf("order interval must be positive, got %g", c.OrderIntervalDays)
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WorkingWindow parses the daily working window
func (c *Config) WorkingWindow() (start, end datetime.TimeOfDay, err error) {
	start, err = datetime.ParseTimeOfDay(c.WorkdayStart)
	if err != nil {
		return start, end, fmt.Errorf("workday start: %w", err)
	}
	end, err = datetime.ParseTimeOfDay(c.WorkdayEnd)
	if err != nil {
		return start, end, fmt.Errorf("workday end: %w", err)
	}
	if end.Minutes() <= start.Minutes() {
		return start, end, fmt.Errorf("workday ends at %s before it starts at %s", end, start)
	}
	return start, end, nil
}
