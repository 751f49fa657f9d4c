package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/castroluiz/plastiq/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config holds all plastiq configuration.
type Config struct {
	Database  DatabaseConfig `yaml:"database"`
	Logging   LoggingConfig  `yaml:"logging"`
	Materials []string       `yaml:"materials"`
	Shifts    []ShiftConfig  `yaml:"shifts"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the use-case log. An empty file disables it.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ShiftConfig is one production shift window in "HH:MM" clock times.
type ShiftConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Default returns the built-in configuration: DB under ~/.plastiq, the
// standard material catalog, and the plant's fixed three-shift schedule.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".plastiq", "plastiq.db"),
		},
		Logging:   LoggingConfig{Level: "info"},
		Materials: []string{"PE", "PS", "SAN", "PP"},
		Shifts: []ShiftConfig{
			{Name: "A", Start: "05:40", End: "14:00"},
			{Name: "B", Start: "14:00", End: "22:20"},
			{Name: "C", Start: "22:20", End: "05:40"},
		},
	}
}

// Load reads configuration from path, layering it over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location, honoring the
// PLASTIQ_CONFIG environment variable.
func DefaultPath() string {
	if p := os.Getenv("PLASTIQ_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".plastiq", "config.yaml")
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Shifts) == 0 {
		return fmt.Errorf("at least one shift must be configured")
	}
	for _, s := range c.Shifts {
		if _, err := parseClock(s.Start); err != nil {
			return fmt.Errorf("shift %s: %w", s.Name, err)
		}
		if _, err := parseClock(s.End); err != nil {
			return fmt.Errorf("shift %s: %w", s.Name, err)
		}
	}
	return nil
}

// ShiftWindows converts the configured shifts into domain windows.
// Call only after Load, which validates the clock strings.
func (c *Config) ShiftWindows() []domain.ShiftWindow {
	windows := make([]domain.ShiftWindow, 0, len(c.Shifts))
	for _, s := range c.Shifts {
		start, err := parseClock(s.Start)
		if err != nil {
			continue
		}
		end, err := parseClock(s.End)
		if err != nil {
			continue
		}
		windows = append(windows, domain.ShiftWindow{
			Shift:    domain.Shift(s.Name),
			StartMin: start,
			EndMin:   end,
		})
	}
	return windows
}

// MaterialSet returns the material catalog as a lookup set.
func (c *Config) MaterialSet() map[string]bool {
	set := make(map[string]bool, len(c.Materials))
	for _, m := range c.Materials {
		set[strings.ToUpper(strings.TrimSpace(m))] = true
	}
	return set
}

// parseClock converts "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock time %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock time %q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q has invalid minutes", s)
	}
	return h*60 + m, nil
}
