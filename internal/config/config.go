package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Settings captures the battery tunables read from the settings file.
type Settings struct {
	UsageHours        int
	CorrectionPercent int
	HealthPercent     int
}

const (
	defaultConfigPath = "setting.ini"

	DefaultUsageHours        = 18
	DefaultCorrectionPercent = 95
	DefaultHealthPercent     = 100
)

// Defaults returns the settings written when no settings file exists.
func Defaults() Settings {
	return Settings{
		UsageHours:        DefaultUsageHours,
		CorrectionPercent: DefaultCorrectionPercent,
		HealthPercent:     DefaultHealthPercent,
	}
}

const (
	sectionBattery = "Battery"

	keyUsageHour         = "batteryUsageHour"
	keyCorrectionPercent = "batteryUsageCorrectionPercentage"
	keyHealthPercent     = "batteryHealthPercentage"
)

// Load reads the settings file, creating it with defaults when missing.
func Load(path string) (Settings, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Settings{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Defaults()
			if err := Save(resolved, cfg); err != nil {
				return Settings{}, err
			}
			return cfg, nil
		}
		return Settings{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	doc, err := ini.Load(bytes)
	if err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	section, err := doc.GetSection(sectionBattery)
	if err != nil {
		return Settings{}, fmt.Errorf("parse config: missing section %s", sectionBattery)
	}

	var cfg Settings
	for _, field := range []struct {
		key string
		dst *int
	}{
		{keyUsageHour, &cfg.UsageHours},
		{keyCorrectionPercent, &cfg.CorrectionPercent},
		{keyHealthPercent, &cfg.HealthPercent},
	} {
		if !section.HasKey(field.key) {
			return Settings{}, missingKey(field.key)
		}
		// Base 10 so "018" reads as 18, not octal.
		n, err := strconv.Atoi(strings.TrimSpace(section.Key(field.key).String()))
		if err != nil {
			return Settings{}, fmt.Errorf("parse config: %s.%s: %w", sectionBattery, field.key, err)
		}
		*field.dst = n
	}
	return cfg, nil
}

// Save writes settings to path in the [Battery] key-value layout.
func Save(path string, s Settings) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file := ini.Empty()
	section, err := file.NewSection(sectionBattery)
	if err != nil {
		return fmt.Errorf("build config: %w", err)
	}
	for _, kv := range []struct {
		key   string
		value int
	}{
		{keyUsageHour, s.UsageHours},
		{keyCorrectionPercent, s.CorrectionPercent},
		{keyHealthPercent, s.HealthPercent},
	} {
		if _, err := section.NewKey(kv.key, strconv.Itoa(kv.value)); err != nil {
			return fmt.Errorf("build config: %w", err)
		}
	}

	if err := file.SaveTo(resolved); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolvePath returns the absolute settings path, defaulting to setting.ini
// in the working directory.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func missingKey(name string) error {
	return fmt.Errorf("parse config: missing key %s.%s", sectionBattery, name)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
