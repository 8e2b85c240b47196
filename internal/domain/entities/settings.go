package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultSyncJobs = 4

// Settings is the workspace configuration for multirepo.
type Settings struct {
	Manifest ManifestSettings `yaml:"manifest"`
	Root     string           `yaml:"root"` // Workspace root; defaults to the settings file directory
	Sync     SyncSettings     `yaml:"sync"`
}

// ManifestSettings tells where the manifest document lives.
type ManifestSettings struct {
	Location string `yaml:"location"` // Local path or http(s) URL
	Format   string `yaml:"format"`   // "xml", "yaml", "toml", "hcl"; inferred from the extension when empty
}

// SyncSettings holds options of the sync command.
type SyncSettings struct {
	Jobs int `yaml:"jobs"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and validates a settings file, expanding environment variables.
// Relative manifest paths and roots are resolved against the file's directory.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Manifest.Location = expandEnv(settings.Manifest.Location)
	settings.Root = expandEnv(settings.Root)

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory of %q: %w", path, err)
	}
	if settings.Root == "" {
		settings.Root = baseDir
	} else if !filepath.IsAbs(settings.Root) {
		settings.Root = filepath.Join(baseDir, settings.Root)
	}
	if settings.Manifest.Location != "" && !IsRemoteLocation(settings.Manifest.Location) &&
		!filepath.IsAbs(settings.Manifest.Location) {
		settings.Manifest.Location = filepath.Join(baseDir, settings.Manifest.Location)
	}

	if validateErr := validateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a settings file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".multirepo.yaml",
		".multirepo.yml",
		"multirepo.yaml",
		"multirepo.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// SyncJobs returns the number of parallel sync jobs, falling back to the default.
func (s *Settings) SyncJobs() int {
	if s.Sync.Jobs > 0 {
		return s.Sync.Jobs
	}
	return defaultSyncJobs
}

// IsRemoteLocation reports whether a manifest location must be fetched over HTTP.
func IsRemoteLocation(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// expandEnv expands ${ENV_VAR} references, warning about unset variables.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validateSettings checks for required configuration values.
func validateSettings(settings *Settings) error {
	if settings.Manifest.Location == "" {
		return errors.New("manifest.location is required")
	}
	if settings.Sync.Jobs < 0 {
		return fmt.Errorf("sync.jobs must not be negative, got %d", settings.Sync.Jobs)
	}
	return nil
}
