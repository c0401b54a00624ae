// config.go: settings struct for the thesaurus loader and functions to load and save them.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/geosemantic/skosload/internal/errors"
)

const osWindows = "windows"

// ImportSettings holds the per-run import parameters, populated from
// command-line flags.
type ImportSettings struct {
	Name        string   // identifier for the thesaurus in the target instance
	File        string   // full path to the thesaurus file in RDF format
	Format      string   // rdf serialization: "ttl", "nt", "xml" or "" for auto
	Title       string   // title override for the thesaurus record
	Description string   // description override for the thesaurus record
	SchemeURI   string   // pin the concept scheme to this URI, empty to auto-select
	DryRun      bool     // parse and report only, no database writes
	Strict      bool     // anomalies and name collisions become fatal
	LowerCase   bool     // store URIs, labels and language tags lower-cased
	SkosXL      bool     // resolve SKOS-XL reified labels in addition to plain SKOS
	DefaultLang string   // language used for title selection and keyword fallback label
	Languages   []string // keep only these language tags, empty keeps all
	SampleSize  int      // number of sample records printed in dry-run mode
}

// OutputSettings selects and configures the target database.
type OutputSettings struct {
	SQLite struct {
		Enabled bool   // true to enable sqlite output
		Path    string // path to sqlite database
	}

	MySQL struct {
		Enabled  bool   // true to enable mysql output
		Username string // username for mysql database
		Password string // password for mysql database
		Database string // database name for mysql database
		Host     string // host for mysql database
		Port     string // port for mysql database
	}
}

// LogSettings configures the rotated import log file.
type LogSettings struct {
	Enabled bool   // true to write a log file in addition to stderr
	Path    string // path to the log file
}

// Settings is the root configuration object.
type Settings struct {
	Debug bool // enable debug logging

	Log    LogSettings
	Output OutputSettings
	Import ImportSettings `mapstructure:"-" yaml:"-"` // flag-only, never persisted
}

var (
	settingsInstance *Settings
	settingsMutex    sync.Mutex
)

// Load reads the configuration into a Settings struct, creating a default
// config file on first run.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.Lock()
	instance := settingsInstance
	settingsMutex.Unlock()
	if instance != nil {
		return instance
	}
	s, err := Load()
	if err != nil {
		return &Settings{}
	}
	return s
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return createDefaultConfig(configPaths[0])
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes the current defaults as a config file so the
// operator has something to edit.
func createDefaultConfig(dir string) error {
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	defaults := &Settings{}
	if err := viper.Unmarshal(defaults); err != nil {
		return fmt.Errorf("error unmarshaling defaults: %w", err)
	}

	if err := SaveYAMLConfig(configPath, defaults); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// SaveYAMLConfig serializes settings to the given path.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// GetDefaultConfigPaths returns the OS specific configuration directories,
// most preferred first.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	var configPaths []string
	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			filepath.Join(homeDir, "AppData", "Roaming", "skosload"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "skosload"),
			"/etc/skosload",
		}
	}

	return configPaths, nil
}
