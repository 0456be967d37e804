// config.go: settings struct and functions to load and save the application configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for application log files.
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // path to log file
	MaxSize    int    // maximum log file size in megabytes before rotation
	MaxBackups int    // number of rotated log files to keep
	MaxAge     int    // maximum age of rotated log files in days
}

// ClassifierSettings holds the per-category confidence thresholds used to
// decide the event type of a photo. The animal threshold is intentionally
// lower than human/vehicle, low confidence animal detections are rarely
// false positives on this terrain.
type ClassifierSettings struct {
	AnimalThreshold  float64 // minimum confidence for an animal detection to count
	HumanThreshold   float64 // minimum confidence for a human detection to count
	VehicleThreshold float64 // minimum confidence for a vehicle detection to count
}

// SpeciesSettings holds the tiered thresholds for species label selection.
type SpeciesSettings struct {
	StrongThreshold   float64 // candidates at or above this are trusted outright
	FallbackThreshold float64 // candidates at or above this are used when nothing is strong
	SuppressDomestic  bool    // map domestic dog/cat labels to Other
}

// EventsSettings holds the temporal clustering tunables.
type EventsSettings struct {
	GapMinutes float64 // gap larger than this splits two photos into separate events
	MaxMembers int     // safety cap on photos per event, earliest kept
}

// SiteSettings describes the camera site, used for sun and moon calculations.
type SiteSettings struct {
	Latitude  float64
	Longitude float64
	TimeZone  string // IANA zone the camera stamps are written in
}

// FTPSettings describes an FTP drop where cameras upload photos.
type FTPSettings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	BasePath string // remote directory containing per-camera subdirectories
	Timeout  int    // connection timeout in seconds
}

// SpyPointSettings describes the vendor API used to pull photos directly.
type SpyPointSettings struct {
	Enabled      bool
	BaseURL      string
	Username     string
	Password     string
	Cameras      map[string]string // camera id -> friendly folder name
	MaxPerRun    int               // cap on downloads across all cameras per run
	SkipIfNoDate bool              // skip photos without a parseable date to prevent backfill
}

// Settings contains all runtime configuration.
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string    // node name, identifies this installation in logs
		Log  LogConfig // log file settings
	}

	Site SiteSettings

	Input struct {
		ImagesDir   string // directory tree of camera photos, one subdirectory per camera
		Predictions string // path to classifier predictions JSON
		Stamps      string // path to OCR stamp data CSV
	}

	Classifier ClassifierSettings
	Species    SpeciesSettings
	Events     EventsSettings

	Output struct {
		File struct {
			Enabled        bool   // true to write flat file output
			Path           string // directory for observations CSV/TSV
			EventsJSON     string // path to events JSON output
			UpdateExisting bool   // true to overwrite rows already present in the table
		}
		SQLite struct {
			Enabled bool   // true to enable sqlite output
			Path    string // path to sqlite database
		}
	}

	Fetch struct {
		FTP      FTPSettings
		SpyPoint SpyPointSettings
	}
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into a new
// Settings instance and validates it.
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

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
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

	// Set default values for each configuration parameter, defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the config file search paths in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting user home directory: %w", err)
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", "trailcam"),
	}, nil
}

// createDefaultConfig creates a default config file and writes it to the default config path
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[len(configPaths)-1], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading embedded config file: %v", err)
	}
	return string(data)
}

// GetSettings returns the current settings instance.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing it if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// SaveYAMLConfig writes the settings to the given path as YAML. The write is
// done through a temporary file so a crash cannot leave a half-written config.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary config file: %w", err)
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		os.Remove(tempName)
		return fmt.Errorf("error writing temporary config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error closing temporary config file: %w", err)
	}

	if err := os.Rename(tempName, configPath); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}

// Location resolves the configured camera site timezone.
func (s *Settings) Location() (*time.Location, error) {
	name := s.Site.TimeZone
	if name == "" {
		name = "America/Chicago"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("error loading timezone %q: %w", name, err)
	}
	return loc, nil
}
