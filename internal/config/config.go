package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bbext-labs/bbext/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized setting keys. Flag names match the keys so BindFlags can bind
// them one to one.
const (
	KeyDistPath         = "dist-path"
	KeyWidgetPattern    = "widget-name-pattern"
	KeyProject          = "project"
	KeyExtensionSlots   = "enable-extension-slots"
	KeyMarker           = "marker"
	KeyLibsRoot         = "libs-root"
	KeyGenerator        = "generator"
	KeyGeneratorCommand = "generator-command"
)

// Defaults for the keys above.
const (
	DefaultDistPath         = "node_modules/@backbase"
	DefaultWidgetPattern    = "-widget-ang"
	DefaultMarker           = "bbCustomizable"
	DefaultLibsRoot         = "libs"
	DefaultGenerator        = "ng"
	DefaultGeneratorCommand = "ng"
)

// Settings is a resolved snapshot of the configuration for one run.
type Settings struct {
	DistPath         string
	WidgetPattern    string
	Project          string
	ExtensionSlots   bool
	Marker           string
	LibsRoot         string
	Generator        string
	GeneratorCommand string
}

// Dir returns the path to the config directory (~/.bbext/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bbext/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyDistPath, DefaultDistPath)
	viper.SetDefault(KeyWidgetPattern, DefaultWidgetPattern)
	viper.SetDefault(KeyExtensionSlots, false)
	viper.SetDefault(KeyMarker, DefaultMarker)
	viper.SetDefault(KeyLibsRoot, DefaultLibsRoot)
	viper.SetDefault(KeyGenerator, DefaultGenerator)
	viper.SetDefault(KeyGeneratorCommand, DefaultGeneratorCommand)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// BindFlags binds every flag in fs whose name is a known key, so an explicitly
// set flag overrides env and file values.
func BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyDistPath, KeyWidgetPattern, KeyProject, KeyExtensionSlots,
		KeyMarker, KeyLibsRoot, KeyGenerator, KeyGeneratorCommand,
	} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", key, err)
		}
	}
	return nil
}

// Current returns the resolved settings.
func Current() Settings {
	return Settings{
		DistPath:         viper.GetString(KeyDistPath),
		WidgetPattern:    viper.GetString(KeyWidgetPattern),
		Project:          viper.GetString(KeyProject),
		ExtensionSlots:   viper.GetBool(KeyExtensionSlots),
		Marker:           viper.GetString(KeyMarker),
		LibsRoot:         viper.GetString(KeyLibsRoot),
		Generator:        viper.GetString(KeyGenerator),
		GeneratorCommand: viper.GetString(KeyGeneratorCommand),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
