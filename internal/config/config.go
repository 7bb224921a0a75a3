// Package config loads process settings for the command-line applications.
// Values are resolved from defaults, an optional <app>.yaml file, .env files
// and SLADE_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"slade/internal/cmderr"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "SLADE"

// Setting keys.
const (
	KeyLogLevel  = "log_level"
	KeyLogFile   = "log_file"
	KeyDataPath  = "data_path"
	KeyErrorMode = "error_mode"
	KeyOutput    = "output"
)

// Settings holds the resolved configuration of one application run.
// Output is the console mode: auto, plain or json.
type Settings struct {
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	DataPath  string `yaml:"data_path"`
	ErrorMode string `yaml:"error_mode"`
	Output    string `yaml:"output"`
}

// Loader resolves Settings for a named application.
type Loader struct {
	app        string
	workingDir string
	configDir  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithWorkingDir overrides the directory searched for <app>.yaml and .env.
func WithWorkingDir(dir string) Option {
	return func(l *Loader) {
		l.workingDir = dir
	}
}

// WithConfigDir overrides the user configuration directory.
func WithConfigDir(dir string) Option {
	return func(l *Loader) {
		l.configDir = dir
	}
}

// NewLoader creates a loader for app.
func NewLoader(app string, options ...Option) (*Loader, error) {
	if app == "" {
		return nil, cmderr.InvalidArgument("app")
	}

	l := &Loader{app: app}
	for _, opt := range options {
		opt(l)
	}

	if l.workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		l.workingDir = wd
	}
	if l.configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			// No home directory; keep data next to the working directory.
			dir = l.workingDir
		}
		l.configDir = filepath.Join(dir, "slade")
	}
	return l, nil
}

// Load resolves settings for app with the default search paths.
func Load(app string, options ...Option) (*Settings, error) {
	l, err := NewLoader(app, options...)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// ConfigDir returns the user configuration directory for slade.
func (l *Loader) ConfigDir() string {
	return l.configDir
}

// Load reads the configuration sources and returns the merged settings.
func (l *Loader) Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDataPath, filepath.Join(l.configDir, l.app+".data"))
	v.SetDefault(KeyErrorMode, "abort")
	v.SetDefault(KeyOutput, "auto")

	v.SetConfigName(l.app)
	v.SetConfigType("yaml")
	v.AddConfigPath(l.workingDir)
	v.AddConfigPath(l.configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	dotEnv, err := l.readDotEnv()
	if err != nil {
		return nil, err
	}
	if len(dotEnv) > 0 {
		if err := v.MergeConfigMap(dotEnv); err != nil {
			return nil, fmt.Errorf("failed to merge .env values: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	settings := &Settings{
		LogLevel:  v.GetString(KeyLogLevel),
		LogFile:   v.GetString(KeyLogFile),
		DataPath:  v.GetString(KeyDataPath),
		ErrorMode: strings.ToLower(v.GetString(KeyErrorMode)),
		Output:    strings.ToLower(v.GetString(KeyOutput)),
	}

	if settings.DataPath != "" && !filepath.IsAbs(settings.DataPath) {
		settings.DataPath = filepath.Join(l.workingDir, settings.DataPath)
	}
	return settings, nil
}

// readDotEnv collects SLADE_* entries from the config and working directory
// .env files. The working directory file wins on conflicts.
func (l *Loader) readDotEnv() (map[string]interface{}, error) {
	values := make(map[string]interface{})
	for _, dir := range []string{l.configDir, l.workingDir} {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			// Missing .env file is not an error
			continue
		}

		entries, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load .env file %s: %w", path, err)
		}
		for key, value := range entries {
			name, ok := strings.CutPrefix(key, EnvPrefix+"_")
			if !ok {
				continue
			}
			values[strings.ToLower(name)] = value
		}
	}
	return values, nil
}
