package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "codesense-config"
	envPrefix  = "CODESENSE"
)

var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLevel        = errors.New("invalid explanation level")
)

// Config represents the structure of the configuration file
type Config struct {
	Version          string `mapstructure:"version"`
	Theme            string `mapstructure:"theme"`
	OutputFormat     string `mapstructure:"output_format"`
	Language         string `mapstructure:"language"`
	ExplanationLevel string `mapstructure:"explanation_level"`
	EnableCache      bool   `mapstructure:"enable_cache"`
	CacheDir         string `mapstructure:"cache_dir"`
	MemoryCacheSize  int    `mapstructure:"memory_cache_size"`
	LogLevel         string `mapstructure:"log_level"`
	Workers          int    `mapstructure:"workers"`
	MaxFileSize      int64  `mapstructure:"max_file_size"`
	MaxPromptTokens  int    `mapstructure:"max_prompt_tokens"`

	// ConfigFile is the file the values were read from, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:          "1.0.0",
	Theme:            "dracula",
	OutputFormat:     "text",
	Language:         string(models.Auto),
	ExplanationLevel: string(models.Intermediate),
	EnableCache:      true,
	CacheDir:         ".cache",
	MemoryCacheSize:  512,
	LogLevel:         "warn",
	Workers:          0,
	MaxFileSize:      100 * 1024,
	MaxPromptTokens:  4096,
}

var outputFormats = map[string]bool{"text": true, "json": true, "yaml": true}

var logLevels = map[string]bool{
	"disabled": true, "trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from .env, file, environment
// variables and flags (in increasing precedence) and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	// A missing .env is not an error
	_ = godotenv.Load(filepath.Join(cwd, ".env"))

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	config.ConfigFile = v.ConfigFileUsed()

	if config.CacheDir != "" && !filepath.IsAbs(config.CacheDir) {
		config.CacheDir = filepath.Join(cwd, config.CacheDir)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values no command could act on.
func (c *Config) Validate() error {
	c.OutputFormat = strings.ToLower(c.OutputFormat)
	if !outputFormats[c.OutputFormat] {
		return fmt.Errorf("%w: %q (expected text, json or yaml)", ErrInvalidOutputFormat, c.OutputFormat)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if _, ok := models.ParseExplanationLevel(c.ExplanationLevel); !ok {
		return fmt.Errorf("%w: %q (expected beginner, intermediate or advanced)", ErrInvalidLevel, c.ExplanationLevel)
	}

	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("output_format", DefaultConfig.OutputFormat)
	v.SetDefault("language", DefaultConfig.Language)
	v.SetDefault("explanation_level", DefaultConfig.ExplanationLevel)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("cache_dir", DefaultConfig.CacheDir)
	v.SetDefault("memory_cache_size", DefaultConfig.MemoryCacheSize)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("workers", DefaultConfig.Workers)
	v.SetDefault("max_file_size", DefaultConfig.MaxFileSize)
	v.SetDefault("max_prompt_tokens", DefaultConfig.MaxPromptTokens)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("theme", "CODESENSE_THEME")
	_ = v.BindEnv("output_format", "CODESENSE_OUTPUT_FORMAT")
	_ = v.BindEnv("language", "CODESENSE_LANGUAGE")
	_ = v.BindEnv("explanation_level", "CODESENSE_EXPLANATION_LEVEL")
	_ = v.BindEnv("enable_cache", "CODESENSE_ENABLE_CACHE")
	_ = v.BindEnv("cache_dir", "CODESENSE_CACHE_DIR")
	_ = v.BindEnv("memory_cache_size", "CODESENSE_MEMORY_CACHE_SIZE")
	_ = v.BindEnv("log_level", "CODESENSE_LOG_LEVEL")
	_ = v.BindEnv("workers", "CODESENSE_WORKERS")
	_ = v.BindEnv("max_file_size", "CODESENSE_MAX_FILE_SIZE")
	_ = v.BindEnv("max_prompt_tokens", "CODESENSE_MAX_PROMPT_TOKENS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	for key, name := range map[string]string{
		"theme":         "theme",
		"output_format": "format",
		"enable_cache":  "enable_cache",
		"cache_dir":     "cache_dir",
		"log_level":     "log_level",
	} {
		if flag := flags.Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the chroma theme used to highlight snippets. (e.g., 'dracula', 'monokai', 'github')")
	rootCmd.PersistentFlags().String("format", DefaultConfig.OutputFormat, "Output format: 'text', 'json' or 'yaml'")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable the analysis result cache")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Directory of the on-disk analysis cache, relative to the working directory")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level: 'disabled', 'trace', 'debug', 'info', 'warn' or 'error'")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// SetConfigFile points LoadConfigs at an explicit file, as --config does.
func SetConfigFile(path string) {
	cfgFile = path
}
