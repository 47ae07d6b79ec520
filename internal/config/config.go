package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources []string     `yaml:"sources" mapstructure:"sources"`
	Paths   PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output  OutputConfig `yaml:"output" mapstructure:"output"`
	Fetch   FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Text    TextConfig   `yaml:"text" mapstructure:"text"`
	Rules   RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Log     LogConfig    `yaml:"log" mapstructure:"log"`
}

// PathsConfig controls where downloaded documents and output tables go.
type PathsConfig struct {
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`
	OutputDir   string `yaml:"output_dir" mapstructure:"output_dir"`
}

// OutputConfig configures the tabular writer.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`
	EchoText bool   `yaml:"echo_text" mapstructure:"echo_text"`
}

// FetchConfig configures document downloads.
type FetchConfig struct {
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	FTPTimeoutSecs int     `yaml:"ftp_timeout_secs" mapstructure:"ftp_timeout_secs"`
}

// TextConfig configures PDF text extraction.
type TextConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	Layout        bool   `yaml:"layout" mapstructure:"layout"`
	Validate      bool   `yaml:"validate" mapstructure:"validate"`
}

// RulesConfig points at an optional field rule override file.
type RulesConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources", []string{})
	v.SetDefault("paths.download_dir", "downloads")
	v.SetDefault("paths.output_dir", ".")
	v.SetDefault("output.format", "csv")
	v.SetDefault("output.echo_text", true)
	v.SetDefault("fetch.user_agent", "invoice-cli/1.0")
	v.SetDefault("fetch.timeout_secs", 0)
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("fetch.ftp_timeout_secs", 30)
	v.SetDefault("text.provider", "pdftotext")
	v.SetDefault("text.pdftotext_path", "pdftotext")
	v.SetDefault("text.layout", false)
	v.SetDefault("text.validate", true)
	v.SetDefault("rules.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "csv", "xlsx":
	default:
		return eris.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Fetch.RatePerSec < 0 {
		return eris.New("config: fetch.rate_per_sec must not be negative")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
