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
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Overrides OverridesConfig `yaml:"overrides" mapstructure:"overrides"`
	Suggest   SuggestConfig   `yaml:"suggest" mapstructure:"suggest"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects where the segment feature collection is read from.
type SourceConfig struct {
	// Dir is a directory on disk. Empty uses the bundled assets.
	Dir  string `yaml:"dir" mapstructure:"dir"`
	Name string `yaml:"name" mapstructure:"name"`
}

// OverridesConfig locates the curated name override table.
type OverridesConfig struct {
	// Path is a YAML file. Empty uses the bundled table.
	Path string `yaml:"path" mapstructure:"path"`
}

// SuggestConfig configures autocomplete suggestions.
type SuggestConfig struct {
	Limit     int `yaml:"limit" mapstructure:"limit"`
	MinPrefix int `yaml:"min_prefix" mapstructure:"min_prefix"`
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
	v.SetEnvPrefix("LOCINDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.dir", "")
	v.SetDefault("source.name", "segments_features.geojson")
	v.SetDefault("overrides.path", "")
	v.SetDefault("suggest.limit", 20)
	v.SetDefault("suggest.min_prefix", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	return &cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Source.Name) == "" {
		problems = append(problems, "source.name is required")
	}
	if c.Suggest.Limit < 0 {
		problems = append(problems, "suggest.limit must be >= 0")
	}
	if c.Suggest.MinPrefix < 0 {
		problems = append(problems, "suggest.min_prefix must be >= 0")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		problems = append(problems, "log.format must be json or console")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
