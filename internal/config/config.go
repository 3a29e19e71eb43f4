package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"port"`

	// Auth
	APIKey string `mapstructure:"api_key"`

	// Worker pool
	WorkerCount  int `mapstructure:"worker_count"`
	MaxQueueSize int `mapstructure:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `mapstructure:"job_ttl"`

	// Per-document processing limit; 0 disables it.
	DocTimeout time.Duration `mapstructure:"doc_timeout"`

	// Batch and watch directories
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Heading heuristics
	Tuning `mapstructure:",squash"`
}

// Tuning mirrors outline.Config so every threshold can be set from the
// config file or the environment.
type Tuning struct {
	BodySizeRatio      float64 `mapstructure:"body_size_ratio"`
	ShortLineWords     int     `mapstructure:"short_line_words"`
	MaxHeadingWords    int     `mapstructure:"max_heading_words"`
	LineTolerance      float64 `mapstructure:"line_tolerance"`
	AdjacencyTolerance float64 `mapstructure:"adjacency_tolerance"`
	SizeTolerance      float64 `mapstructure:"size_tolerance"`
	SizeEpsilon        float64 `mapstructure:"size_epsilon"`
	MinProfileLines    int     `mapstructure:"min_profile_lines"`
	HeaderMargin       float64 `mapstructure:"header_margin"`
	FooterMargin       float64 `mapstructure:"footer_margin"`
}

const (
	defaultWorkerCount    = 4
	defaultMaxQueueSize   = 100
	defaultMaxUploadBytes = 52428800 // 50MB
	defaultJobTTL         = time.Hour
	defaultDocTimeout     = 30 * time.Second
)

func setDefaults(v *viper.Viper) {
	d := outline.DefaultConfig()

	v.SetDefault("port", "8090")
	v.SetDefault("api_key", "")
	v.SetDefault("worker_count", defaultWorkerCount)
	v.SetDefault("max_queue_size", defaultMaxQueueSize)
	v.SetDefault("max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("job_ttl", defaultJobTTL)
	v.SetDefault("doc_timeout", defaultDocTimeout)
	v.SetDefault("input_dir", "/app/input")
	v.SetDefault("output_dir", "/app/output")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("body_size_ratio", d.BodySizeRatio)
	v.SetDefault("short_line_words", d.ShortLineWords)
	v.SetDefault("max_heading_words", d.MaxHeadingWords)
	v.SetDefault("line_tolerance", d.LineTolerance)
	v.SetDefault("adjacency_tolerance", d.AdjacencyTolerance)
	v.SetDefault("size_tolerance", d.SizeTolerance)
	v.SetDefault("size_epsilon", d.SizeEpsilon)
	v.SetDefault("min_profile_lines", d.MinProfileLines)
	v.SetDefault("header_margin", d.HeaderMargin)
	v.SetDefault("footer_margin", d.FooterMargin)
}

// Load reads configuration from defaults, an optional YAML file and
// OUTLINER_* environment variables, in increasing order of precedence.
// With an empty cfgFile, ./outliner.yaml is used when present.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OUTLINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("outliner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

// clamp replaces unusable values with their defaults.
func (c *Config) clamp() {
	if c.Port == "" {
		c.Port = "8090"
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = defaultWorkerCount
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = defaultMaxQueueSize
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = defaultMaxUploadBytes
	}
	if c.JobTTL <= 0 {
		c.JobTTL = defaultJobTTL
	}
	if c.DocTimeout < 0 {
		c.DocTimeout = 0
	}
}

// Validate checks the settings the HTTP service cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OUTLINER_API_KEY is required")
	}
	return nil
}

// Outline returns the heuristic thresholds for the classification core.
func (c Config) Outline() outline.Config {
	t := c.Tuning
	return outline.Config{
		BodySizeRatio:      t.BodySizeRatio,
		ShortLineWords:     t.ShortLineWords,
		MaxHeadingWords:    t.MaxHeadingWords,
		LineTolerance:      t.LineTolerance,
		AdjacencyTolerance: t.AdjacencyTolerance,
		SizeTolerance:      t.SizeTolerance,
		SizeEpsilon:        t.SizeEpsilon,
		MinProfileLines:    t.MinProfileLines,
		HeaderMargin:       t.HeaderMargin,
		FooterMargin:       t.FooterMargin,
	}
}

// SlogLevel maps log_level onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
