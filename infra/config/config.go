package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// Fetch backends.
const (
	BackendHarvest = "harvest"
	BackendAPI     = "api"
)

// ArchiveOff disables the run-history archive when used as archive_path.
const ArchiveOff = "off"

// Config holds application-level configuration.
type Config struct {
	FetchBackend   string `yaml:"fetch_backend"`   // "harvest" or "api"
	HarvestCommand string `yaml:"harvest_command"` // e.g. "npx tweet-harvest@2.6.0"
	HarvestDir     string `yaml:"harvest_dir"`     // where the harvester writes CSV files
	HarvestTab     string `yaml:"harvest_tab"`     // LATEST or TOP
	Language       string `yaml:"language"`
	APIBaseURL     string `yaml:"api_base_url"`
	TokenPath      string `yaml:"token_path"`

	ModelPath        string `yaml:"model_path"`
	TokenizerPath    string `yaml:"tokenizer_path"`
	StopwordsPath    string `yaml:"stopwords_path"`     // empty: embedded list
	VizStopwordsPath string `yaml:"viz_stopwords_path"` // empty: embedded list
	MaskPath         string `yaml:"mask_path"`          // empty: built-in ellipse
	FontPath         string `yaml:"font_path"`          // empty: built-in bitmap face

	OutputDir    string `yaml:"output_dir"`
	ArchivePath  string `yaml:"archive_path"`
	LogPath      string `yaml:"log_path"`
	LogLevel     string `yaml:"log_level"`
	UIStatePath  string `yaml:"ui_state_path"`
	DefaultCount int    `yaml:"default_count"`
}

// Load reads configuration from the optional YAML file and environment variables.
//
//	TWEETSENTIMENT_CONFIG      YAML file (default: ~/.config/tweetsentiment/config.yaml, optional)
//	TWEETSENTIMENT_BACKEND     harvest | api
//	TWEETSENTIMENT_HARVESTER   harvester command line
//	TWEETSENTIMENT_HARVEST_DIR harvester output directory
//	TWEETSENTIMENT_API_URL     API base URL
//	TWEETSENTIMENT_TOKEN       path to token file
//	TWEETSENTIMENT_MODEL       network artifact
//	TWEETSENTIMENT_TOKENIZER   tokenizer artifact
//	TWEETSENTIMENT_MASK        word cloud mask PNG
//	TWEETSENTIMENT_FONT        word cloud TTF/OTF font
//	TWEETSENTIMENT_OUTPUT_DIR  word cloud exports
//	TWEETSENTIMENT_ARCHIVE     SQLite history ("off" disables)
//	TWEETSENTIMENT_LOG         log file
//	TWEETSENTIMENT_LOG_LEVEL   debug | info | warn | error
//	TWEETSENTIMENT_COUNT       default post count
func Load() (Config, error) {
	dir, err := stateDir()
	if err != nil {
		return Config{}, err
	}

	path := os.Getenv("TWEETSENTIMENT_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.yaml")
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	applyDefaults(&cfg, dir)
	if err := applyEnvironmentOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tweetsentiment"), nil
}

func applyDefaults(cfg *Config, dir string) {
	def := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" {
			*v = d
		}
	}
	def(&cfg.FetchBackend, BackendHarvest)
	def(&cfg.HarvestCommand, "npx tweet-harvest@2.6.0")
	def(&cfg.HarvestDir, "tweets-data")
	def(&cfg.HarvestTab, "LATEST")
	def(&cfg.Language, "en")
	def(&cfg.APIBaseURL, "https://api.twitter.com")
	def(&cfg.TokenPath, filepath.Join(dir, "token"))
	def(&cfg.ModelPath, filepath.Join(dir, "model.json"))
	def(&cfg.TokenizerPath, filepath.Join(dir, "tokenizer.json"))
	def(&cfg.OutputDir, filepath.Join(dir, "exports"))
	def(&cfg.ArchivePath, filepath.Join(dir, "history.db"))
	def(&cfg.LogPath, filepath.Join(dir, "tweetsentiment.log"))
	def(&cfg.LogLevel, "info")
	def(&cfg.UIStatePath, filepath.Join(dir, "ui_state.json"))
	if cfg.DefaultCount == 0 {
		cfg.DefaultCount = domain.MinPostCount
	}
}

func applyEnvironmentOverrides(cfg *Config) error {
	env := map[string]*string{
		"TWEETSENTIMENT_BACKEND":     &cfg.FetchBackend,
		"TWEETSENTIMENT_HARVESTER":   &cfg.HarvestCommand,
		"TWEETSENTIMENT_HARVEST_DIR": &cfg.HarvestDir,
		"TWEETSENTIMENT_API_URL":     &cfg.APIBaseURL,
		"TWEETSENTIMENT_TOKEN":       &cfg.TokenPath,
		"TWEETSENTIMENT_MODEL":       &cfg.ModelPath,
		"TWEETSENTIMENT_TOKENIZER":   &cfg.TokenizerPath,
		"TWEETSENTIMENT_MASK":        &cfg.MaskPath,
		"TWEETSENTIMENT_FONT":        &cfg.FontPath,
		"TWEETSENTIMENT_OUTPUT_DIR":  &cfg.OutputDir,
		"TWEETSENTIMENT_ARCHIVE":     &cfg.ArchivePath,
		"TWEETSENTIMENT_LOG":         &cfg.LogPath,
		"TWEETSENTIMENT_LOG_LEVEL":   &cfg.LogLevel,
	}
	for name, field := range env {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*field = v
		}
	}
	if v := strings.TrimSpace(os.Getenv("TWEETSENTIMENT_COUNT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TWEETSENTIMENT_COUNT %q: %w", v, err)
		}
		cfg.DefaultCount = n
	}
	return nil
}

func validate(cfg *Config) error {
	cfg.FetchBackend = strings.ToLower(cfg.FetchBackend)
	switch cfg.FetchBackend {
	case BackendHarvest:
		if len(cfg.HarvestArgv()) == 0 {
			return fmt.Errorf("harvest_command is empty")
		}
	case BackendAPI:
		parsed, err := url.Parse(cfg.APIBaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid api_base_url: must be an absolute URL")
		}
		if parsed.Scheme != "https" {
			return fmt.Errorf("invalid api_base_url: only https is allowed")
		}
		cfg.APIBaseURL = strings.TrimRight(parsed.String(), "/")
	default:
		return fmt.Errorf("fetch_backend must be %q or %q, got %q", BackendHarvest, BackendAPI, cfg.FetchBackend)
	}
	if cfg.DefaultCount < domain.MinPostCount || cfg.DefaultCount > domain.MaxPostCount {
		return fmt.Errorf("default_count must be between %d and %d, got %d", domain.MinPostCount, domain.MaxPostCount, cfg.DefaultCount)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// HarvestArgv splits the harvester command line into argv.
func (c Config) HarvestArgv() []string {
	return strings.Fields(c.HarvestCommand)
}

// ArchiveEnabled reports whether runs are written to the history database.
func (c Config) ArchiveEnabled() bool {
	return !strings.EqualFold(c.ArchivePath, ArchiveOff)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
}
