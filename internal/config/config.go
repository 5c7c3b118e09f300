package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/five82/cohort/internal/i18n"
)

// Config captures everything cohort reads from config.toml.
type Config struct {
	APIBind         string
	BasePath        string
	ListsToShow     int
	PageSizes       []int
	RequestTimeout  time.Duration
	RevalidateEvery time.Duration
	LogFile         string
	LogLevel        string
	Language        string
	DBPath          string
	Listen          string
}

const (
	defaultConfigPath      = "~/.config/cohort/config.toml"
	defaultAPIBind         = "127.0.0.1:7488"
	defaultBasePath        = "/home/patient-lists"
	defaultListsToShow     = 10
	defaultRequestTimeout  = 5 * time.Second
	defaultRevalidateEvery = 30 * time.Second
	defaultLogFile         = "~/.local/state/cohort/cohort.log"
	defaultLogLevel        = "info"
	defaultLanguage        = "en"
	defaultDBPath          = "~/.local/share/cohort/cohort.db"
	defaultListen          = "127.0.0.1:7488"

	envPrefix = "COHORT_"
)

var defaultPageSizes = []int{10, 20, 25, 50}

type rawConfig struct {
	APIBind         string `toml:"api_bind"`
	BasePath        string `toml:"base_path"`
	ListsToShow     *int   `toml:"lists_to_show"`
	PageSizes       []int  `toml:"page_sizes"`
	RequestTimeout  string `toml:"request_timeout"`
	RevalidateEvery string `toml:"revalidate_every"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	Language        string `toml:"language"`
	DBPath          string `toml:"db_path"`
	Listen          string `toml:"listen"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBind:         defaultAPIBind,
		BasePath:        defaultBasePath,
		ListsToShow:     defaultListsToShow,
		PageSizes:       slices.Clone(defaultPageSizes),
		RequestTimeout:  defaultRequestTimeout,
		RevalidateEvery: defaultRevalidateEvery,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		Language:        defaultLanguage,
		DBPath:          mustExpand(defaultDBPath),
		Listen:          defaultListen,
	}
}

// Load locates and parses the cohort config, falling back to defaults when
// missing. COHORT_* environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&raw, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	cfg.APIBind = orDefault(raw.APIBind, defaultAPIBind)
	cfg.BasePath = orDefault(raw.BasePath, defaultBasePath)
	cfg.Listen = orDefault(raw.Listen, defaultListen)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.Language = orDefault(raw.Language, defaultLanguage)
	if !supportedLanguage(cfg.Language) {
		return Config{}, fmt.Errorf("language %q is not supported (have %s)", cfg.Language, strings.Join(i18n.Supported(), ", "))
	}
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.DBPath = mustExpand(orDefault(raw.DBPath, defaultDBPath))

	if raw.ListsToShow != nil {
		if *raw.ListsToShow <= 0 {
			return Config{}, fmt.Errorf("lists_to_show must be positive, got %d", *raw.ListsToShow)
		}
		cfg.ListsToShow = *raw.ListsToShow
	}

	if len(raw.PageSizes) > 0 {
		sizes := make([]int, 0, len(raw.PageSizes))
		for _, size := range raw.PageSizes {
			if size <= 0 {
				return Config{}, fmt.Errorf("page_sizes must be positive, got %d", size)
			}
			sizes = append(sizes, size)
		}
		slices.Sort(sizes)
		cfg.PageSizes = slices.Compact(sizes)
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RevalidateEvery, err = parseDuration("revalidate_every", raw.RevalidateEvery, defaultRevalidateEvery); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// supportedLanguage matches on the base language, so "es-MX" is accepted
// when "es" is embedded.
func supportedLanguage(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, name := range i18n.Supported() {
		have, err := language.Parse(name)
		if err != nil {
			continue
		}
		if b, _ := have.Base(); b == base {
			return true
		}
	}
	return false
}

// applyEnv copies COHORT_* variables over the file values.
func applyEnv(raw *rawConfig, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_BIND":         &raw.APIBind,
		"BASE_PATH":        &raw.BasePath,
		"REQUEST_TIMEOUT":  &raw.RequestTimeout,
		"REVALIDATE_EVERY": &raw.RevalidateEvery,
		"LOG_FILE":         &raw.LogFile,
		"LOG_LEVEL":        &raw.LogLevel,
		"LANGUAGE":         &raw.Language,
		"DB_PATH":          &raw.DBPath,
		"LISTEN":           &raw.Listen,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "LISTS_TO_SHOW"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sLISTS_TO_SHOW: %w", envPrefix, err)
		}
		raw.ListsToShow = &n
	}
	if v, ok := lookup(envPrefix + "PAGE_SIZES"); ok && strings.TrimSpace(v) != "" {
		var sizes []int
		for _, field := range strings.Split(v, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("%sPAGE_SIZES: %w", envPrefix, err)
			}
			sizes = append(sizes, n)
		}
		raw.PageSizes = sizes
	}
	return nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
