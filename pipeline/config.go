package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Inputs              []string `yaml:"inputs"`
	OutputDir           string   `yaml:"output_dir"`
	Legacy              bool     `yaml:"legacy"`
	PageShift           float64  `yaml:"page_shift"`
	TolerateBrokenLinks bool     `yaml:"tolerate_broken_links"`
	Preview             bool     `yaml:"preview"`
	Columns             int      `yaml:"columns"`
	ShowGhostNotes      bool     `yaml:"show_ghost_notes"`
	Snapshot            bool     `yaml:"snapshot"`
	Workers             int      `yaml:"workers"`
	CacheSize           int      `yaml:"cache_size"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir: "out",
		Columns:   4,
		Workers:   runtime.NumCPU(),
		CacheSize: 64,
	}
}

// OutputPath places stem+suffix in the output directory, or next to the
// input when no output directory is set.
func (c *Config) OutputPath(input, suffix string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, stem+suffix)
}

// LoadConfig reads an optional YAML file over the defaults, then applies
// FORGE_* variables from the environment and a .env file in the working
// directory.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
		base := filepath.Dir(path)
		for i, in := range cfg.Inputs {
			if !filepath.IsAbs(in) {
				cfg.Inputs[i] = filepath.Join(base, in)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := env("FORGE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := env("FORGE_INPUTS"); v != "" {
		cfg.Inputs = filepath.SplitList(v)
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"FORGE_LEGACY", &cfg.Legacy},
		{"FORGE_TOLERATE_LINKS", &cfg.TolerateBrokenLinks},
		{"FORGE_PREVIEW", &cfg.Preview},
		{"FORGE_GHOST", &cfg.ShowGhostNotes},
		{"FORGE_SNAPSHOT", &cfg.Snapshot},
	}
	for _, b := range bools {
		if v := env(b.key); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrapf(err, "%s", b.key)
			}
			*b.dst = parsed
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FORGE_COLUMNS", &cfg.Columns},
		{"FORGE_WORKERS", &cfg.Workers},
		{"FORGE_CACHE_SIZE", &cfg.CacheSize},
	}
	for _, n := range ints {
		if v := env(n.key); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "%s", n.key)
			}
			*n.dst = parsed
		}
	}

	if v := env("FORGE_PAGE_SHIFT"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "FORGE_PAGE_SHIFT")
		}
		cfg.PageShift = parsed
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
