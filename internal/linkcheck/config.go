package linkcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSiteRoot      = "docs"
	DefaultIndexFilename = "index.html"
	DefaultWorkers       = 4
)

// Config controls a Checker run. It can be loaded from YAML and is
// overridden field by field from the command line.
type Config struct {
	SiteRoot       string   `yaml:"site_root"`
	ProjectRoot    string   `yaml:"project_root"`
	HTMLExtensions []string `yaml:"html_extensions"`
	IndexFilename  string   `yaml:"index_filename"`
	Exclude        []string `yaml:"exclude"`
	Workers        int      `yaml:"workers"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		SiteRoot:       DefaultSiteRoot,
		HTMLExtensions: []string{".html"},
		IndexFilename:  DefaultIndexFilename,
		Workers:        DefaultWorkers,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: failed to parse config YAML: %v", ErrInvalidConfig, err)
	}

	// Relative roots in a config file are relative to the file itself.
	base := filepath.Dir(path)
	if cfg.SiteRoot != "" && !filepath.IsAbs(cfg.SiteRoot) {
		cfg.SiteRoot = filepath.Join(base, cfg.SiteRoot)
	}
	if cfg.ProjectRoot != "" && !filepath.IsAbs(cfg.ProjectRoot) {
		cfg.ProjectRoot = filepath.Join(base, cfg.ProjectRoot)
	}

	return cfg, nil
}

// Normalize makes the roots absolute, lowercases extensions and fills in
// defaults for zero values. It does not touch the filesystem beyond
// resolving the working directory.
func (c Config) Normalize() (Config, error) {
	if c.SiteRoot == "" {
		c.SiteRoot = DefaultSiteRoot
	}
	root, err := filepath.Abs(c.SiteRoot)
	if err != nil {
		return c, fmt.Errorf("failed to resolve site root %s: %w", c.SiteRoot, err)
	}
	c.SiteRoot = root

	if c.ProjectRoot == "" {
		c.ProjectRoot = filepath.Dir(c.SiteRoot)
	} else if c.ProjectRoot, err = filepath.Abs(c.ProjectRoot); err != nil {
		return c, fmt.Errorf("failed to resolve project root: %w", err)
	}

	if len(c.HTMLExtensions) == 0 {
		c.HTMLExtensions = []string{".html"}
	}
	exts := make([]string, 0, len(c.HTMLExtensions))
	for _, ext := range c.HTMLExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.HTMLExtensions = exts

	if c.IndexFilename == "" {
		c.IndexFilename = DefaultIndexFilename
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}

	return c, nil
}

// Validate checks a normalized config.
func (c Config) Validate() error {
	var errs []error

	if len(c.HTMLExtensions) == 0 {
		errs = append(errs, errors.New("at least one html extension is required"))
	}
	if strings.ContainsAny(c.IndexFilename, `/\`) {
		errs = append(errs, fmt.Errorf("index filename %q must not contain a path separator", c.IndexFilename))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("bad exclude pattern %q", pattern))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) isHTML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range c.HTMLExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (c Config) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
