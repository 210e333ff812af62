// Package config loads generator settings. Values come from an optional
// YAML file, then the environment (including a .env file), then command
// line flags, each layer overriding the one before.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Archive formats.
const (
	ArchiveZip   = "zip"
	ArchiveTarGz = "tar.gz"
)

// Config holds the settings for one generator run.
type Config struct {
	BuildDir            string `yaml:"build_dir"`
	OutputDir           string `yaml:"output_dir"`
	BaseURL             string `yaml:"base_url"`
	ProductName         string `yaml:"product_name"`
	Tagline             string `yaml:"tagline"`
	SidebarPath         string `yaml:"sidebar_path"`
	IncludeDescriptions bool   `yaml:"include_descriptions"`
	StripHTML           bool   `yaml:"strip_html"`
	InjectSidebar       bool   `yaml:"inject_sidebar"`
	ArchiveFormat       string `yaml:"archive_format"`
	DirectoryIndexes    bool   `yaml:"directory_indexes"`
	TableOfContents     bool   `yaml:"table_of_contents"`
	Stats               bool   `yaml:"stats"`
	// WorkspaceDir anchors relative paths. It is never read from the file.
	WorkspaceDir string `yaml:"-"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		BuildDir:            "./build",
		OutputDir:           "./llm-docs",
		SidebarPath:         "./sidebars.json",
		IncludeDescriptions: true,
		StripHTML:           true,
		ArchiveFormat:       ArchiveZip,
		LogLevel:            "info",
	}
}

// Load reads .env when present, then the YAML file at path (skipped when
// path is empty), then the environment.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	// 3. Override with environment variables if present
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set and
// non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.BuildDir, "BUILD_DIR")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.BaseURL, "BASE_URL")
	setString(&c.ProductName, "PRODUCT_NAME")
	setString(&c.Tagline, "TAGLINE")
	setString(&c.SidebarPath, "SIDEBAR_PATH")
	setString(&c.ArchiveFormat, "ARCHIVE_FORMAT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.WorkspaceDir, "GITHUB_WORKSPACE")
	setString(&c.WorkspaceDir, "WORKSPACE_DIR")

	c.IncludeDescriptions = ParseBool(getenv("INCLUDE_DESCRIPTIONS"), c.IncludeDescriptions)
	c.StripHTML = ParseBool(getenv("STRIP_HTML"), c.StripHTML)
	c.InjectSidebar = ParseBool(getenv("INJECT_SIDEBAR"), c.InjectSidebar)
	c.DirectoryIndexes = ParseBool(getenv("DIRECTORY_INDEXES"), c.DirectoryIndexes)
	c.TableOfContents = ParseBool(getenv("TABLE_OF_CONTENTS"), c.TableOfContents)
	c.Stats = ParseBool(getenv("STATS"), c.Stats)
}

// ParseBool reads "true" (any case) and "1" as true and anything else as
// false. An empty value yields def.
func ParseBool(value string, def bool) bool {
	if value == "" {
		return def
	}
	return strings.EqualFold(value, "true") || value == "1"
}

// Resolve makes the directory and file paths absolute against WorkspaceDir,
// which defaults to the working directory, and drops a trailing slash from
// BaseURL.
func (c *Config) Resolve() error {
	if c.WorkspaceDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		c.WorkspaceDir = wd
	}
	for _, p := range []*string{&c.BuildDir, &c.OutputDir, &c.SidebarPath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.WorkspaceDir, *p)
		}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("BASE_URL is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("BASE_URL must be a valid URL: %q", c.BaseURL))
	}
	if strings.TrimSpace(c.ProductName) == "" {
		errs = append(errs, errors.New("PRODUCT_NAME is required"))
	}
	switch c.ArchiveFormat {
	case ArchiveZip, ArchiveTarGz:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", core.ErrUnsupportedArchive, c.ArchiveFormat))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrInvalidConfig, errors.Join(errs...))
}
