package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

const (
	// LayoutFlat writes one <Service><Suffix>.ts per service holding both the
	// request functions and the appended type declarations
	LayoutFlat = "flat"
	// LayoutNested writes <service>/index.ts plus <service>/types.ts
	LayoutNested = "nested"

	DefaultOut         = "."
	DefaultProjectName = "project-swagger"
	DefaultRequestLib  = "import { request } from '@/services/request';"
	DefaultSuffix      = "Controller"
)

// Config represents the complete configuration for a generation run
type Config struct {
	Swagger  string    `yaml:"swagger"`
	Out      string    `yaml:"out"`
	Projects []Project `yaml:"projects"`
}

// Project represents one output directory under Out
type Project struct {
	Name string `yaml:"name"`
	// Tags is an allow-list of normalized tags; empty means every service
	Tags []string `yaml:"tags"`
	// IncludeTags and ExcludeTags are regex patterns matched against normalized tags
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// RequestLib is the import statement emitted verbatim at the top of every service module
	RequestLib string `yaml:"requestLib"`
	// APIPrefix is prepended to every emitted URL
	APIPrefix string `yaml:"apiPrefix"`
	Layout    string `yaml:"layout"`
	// Suffix is appended to the service file name in the flat layout
	Suffix string `yaml:"suffix"`
	// PreCommand is an optional command to run before generation starts.
	// Uses Docker Compose array format: ["rm", "-rf", "petstore"]
	// The command will be executed in the output root.
	PreCommand []string `yaml:"preCommand"`
	// PostCommand is an optional command to run after generation completes.
	// Uses Docker Compose array format: ["npx", "prettier", "--write", "."]
	// The command will be executed in the project directory.
	PostCommand []string `yaml:"postCommand"`
	// ExcludeFiles is a list of file paths (relative to the project directory) that should not be generated
	ExcludeFiles []string `yaml:"exclude"`
}

// GetPreCommand returns the pre-generation command to execute.
func (p *Project) GetPreCommand() []string {
	return p.PreCommand
}

// GetPostCommand returns the post-generation command to execute.
func (p *Project) GetPostCommand() []string {
	return p.PostCommand
}

// Dir returns the project directory under the output root
func (p *Project) Dir(out string) string {
	return filepath.Join(out, p.Name)
}

// ApplyDefaults fills unset optional fields
func (p *Project) ApplyDefaults() {
	if p.RequestLib == "" {
		p.RequestLib = DefaultRequestLib
	}
	if p.Layout == "" {
		p.Layout = LayoutFlat
	}
	if p.Suffix == "" {
		p.Suffix = DefaultSuffix
	}
}

// ShouldExcludeFile checks if a file path should be excluded based on the ExcludeFiles list.
// targetPath should be an absolute path, and the comparison is done relative to projectDir.
func (p *Project) ShouldExcludeFile(projectDir, targetPath string) bool {
	if len(p.ExcludeFiles) == 0 {
		return false
	}

	relPath, err := filepath.Rel(projectDir, targetPath)
	if err != nil {
		// If we can't get a relative path, the file is not under the project, so don't exclude
		return false
	}

	// Normalize the path (use forward slashes for consistency, handle . and ..)
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		relPath = ""
	}

	for _, excludePattern := range p.ExcludeFiles {
		normalizedExclude := strings.TrimSuffix(filepath.ToSlash(excludePattern), "/")

		// Exact match
		if relPath == normalizedExclude {
			return true
		}

		// Check if the file is in a directory that matches the exclude pattern
		// For example, if exclude is "user/", then "user/index.ts" should match
		if normalizedExclude != "" && strings.HasPrefix(relPath, normalizedExclude+"/") {
			return true
		}
	}

	return false
}

// Validate checks required fields and applies defaults. Relative output roots
// are made absolute; http(s) documents are kept as-is.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Swagger) == "" {
		return &errdefs.ConfigError{Field: "swagger", Message: "is required"}
	}
	if len(c.Projects) == 0 {
		return &errdefs.ConfigError{Field: "projects", Message: "at least one project is required"}
	}
	if c.Out == "" {
		c.Out = DefaultOut
	}
	if !filepath.IsAbs(c.Out) {
		abs, err := filepath.Abs(c.Out)
		if err != nil {
			return fmt.Errorf("resolve output directory %s: %w", c.Out, err)
		}
		c.Out = abs
	}
	seen := map[string]bool{}
	for i := range c.Projects {
		p := &c.Projects[i]
		if strings.TrimSpace(p.Name) == "" {
			return &errdefs.ConfigError{Field: fmt.Sprintf("projects[%d].name", i), Message: "is required"}
		}
		if seen[p.Name] {
			return &errdefs.ConfigError{Field: fmt.Sprintf("projects[%d].name", i), Message: fmt.Sprintf("duplicate project %q", p.Name)}
		}
		seen[p.Name] = true
		p.ApplyDefaults()
		if p.Layout != LayoutFlat && p.Layout != LayoutNested {
			return &errdefs.ConfigError{Field: fmt.Sprintf("projects[%d].layout", i), Message: fmt.Sprintf("unknown layout %q", p.Layout)}
		}
	}
	// Do not absolutize when swagger is an HTTP(S) URL
	if u, err := url.Parse(c.Swagger); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		// keep as-is
	} else if !filepath.IsAbs(c.Swagger) {
		abs, err := filepath.Abs(c.Swagger)
		if err != nil {
			return fmt.Errorf("resolve swagger path %s: %w", c.Swagger, err)
		}
		c.Swagger = abs
	}
	return nil
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errdefs.ConfigError{Field: path, Message: err.Error()}
	}
	// Relative paths in the file are relative to the file itself
	base := filepath.Dir(path)
	if cfg.Out == "" {
		cfg.Out = base
	} else if !filepath.IsAbs(cfg.Out) {
		cfg.Out = filepath.Join(base, cfg.Out)
	}
	if u, err := url.Parse(cfg.Swagger); cfg.Swagger != "" && !filepath.IsAbs(cfg.Swagger) && (err != nil || (u.Scheme != "http" && u.Scheme != "https")) {
		cfg.Swagger = filepath.Join(base, cfg.Swagger)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
