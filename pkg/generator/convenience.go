package generator

import (
	"github.com/blimu-dev/swagger2ts/pkg/config"
)

// GenerateOptions contains the options of a single-project run without a
// configuration file
type GenerateOptions struct {
	Swagger     string   // OpenAPI document path or http(s) URL
	Out         string   // Output root
	ProjectName string   // Directory created under Out
	Tags        []string // Allow-list of tags; empty generates every service
	RequestLib  string   // Import statement emitted at the top of every service module
	APIPrefix   string   // Prefix joined in front of every URL
	Layout      string   // "flat" or "nested"
	Suffix      string   // File name suffix of the flat layout
}

// Config converts the options to a validated configuration with one project
func (o GenerateOptions) Config() (*config.Config, error) {
	name := o.ProjectName
	if name == "" {
		name = config.DefaultProjectName
	}
	cfg := &config.Config{
		Swagger: o.Swagger,
		Out:     o.Out,
		Projects: []config.Project{{
			Name:       name,
			Tags:       o.Tags,
			RequestLib: o.RequestLib,
			APIPrefix:  o.APIPrefix,
			Layout:     o.Layout,
			Suffix:     o.Suffix,
		}},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Generate is a convenience function for a single-project run
func Generate(opts GenerateOptions, serviceOpts ...Option) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	return NewService(serviceOpts...).GenerateFromConfig(cfg, "")
}

// GenerateFromConfig is a convenience function for generating from a config
// file; onlyProject restricts the run to one project when not empty
func GenerateFromConfig(configPath, onlyProject string, serviceOpts ...Option) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return NewService(serviceOpts...).GenerateFromConfig(cfg, onlyProject)
}
