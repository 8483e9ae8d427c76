package cli

import (
	"io"
	"os"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
	"github.com/blimu-dev/swagger2ts/pkg/generator"
)

// FallbackParams describes a single-project run when no config file is given
type FallbackParams struct {
	Swagger     string
	Out         string
	Tags        string // comma-separated allow-list
	RequestLib  string
	ProjectName string
	APIPrefix   string
	Layout      string
	Suffix      string
}

type RunGenerateParams struct {
	ConfigPath string
	Project    string
	Verbose    bool
	Fallback   FallbackParams
	// Stdout receives the confirmation lines, Stderr the log records
	Stdout io.Writer
	Stderr io.Writer
}

func RunGenerate(p RunGenerateParams) error {
	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}
	if p.Stderr == nil {
		p.Stderr = os.Stderr
	}
	opts := []generator.Option{
		generator.WithOutput(p.Stdout),
		generator.WithLogger(newLogger(p.Stderr, p.Verbose)),
	}

	if p.ConfigPath != "" {
		return generator.GenerateFromConfig(p.ConfigPath, p.Project, opts...)
	}

	if p.Fallback.Swagger == "" {
		return &errdefs.ConfigError{Message: "either --config or --swagger must be provided"}
	}
	out := p.Fallback.Out
	if out == "" {
		out = "."
	}
	return generator.Generate(generator.GenerateOptions{
		Swagger:     p.Fallback.Swagger,
		Out:         out,
		ProjectName: p.Fallback.ProjectName,
		Tags:        generator.ParseTagList(p.Fallback.Tags),
		RequestLib:  p.Fallback.RequestLib,
		APIPrefix:   p.Fallback.APIPrefix,
		Layout:      p.Fallback.Layout,
		Suffix:      p.Fallback.Suffix,
	}, opts...)
}
