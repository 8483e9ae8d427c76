package generator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/config"
	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
	"github.com/blimu-dev/swagger2ts/pkg/generator/sink"
	"github.com/blimu-dev/swagger2ts/pkg/generator/typescript"
	"github.com/blimu-dev/swagger2ts/pkg/ir"
	"github.com/blimu-dev/swagger2ts/pkg/openapi"
)

// Generator renders the services of one project into output files
type Generator interface {
	// Generate renders services using the project's options. Files are
	// returned in the order they must be written.
	Generate(project config.Project, services []ir.Service) ([]sink.File, error)
	// GetType returns the layout this generator implements (e.g., "flat")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
	logger   *slog.Logger
	out      io.Writer
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithOutput sets where the per-file confirmation lines are printed
func WithOutput(w io.Writer) Option {
	return func(s *Service) { s.out = w }
}

// WithRegistry replaces the default generator registry
func WithRegistry(registry *Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// NewService creates a new generator service with both layouts registered
func NewService(opts ...Option) *Service {
	registry := NewRegistry()
	registry.Register(typescript.NewFlatGenerator())
	registry.Register(typescript.NewNestedGenerator())
	s := &Service{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// GenerateFromConfig loads the document once and generates every project of
// cfg, or only onlyProject when it is not empty. The first failure aborts the
// run; files already written stay on disk.
func (s *Service) GenerateFromConfig(cfg *config.Config, onlyProject string) error {
	doc, err := openapi.LoadDocument(cfg.Swagger)
	if err != nil {
		return err
	}
	if openapi.DetectDialect(doc) == openapi.DialectUnknown {
		s.logger.Warn("document declares neither swagger nor openapi version", "input", cfg.Swagger)
	}

	found := onlyProject == ""
	for _, project := range cfg.Projects {
		if onlyProject != "" && project.Name != onlyProject {
			continue
		}
		found = true
		if err := s.generateProject(doc, cfg.Swagger, cfg.Out, project); err != nil {
			return err
		}
	}
	if !found {
		return &errdefs.ConfigError{Field: "project", Message: fmt.Sprintf("no project named %q", onlyProject)}
	}
	return nil
}

func (s *Service) generateProject(doc openapi.Value, source, out string, project config.Project) error {
	project.ApplyDefaults()
	generator, exists := s.registry.Get(project.Layout)
	if !exists {
		return &errdefs.ConfigError{Field: "layout", Message: fmt.Sprintf("unsupported layout %q (available: %s)", project.Layout, strings.Join(s.registry.GetAvailableTypes(), ", "))}
	}

	filter, err := NewTagFilter(project.Tags, project.IncludeTags, project.ExcludeTags)
	if err != nil {
		return err
	}
	services, err := BuildServices(doc, filter, s.logger.With("project", project.Name))
	if err != nil {
		var shapeErr *errdefs.SchemaShapeError
		if errors.As(err, &shapeErr) && shapeErr.Path == "" {
			shapeErr.Path = source
		}
		return err
	}
	s.logger.Debug("built services", "project", project.Name, "services", len(services))

	files, err := generator.Generate(project, services)
	if err != nil {
		return err
	}
	if err := checkTargets(files); err != nil {
		return err
	}

	dir := project.Dir(out)
	// Ensure output root exists before pre-commands
	if err := os.MkdirAll(out, 0o755); err != nil {
		return &errdefs.FilesystemError{Op: "create directory", Path: out, Cause: err}
	}
	if err := s.executePreCommands(project, out); err != nil {
		return fmt.Errorf("pre-generation commands failed for project %s: %w", project.Name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &errdefs.FilesystemError{Op: "create directory", Path: dir, Cause: err}
	}

	fs := sink.NewFilesystemSink(dir)
	for _, f := range files {
		if project.ShouldExcludeFile(dir, fs.Resolve(f.Path)) {
			s.logger.Info("skipping excluded file", "project", project.Name, "file", f.Path)
			continue
		}
		if err := sink.Emit(fs, f); err != nil {
			return err
		}
		if !f.Append {
			fmt.Fprintf(s.out, "  ✓ Generated %s/%s\n", f.Service, path.Base(f.Path))
		}
	}
	fmt.Fprintf(s.out, "✓ Generated services in %s\n", dir)

	if err := s.executePostGenCommands(project, dir); err != nil {
		return fmt.Errorf("post-generation commands failed for project %s: %w", project.Name, err)
	}
	return nil
}

// checkTargets rejects file sets in which two services, or two fresh writes of
// one service, target the same path. Paths are compared case-insensitively.
func checkTargets(files []sink.File) error {
	owners := map[string]string{}
	for _, f := range files {
		key := strings.ToLower(f.Path)
		if owner, claimed := owners[key]; claimed && (owner != f.Service || !f.Append) {
			return &errdefs.ConfigError{
				Field:   "layout",
				Message: fmt.Sprintf("services %q and %q both map to %s", owner, f.Service, f.Path),
			}
		}
		owners[key] = f.Service
	}
	return nil
}

// executePreCommands executes the pre-generation command for a project in the output root
func (s *Service) executePreCommands(project config.Project, workDir string) error {
	command := project.GetPreCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(command, workDir, "pre-command")
}

// executePostGenCommands executes the post-generation command for a project in its directory
func (s *Service) executePostGenCommands(project config.Project, workDir string) error {
	command := project.GetPostCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(command, workDir, "post-command")
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil // Skip empty commands
	}

	// Create command with first element as executable and rest as arguments
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = workDir      // Execute in the specified directory
	cmd.Stdout = s.out     // Forward stdout to see command output
	cmd.Stderr = os.Stderr // Forward stderr to see errors

	cmdDescription := strings.Join(command, " ")
	s.logger.Debug("running command", "label", commandLabel, "command", cmdDescription, "dir", filepath.Clean(workDir))

	// Execute the command
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}
