package typescript

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/swagger2ts/pkg/config"
	"github.com/blimu-dev/swagger2ts/pkg/generator/sink"
	"github.com/blimu-dev/swagger2ts/pkg/ir"
	"github.com/blimu-dev/swagger2ts/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	templatesOnce sync.Once
	templates     *template.Template
	templatesErr  error
)

// loadTemplates parses every embedded template once
func loadTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		funcMap := sprig.TxtFuncMap()
		funcMap["docComment"] = docComment
		templates, templatesErr = template.New("typescript").Funcs(funcMap).ParseFS(templatesFS, "templates/*.gotmpl")
		if templatesErr != nil {
			templatesErr = fmt.Errorf("failed to parse templates: %w", templatesErr)
		}
	})
	return templates, templatesErr
}

// Options controls how a service module is rendered
type Options struct {
	// RequestLib is emitted verbatim as the first line of the module
	RequestLib string
	// APIPrefix is joined in front of every operation path
	APIPrefix string
	// Qualify imports the types module and prefixes named types with Types.
	Qualify bool
}

type operationView struct {
	FunctionName string
	Method       string
	Arg          string
	Request      string
	Response     string
	URL          string
	Doc          []string
}

type fieldView struct {
	Name     string
	Type     string
	Optional bool
	Doc      []string
}

type typeView struct {
	Name   string
	Doc    []string
	Fields []fieldView
}

// RenderServiceModule renders the request functions of svc
func RenderServiceModule(svc ir.Service, opts Options) (string, error) {
	typeRef := func(expr string) string {
		if expr == "" {
			return ir.AnyType
		}
		if opts.Qualify {
			return qualify(expr)
		}
		return expr
	}
	ops := make([]operationView, 0, len(svc.Operations))
	for _, op := range svc.Operations {
		view := operationView{
			FunctionName: op.FunctionName,
			Method:       string(op.Method),
			Arg:          argName(op),
			Request:      typeRef(op.RequestTypeName),
			Response:     typeRef(op.ResponseTypeName),
			URL:          urlJoin(opts.APIPrefix, op.Path),
		}
		if op.Summary != "" {
			view.Doc = append(view.Doc, op.Summary)
		}
		if op.Deprecated {
			view.Doc = append(view.Doc, "@deprecated")
		}
		ops = append(ops, view)
	}
	return render("service.ts.gotmpl", map[string]any{
		"RequestLib": opts.RequestLib,
		"Qualify":    opts.Qualify,
		"Namespace":  typesNamespace,
		"Operations": ops,
	})
}

// RenderTypesModule renders the type declarations of svc followed by any
// placeholders for referenced but undefined types
func RenderTypesModule(svc ir.Service) (string, error) {
	defs := svc.SortedTypeDefinitions()
	types := make([]typeView, 0, len(defs))
	for _, def := range defs {
		view := typeView{Name: def.Name, Doc: []string{def.Description}}
		for _, f := range def.SortedFields() {
			view.Fields = append(view.Fields, fieldView{
				Name:     quoteTSPropertyName(f.Name),
				Type:     f.TypeExpression,
				Optional: f.Optional,
				Doc:      []string{f.Description},
			})
		}
		types = append(types, view)
	}
	return render("types.ts.gotmpl", map[string]any{
		"Name":         svc.Name,
		"Types":        types,
		"Placeholders": placeholders(svc),
	})
}

// render executes a template and normalizes the result to end with exactly
// one newline
func render(name string, data map[string]any) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), " \t\r\n") + "\n", nil
}

// FlatGenerator writes one <Service><Suffix>.ts per service holding the
// request functions with the type declarations appended
type FlatGenerator struct{}

// NewFlatGenerator creates a new flat layout generator
func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{}
}

// GetType returns the generator type identifier
func (g *FlatGenerator) GetType() string {
	return config.LayoutFlat
}

// Generate renders every service of a project
func (g *FlatGenerator) Generate(project config.Project, services []ir.Service) ([]sink.File, error) {
	var files []sink.File
	for _, svc := range services {
		target := FlatFileName(svc.Name, project.Suffix)
		api, err := RenderServiceModule(svc, Options{RequestLib: project.RequestLib, APIPrefix: project.APIPrefix})
		if err != nil {
			return nil, err
		}
		types, err := RenderTypesModule(svc)
		if err != nil {
			return nil, err
		}
		files = append(files,
			sink.File{Service: svc.Name, Path: target, Content: []byte(api)},
			sink.File{Service: svc.Name, Path: target, Content: []byte(types), Append: true},
		)
	}
	return files, nil
}

// FlatFileName returns the flat layout file of a service, e.g. users ->
// UsersController.ts, 用户 -> 用户Controller.ts. The suffix is not repeated
// when the name already ends with it, ignoring case.
func FlatFileName(service, suffix string) string {
	name := utils.PathSegment(utils.Capitalize(service))
	if name == "" {
		name = utils.Capitalize(ir.DefaultServiceName)
	}
	if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
		name += suffix
	}
	return name + ".ts"
}

// NestedGenerator writes <service>/index.ts and <service>/types.ts per service
type NestedGenerator struct{}

// NewNestedGenerator creates a new nested layout generator
func NewNestedGenerator() *NestedGenerator {
	return &NestedGenerator{}
}

// GetType returns the generator type identifier
func (g *NestedGenerator) GetType() string {
	return config.LayoutNested
}

// Generate renders every service of a project
func (g *NestedGenerator) Generate(project config.Project, services []ir.Service) ([]sink.File, error) {
	var files []sink.File
	for _, svc := range services {
		dir := NestedDirName(svc.Name)
		api, err := RenderServiceModule(svc, Options{RequestLib: project.RequestLib, APIPrefix: project.APIPrefix, Qualify: true})
		if err != nil {
			return nil, err
		}
		types, err := RenderTypesModule(svc)
		if err != nil {
			return nil, err
		}
		files = append(files,
			sink.File{Service: svc.Name, Path: path.Join(dir, "index.ts"), Content: []byte(api)},
			sink.File{Service: svc.Name, Path: path.Join(dir, "types.ts"), Content: []byte(types)},
		)
	}
	return files, nil
}

// NestedDirName returns the directory of a service in the nested layout
func NestedDirName(service string) string {
	if dir := utils.PathSegment(service); dir != "" {
		return dir
	}
	return ir.DefaultServiceName
}
