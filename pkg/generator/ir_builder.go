package generator

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
	"github.com/blimu-dev/swagger2ts/pkg/ir"
	"github.com/blimu-dev/swagger2ts/pkg/openapi"
	"github.com/blimu-dev/swagger2ts/pkg/utils"
)

// methodVerbs maps the accepted lower-case method keys of a path item to the
// verb used when synthesizing function names
var methodVerbs = map[string]string{
	"get":     "Get",
	"post":    "Create",
	"put":     "Update",
	"delete":  "Delete",
	"patch":   "Patch",
	"head":    "Head",
	"options": "Options",
}

// irBuilder accumulates the services of a single run. It is created once per
// document and never shared.
type irBuilder struct {
	schemas  openapi.Value
	filter   TagFilter
	services map[string]*ir.Service
	logger   *slog.Logger
}

// BuildServices parses every operation of doc into services grouped by
// normalized tag, then attaches the schema definitions each service
// references. Services are returned sorted by name.
func BuildServices(doc openapi.Value, filter TagFilter, logger *slog.Logger) ([]ir.Service, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	paths, ok := doc.Get("paths")
	if !ok || paths.Kind() != openapi.KindObject {
		return nil, &errdefs.SchemaShapeError{Message: "no 'paths' found in document"}
	}

	b := &irBuilder{
		schemas:  openapi.LocateSchemas(doc),
		filter:   filter,
		services: map[string]*ir.Service{},
		logger:   logger,
	}
	logger.Debug("parsing document", "dialect", openapi.DetectDialect(doc), "paths", paths.Len(), "schemas", b.schemas.Len())

	for _, path := range paths.Keys() {
		item, _ := paths.Get(path)
		if item.Kind() != openapi.KindObject {
			continue
		}
		for _, method := range item.Keys() {
			if _, ok := methodVerbs[method]; !ok {
				continue
			}
			node, _ := item.Get(method)
			tag := extractTag(node)
			if !b.filter.Allows(tag) {
				continue
			}
			svc := b.service(tag)
			svc.Operations = append(svc.Operations, b.parseOperation(node, path, method, svc))
		}
	}

	if err := b.attachSchemas(); err != nil {
		return nil, err
	}
	return b.result(), nil
}

func (b *irBuilder) service(name string) *ir.Service {
	svc, ok := b.services[name]
	if !ok {
		svc = ir.NewService(name)
		b.services[name] = svc
	}
	return svc
}

func (b *irBuilder) sortedServices() []*ir.Service {
	names := make([]string, 0, len(b.services))
	for name := range b.services {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*ir.Service, 0, len(names))
	for _, name := range names {
		out = append(out, b.services[name])
	}
	return out
}

func (b *irBuilder) result() []ir.Service {
	sorted := b.sortedServices()
	out := make([]ir.Service, 0, len(sorted))
	for _, svc := range sorted {
		out = append(out, *svc)
	}
	return out
}

// extractTag returns the normalized first tag of an operation, or the
// default service name
func extractTag(op openapi.Value) string {
	tags, ok := op.Get("tags")
	if !ok {
		return ir.DefaultServiceName
	}
	list, _ := tags.Array()
	if len(list) == 0 {
		return ir.DefaultServiceName
	}
	tag, ok := list[0].Str()
	if !ok {
		return ir.DefaultServiceName
	}
	if tag = NormalizeTag(tag); tag == "" {
		return ir.DefaultServiceName
	}
	return tag
}

// parseOperation extracts one operation. The owning service's type table is
// updated when a request type has to be synthesized.
func (b *irBuilder) parseOperation(node openapi.Value, path, method string, svc *ir.Service) ir.Operation {
	op := ir.Operation{
		Path:             path,
		Method:           ir.HTTPMethod(strings.ToUpper(method)),
		FunctionName:     functionName(node, method, path),
		RequestTypeName:  b.requestType(node, svc),
		ResponseTypeName: responseType(node),
		OperationID:      stringField(node, "operationId"),
		Summary:          stringField(node, "summary"),
	}
	if v, ok := node.Get("deprecated"); ok {
		op.Deprecated, _ = v.Bool()
	}
	return op
}

// functionName uses the operationId when there is one and otherwise derives
// a name from method and path: GET /users/{id}/orders -> GetUsersByIdOrders
func functionName(op openapi.Value, method, path string) string {
	if id := strings.TrimSpace(stringField(op, "operationId")); id != "" {
		return id
	}
	return synthesizeFunctionName(method, path)
}

var pathTokenizer = strings.NewReplacer("/", " ", "{", " by ", "}", "")

func synthesizeFunctionName(method, path string) string {
	var sb strings.Builder
	sb.WriteString(methodVerbs[strings.ToLower(method)])
	for _, part := range strings.Fields(pathTokenizer.Replace(path)) {
		sb.WriteString(utils.Capitalize(part))
	}
	return sb.String()
}

// requestType resolves the request type name, in order: the first parameter
// schema that resolves to something other than any, the JSON request body,
// a type synthesized from the flat parameter list, any.
func (b *irBuilder) requestType(op openapi.Value, svc *ir.Service) string {
	var params []openapi.Value
	if v, ok := op.Get("parameters"); ok {
		params, _ = v.Array()
	}
	for _, p := range params {
		if schema, ok := p.Get("schema"); ok {
			if t := ResolveType(schema); t != ir.AnyType {
				return t
			}
		}
	}
	if schema, ok := op.Lookup("requestBody", "content", "application/json", "schema"); ok {
		if t := ResolveType(schema); t != ir.AnyType {
			return t
		}
	}
	if len(params) > 0 {
		return b.synthesizeRequestType(params, svc)
	}
	return ir.AnyType
}

// synthesizeRequestType registers <Service>Request built from parameters
// declaring a primitive type and returns its name. Every operation of a
// service shares the name, so the last synthesized definition wins.
func (b *irBuilder) synthesizeRequestType(params []openapi.Value, svc *ir.Service) string {
	name := RequestTypeName(svc.Name)
	def := ir.NewTypeDefinition(name)
	def.Synthesized = true
	for _, p := range params {
		fieldName := stringField(p, "name")
		typ, ok := p.Get("type")
		if fieldName == "" || !ok {
			continue
		}
		typName, ok := typ.Str()
		if !ok {
			continue
		}
		optional := true
		if req, ok := p.Get("required"); ok {
			if r, ok := req.Bool(); ok {
				optional = !r
			}
		}
		def.Fields[fieldName] = ir.Field{
			Name:           fieldName,
			TypeExpression: primitiveType(typName),
			Optional:       optional,
			Description:    stringField(p, "description"),
		}
	}
	if _, exists := svc.TypeDefinitions[name]; exists {
		b.logger.Debug("replacing synthesized request type", "service", svc.Name, "type", name)
	}
	svc.TypeDefinitions[name] = def
	return name
}

// RequestTypeName is the name of the type synthesized from a service's flat
// parameters: users -> UsersRequest, pet-store -> Pet_storeRequest
func RequestTypeName(service string) string {
	return utils.ToIdentifier(utils.Capitalize(service)) + "Request"
}

// responseType picks the 200, 201 or default response, falling back to the
// first response, and resolves its schema (2.0) or JSON content schema (3.0)
func responseType(op openapi.Value) string {
	responses, ok := op.Get("responses")
	if !ok || responses.Kind() != openapi.KindObject {
		return ir.AnyType
	}
	var resp openapi.Value
	found := false
	for _, code := range []string{"200", "201", "default"} {
		if resp, found = responses.Get(code); found {
			break
		}
	}
	if !found {
		keys := responses.Keys()
		if len(keys) == 0 {
			return ir.AnyType
		}
		resp, _ = responses.Get(keys[0])
	}
	if schema, ok := resp.Get("schema"); ok {
		return ResolveType(schema)
	}
	if schema, ok := resp.Lookup("content", "application/json", "schema"); ok {
		return ResolveType(schema)
	}
	return ir.AnyType
}

// attachSchemas adds every located schema to each service that references
// its name as a substring of an operation's request or response type
func (b *irBuilder) attachSchemas() error {
	services := b.sortedServices()
	for _, name := range b.schemas.Keys() {
		schema, _ := b.schemas.Get(name)
		var (
			def       ir.TypeDefinition
			extracted bool
		)
		for _, svc := range services {
			if !svc.ReferencesType(name) {
				continue
			}
			if !extracted {
				var err error
				if def, err = ExtractTypeDefinition(name, schema); err != nil {
					return err
				}
				extracted = true
			}
			if existing, ok := svc.TypeDefinitions[name]; ok && existing.Synthesized {
				b.logger.Warn("schema definition replaces synthesized request type", "service", svc.Name, "type", name)
			}
			svc.TypeDefinitions[name] = def
			b.logger.Debug("attached type", "service", svc.Name, "type", name, "fields", len(def.Fields))
		}
	}
	return nil
}

func stringField(v openapi.Value, key string) string {
	child, ok := v.Get(key)
	if !ok {
		return ""
	}
	s, _ := child.Str()
	return s
}
