package typescript

import (
	"strconv"
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/ir"
	"github.com/blimu-dev/swagger2ts/pkg/utils"
)

// typesNamespace is the import alias of the types module in the nested layout
const typesNamespace = "Types"

var tsPrimitives = map[string]bool{
	"any":       true,
	"unknown":   true,
	"never":     true,
	"void":      true,
	"null":      true,
	"undefined": true,
	"object":    true,
	"string":    true,
	"number":    true,
	"boolean":   true,
	"bigint":    true,
	"symbol":    true,
}

// elementType strips every trailing [] from a type expression
func elementType(expr string) string {
	for strings.HasSuffix(expr, "[]") {
		expr = strings.TrimSuffix(expr, "[]")
	}
	return expr
}

// isNamedType reports whether expr (or its array element) names a declared
// type rather than a TypeScript primitive
func isNamedType(expr string) bool {
	base := elementType(expr)
	return !tsPrimitives[base] && utils.IsIdentifier(base)
}

// qualify prefixes named types with the Types namespace; primitives and
// arrays of primitives are left as they are
func qualify(expr string) string {
	if !isNamedType(expr) {
		return expr
	}
	return typesNamespace + "." + expr
}

// argName is the name of the generated function's single argument: query
// parameters for GET and DELETE, a request body otherwise
func argName(op ir.Operation) string {
	if op.UsesQueryParams() {
		return "params"
	}
	return "data"
}

// urlJoin joins the API prefix and an operation path with exactly one slash
func urlJoin(prefix, path string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}

// placeholders lists the request and response types referenced by operations
// but not defined by the service, once each in first-reference order
func placeholders(svc ir.Service) []string {
	seen := map[string]bool{}
	var out []string
	for _, op := range svc.Operations {
		for _, expr := range []string{op.RequestTypeName, op.ResponseTypeName} {
			name := elementType(expr)
			if seen[name] || !isNamedType(name) || svc.HasType(name) {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// docComment renders lines as a JSDoc block indented by indent. A single
// line collapses to /** line */; no lines render as the empty string.
func docComment(indent string, lines []string) string {
	var kept []string
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				kept = append(kept, strings.ReplaceAll(part, "*/", `*\/`))
			}
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return indent + "/** " + kept[0] + " */"
	}
	var sb strings.Builder
	sb.WriteString(indent + "/**\n")
	for _, l := range kept {
		sb.WriteString(indent + " * " + l + "\n")
	}
	sb.WriteString(indent + " */")
	return sb.String()
}

// quoteTSPropertyName quotes TypeScript property names that contain special characters
func quoteTSPropertyName(name string) string {
	if utils.IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}
