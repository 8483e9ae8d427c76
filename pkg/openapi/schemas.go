package openapi

import "strings"

// Dialect is the document flavour declared at its root.
type Dialect string

const (
	DialectUnknown  Dialect = "unknown"
	DialectSwagger2 Dialect = "swagger-2.0"
	DialectOpenAPI3 Dialect = "openapi-3"
)

// DetectDialect inspects the root "swagger"/"openapi" version keys.
func DetectDialect(doc Value) Dialect {
	if v, ok := doc.Get("swagger"); ok {
		if s, ok := v.Str(); ok && strings.HasPrefix(s, "2") {
			return DialectSwagger2
		}
	}
	if v, ok := doc.Get("openapi"); ok {
		if s, ok := v.Str(); ok && strings.HasPrefix(s, "3") {
			return DialectOpenAPI3
		}
	}
	return DialectUnknown
}

// LocateSchemas returns the named type definitions container: "definitions"
// (2.0) when present, otherwise "components.schemas" (3.0). Documents with
// neither get an empty object; a container that is not an object holds no
// definitions.
func LocateSchemas(doc Value) Value {
	container, ok := doc.Get("definitions")
	if !ok {
		container, ok = doc.Lookup("components", "schemas")
	}
	if !ok || container.Kind() != KindObject {
		return Object(nil)
	}
	return container
}
