package generator

import (
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
	"github.com/blimu-dev/swagger2ts/pkg/ir"
	"github.com/blimu-dev/swagger2ts/pkg/openapi"
)

// ResolveType maps a schema node to a TypeScript type expression. It never
// fails: references become the referenced name, primitives map to their
// TypeScript counterpart and every other shape degrades to any.
func ResolveType(schema openapi.Value) string {
	if ref, ok := schema.Get("$ref"); ok {
		if s, ok := ref.Str(); ok {
			return refName(s)
		}
	}
	typ, ok := schema.Get("type")
	if !ok {
		return ir.AnyType
	}
	name, ok := typ.Str()
	if !ok {
		return ir.AnyType
	}
	if name == "array" {
		items, ok := schema.Get("items")
		if !ok {
			return ir.AnyType + "[]"
		}
		return ResolveType(items) + "[]"
	}
	return primitiveType(name)
}

// primitiveType maps a JSON-schema primitive type name to TypeScript
func primitiveType(name string) string {
	switch name {
	case "string":
		return "string"
	case "integer", "number", "float", "double":
		return "number"
	case "boolean":
		return "boolean"
	default:
		return ir.AnyType
	}
}

// refName returns the final path segment of a reference, e.g.
// "#/definitions/User" -> "User"
func refName(ref string) string {
	name := ref[strings.LastIndex(ref, "/")+1:]
	if name == "" {
		return ir.AnyType
	}
	return name
}

// ExtractTypeDefinition builds a type definition from a named object schema.
// Every property becomes a field; properties missing from "required" are
// optional. A non-string entry in "required" is a RequiredFieldError.
func ExtractTypeDefinition(name string, schema openapi.Value) (ir.TypeDefinition, error) {
	def := ir.NewTypeDefinition(name)
	if desc, ok := schema.Get("description"); ok {
		def.Description, _ = desc.Str()
	}

	props, ok := schema.Get("properties")
	if !ok || props.Kind() != openapi.KindObject {
		return def, nil
	}

	required := map[string]bool{}
	if list, ok := schema.Get("required"); ok {
		entries, _ := list.Array()
		for i, entry := range entries {
			s, ok := entry.Str()
			if !ok {
				return ir.TypeDefinition{}, &errdefs.RequiredFieldError{Schema: name, Index: i, Value: entry.Interface()}
			}
			required[s] = true
		}
	}

	for _, fieldName := range props.Keys() {
		fieldSchema, _ := props.Get(fieldName)
		field := ir.Field{
			Name:           fieldName,
			TypeExpression: ResolveType(fieldSchema),
			Optional:       !required[fieldName],
		}
		if desc, ok := fieldSchema.Get("description"); ok {
			field.Description, _ = desc.Str()
		}
		def.Fields[fieldName] = field
	}
	return def, nil
}
