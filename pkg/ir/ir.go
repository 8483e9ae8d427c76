package ir

import (
	"sort"
	"strings"
)

// HTTPMethod is an upper-case HTTP verb an operation can be declared with
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodPatch   HTTPMethod = "PATCH"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
)

// DefaultServiceName groups operations that declare no tag
const DefaultServiceName = "default"

// AnyType is the type expression used whenever nothing better can be inferred
const AnyType = "any"

// Operation represents a single API operation (endpoint + method)
type Operation struct {
	Path             string
	Method           HTTPMethod
	FunctionName     string
	RequestTypeName  string
	ResponseTypeName string
	OperationID      string
	Summary          string
	Deprecated       bool
}

// UsesQueryParams reports whether the generated function passes its argument as
// query parameters (GET/DELETE) rather than as a request body
func (op Operation) UsesQueryParams() bool {
	return op.Method == MethodGet || op.Method == MethodDelete
}

// Field is a single property of a TypeDefinition
type Field struct {
	Name           string
	TypeExpression string
	Optional       bool
	Description    string
}

// TypeDefinition is a named TypeScript type alias. A definition without
// fields renders as an alias of any.
type TypeDefinition struct {
	Name        string
	Description string
	Fields      map[string]Field
	// Synthesized is set for request types built from flat parameter lists
	Synthesized bool
}

// NewTypeDefinition returns an empty definition named name
func NewTypeDefinition(name string) TypeDefinition {
	return TypeDefinition{Name: name, Fields: map[string]Field{}}
}

// SortedFields returns the fields ordered by name
func (t TypeDefinition) SortedFields() []Field {
	out := make([]Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Service groups the operations sharing one normalized tag together with the
// type definitions they reference
type Service struct {
	Name            string
	Operations      []Operation
	TypeDefinitions map[string]TypeDefinition
}

// NewService returns an empty service named name
func NewService(name string) *Service {
	return &Service{Name: name, TypeDefinitions: map[string]TypeDefinition{}}
}

// SortedTypeDefinitions returns the definitions ordered by name
func (s Service) SortedTypeDefinitions() []TypeDefinition {
	names := make([]string, 0, len(s.TypeDefinitions))
	for name := range s.TypeDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]TypeDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, s.TypeDefinitions[name])
	}
	return out
}

// HasType reports whether the service defines a type called name
func (s Service) HasType(name string) bool {
	_, ok := s.TypeDefinitions[name]
	return ok
}

// ReferencesType reports whether any operation's request or response type
// name contains name as a substring, so User matches both User[] and
// UserUpdateRequest.
func (s Service) ReferencesType(name string) bool {
	for _, op := range s.Operations {
		if strings.Contains(op.RequestTypeName, name) || strings.Contains(op.ResponseTypeName, name) {
			return true
		}
	}
	return false
}
