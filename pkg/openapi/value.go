package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a decoded JSON/YAML node. All accessors are total: asking a node
// for something it does not hold returns the zero value and false instead of
// panicking, so callers can walk irregular documents and fall back to defaults.
type Value struct {
	kind Kind
	b    bool
	s    string // string payload, or the literal text of a number
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value holding the literal text n.
func Number(n string) Value { return Value{kind: KindNumber, s: n} }

// Array returns an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object returns an object value. A nil map yields an empty object.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null (or the zero Value).
func (v Value) IsNull() bool { return v.kind == KindNull }

// Get returns the member key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	child, ok := v.obj[key]
	return child, ok
}

// Lookup follows a chain of object keys.
func (v Value) Lookup(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Str returns the payload of a string value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Bool returns the payload of a boolean value.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Float returns the payload of a number value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Array returns the items of an array value.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Object returns the members of an object value.
func (v Value) Object() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Keys returns the member names of an object in sorted order, nil otherwise.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Interface converts v back to plain Go values (map[string]any, []any,
// string, bool, float64, nil). Used in diagnostics.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if f, ok := v.Float(); ok {
			return f
		}
		return v.s
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, child := range v.obj {
			out[k] = child.Interface()
		}
		return out
	default:
		return nil
	}
}

// ParseJSON decodes a JSON document. Trailing content after the first value
// is rejected.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected content after top-level value")
	}
	return fromInterface(raw), nil
}

func fromInterface(raw any) Value {
	switch t := raw.(type) {
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, child := range t {
			fields[k] = fromInterface(child)
		}
		return Object(fields)
	case []any:
		items := make([]Value, len(t))
		for i, child := range t {
			items[i] = fromInterface(child)
		}
		return Array(items...)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case json.Number:
		return Number(t.String())
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return Null()
	}
}

// ParseYAML decodes a YAML document. Mapping keys are kept as their literal
// text, so unquoted status codes such as 200 stay addressable as "200".
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, err
	}
	return fromNode(&root), nil
}

func fromNode(n *yaml.Node) Value {
	if n == nil {
		return Null()
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null()
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		fields := make(map[string]Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			fields[n.Content[i].Value] = fromNode(n.Content[i+1])
		}
		return Object(fields)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, child := range n.Content {
			items[i] = fromNode(child)
		}
		return Array(items...)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Null()
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return String(n.Value)
			}
			return Bool(b)
		case "!!int", "!!float":
			return Number(n.Value)
		default:
			return String(n.Value)
		}
	default:
		return Null()
	}
}
