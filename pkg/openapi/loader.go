package openapi

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

// readFromURI fetches raw document bytes from http(s) URLs or local files.
var readFromURI = openapi3.ReadFromURIs(openapi3.ReadFromHTTP(http.DefaultClient), openapi3.ReadFromFile)

// LoadDocument loads a document from a local file path or an HTTP(S) URL.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadDocument(input string) (Value, error) {
	data, err := ReadDocument(input)
	if err != nil {
		return Value{}, err
	}
	return DecodeDocument(input, data)
}

// ReadDocument returns the raw bytes behind input.
func ReadDocument(input string) ([]byte, error) {
	location := &url.URL{Path: input}
	// Try to parse as URL; if it looks like http(s), fetch via URL
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		location = u
	}
	data, err := readFromURI(openapi3.NewLoader(), location)
	if err != nil {
		return nil, &errdefs.InputError{Path: input, Cause: err}
	}
	return data, nil
}

// DecodeDocument decodes data read from input into a Value tree.
func DecodeDocument(input string, data []byte) (Value, error) {
	var (
		doc Value
		err error
	)
	if isYAML(input) {
		doc, err = ParseYAML(data)
	} else {
		doc, err = ParseJSON(data)
	}
	if err != nil {
		return Value{}, &errdefs.InputError{Path: input, Cause: err}
	}
	return doc, nil
}

func isYAML(input string) bool {
	p := input
	if u, err := url.Parse(input); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
