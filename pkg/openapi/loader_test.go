package openapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

func TestLoadDocumentFromFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"swagger": "2.0", "paths": {}}`), 0o644))
	yamlPath := filepath.Join(dir, "api.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("openapi: 3.0.1\npaths: {}\n"), 0o644))

	doc, err := LoadDocument(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, DialectSwagger2, DetectDialect(doc))

	doc, err = LoadDocument(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, DialectOpenAPI3, DetectDialect(doc))
}

func TestLoadDocumentFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"openapi": "3.0.0", "paths": {"/ping": {}}}`))
	}))
	defer srv.Close()

	doc, err := LoadDocument(srv.URL + "/openapi.json")
	require.NoError(t, err)
	paths, ok := doc.Get("paths")
	require.True(t, ok)
	assert.Equal(t, []string{"/ping"}, paths.Keys())
}

func TestLoadDocumentErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"paths": `), 0o644))

	tests := []struct {
		name  string
		input string
	}{
		{"missing file", filepath.Join(dir, "missing.json")},
		{"malformed json", broken},
		{"empty path", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadDocument(test.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errdefs.ErrInput), "got %v", err)
		})
	}
}
