package swagger2ts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

func TestGenerate_NoDocument(t *testing.T) {
	err := Generate(GenerateOptions{Swagger: "/no/such/file.json", Out: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrInput))
}

func TestGenerateFromConfig_SingleProject(t *testing.T) {
	dir := t.TempDir()
	doc := `{"openapi": "3.0.0", "paths": {"/ping": {"get": {"operationId": "ping"}}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.json"), []byte(doc), 0o644))
	cfg := filepath.Join(dir, "swagger2ts.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("swagger: openapi.json\nprojects:\n  - name: a\n  - name: b\n"), 0o644))

	require.NoError(t, GenerateFromConfig(cfg, "b"))

	assert.FileExists(t, filepath.Join(dir, "b", "DefaultController.ts"))
	assert.NoDirExists(t, filepath.Join(dir, "a"))
}
