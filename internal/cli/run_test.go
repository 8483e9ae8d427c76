package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

const petstore = `{
	"swagger": "2.0",
	"paths": {
		"/pets": {"get": {"tags": ["Pets"], "responses": {"200": {"schema": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}}}}},
		"/store/inventory": {"get": {"tags": ["Store"], "responses": {"200": {"schema": {"type": "object"}}}}}
	},
	"definitions": {"Pet": {"required": ["name"], "properties": {"name": {"type": "string"}}}}
}`

func TestRunGenerateFlags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "swagger.json")
	require.NoError(t, os.WriteFile(input, []byte(petstore), 0o644))

	var stdout, stderr bytes.Buffer
	err := RunGenerate(RunGenerateParams{
		Verbose: true,
		Stdout:  &stdout,
		Stderr:  &stderr,
		Fallback: FallbackParams{
			Swagger:     input,
			Out:         dir,
			Tags:        "pets",
			RequestLib:  "import { request } from '@/utils/request';",
			ProjectName: "shop",
			APIPrefix:   "/api",
			Layout:      "flat",
			Suffix:      "Controller",
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "shop", "PetsController.ts"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "import { request } from '@/utils/request';\n\n"))
	assert.Contains(t, content, "export async function GetPets(params: any): Promise<Pet[]> {")
	assert.Contains(t, content, "url: '/api/pets',")
	assert.Contains(t, content, "export type Pet = {\n  name: string;\n};")
	assert.NoFileExists(t, filepath.Join(dir, "shop", "StoreController.ts"))

	assert.Contains(t, stdout.String(), "  ✓ Generated pets/PetsController.ts\n")
	assert.Contains(t, stderr.String(), "level=DEBUG")
}

func TestRunGenerateConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swagger.json"), []byte(petstore), 0o644))
	cfg := filepath.Join(dir, "swagger2ts.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("swagger: swagger.json\nout: out\nprojects:\n  - name: web\n    layout: nested\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, RunGenerate(RunGenerateParams{ConfigPath: cfg, Stdout: &stdout, Stderr: &stderr}))

	assert.FileExists(t, filepath.Join(dir, "out", "web", "pets", "index.ts"))
	assert.FileExists(t, filepath.Join(dir, "out", "web", "store", "types.ts"))
	assert.Empty(t, stderr.String())
}

func TestRunGenerateRequiresInput(t *testing.T) {
	err := RunGenerate(RunGenerateParams{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrConfig))
}

func TestRunGenerateRelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swagger.json"), []byte(petstore), 0o644))
	t.Chdir(dir)

	var stdout bytes.Buffer
	err := RunGenerate(RunGenerateParams{
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
		Fallback: FallbackParams{
			Swagger:     "swagger.json",
			Out:         "gen",
			ProjectName: "shop",
		},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "gen", "shop", "PetsController.ts"))
	assert.Contains(t, stdout.String(), "✓ Generated services in "+filepath.Join(dir, "gen", "shop")+"\n")
}
