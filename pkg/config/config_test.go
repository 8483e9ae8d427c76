package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swagger2ts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
swagger: ./openapi.json
out: ./generated
projects:
  - name: petstore
    tags: [pet, store]
    excludeTags: ["internal"]
    apiPrefix: /api
    layout: nested
    postCommand: ["npx", "prettier", "--write", "."]
    exclude: ["pet/types.ts"]
  - name: admin
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "openapi.json"), cfg.Swagger)
	assert.Equal(t, filepath.Join(dir, "generated"), cfg.Out)
	require.Len(t, cfg.Projects, 2)

	pet := cfg.Projects[0]
	assert.Equal(t, []string{"pet", "store"}, pet.Tags)
	assert.Equal(t, []string{"internal"}, pet.ExcludeTags)
	assert.Equal(t, "/api", pet.APIPrefix)
	assert.Equal(t, LayoutNested, pet.Layout)
	assert.Equal(t, DefaultRequestLib, pet.RequestLib)
	assert.Equal(t, []string{"npx", "prettier", "--write", "."}, pet.GetPostCommand())
	assert.Empty(t, pet.GetPreCommand())

	admin := cfg.Projects[1]
	assert.Equal(t, LayoutFlat, admin.Layout)
	assert.Equal(t, DefaultSuffix, admin.Suffix)
}

func TestLoadKeepsURL(t *testing.T) {
	path := writeConfig(t, `
swagger: https://petstore.swagger.io/v2/swagger.json
projects:
  - name: petstore
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://petstore.swagger.io/v2/swagger.json", cfg.Swagger)
	assert.Equal(t, filepath.Dir(path), cfg.Out)
}

func TestValidateResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := &Config{Swagger: "api/swagger.json", Out: "gen", Projects: []Project{{Name: "web"}}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(dir, "api", "swagger.json"), cfg.Swagger)
	assert.Equal(t, filepath.Join(dir, "gen"), cfg.Out)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing swagger", "projects:\n  - name: a\n", "swagger"},
		{"missing projects", "swagger: a.json\n", "projects"},
		{"missing project name", "swagger: a.json\nprojects:\n  - tags: [x]\n", "projects[0].name"},
		{"duplicate project", "swagger: a.json\nprojects:\n  - name: a\n  - name: a\n", "projects[1].name"},
		{"unknown layout", "swagger: a.json\nprojects:\n  - name: a\n    layout: tree\n", "projects[0].layout"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errdefs.ErrConfig))
			var cfgErr *errdefs.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, test.field, cfgErr.Field)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "swagger: [unterminated"))
	assert.True(t, errors.Is(err, errdefs.ErrConfig))
}

func TestShouldExcludeFile(t *testing.T) {
	p := Project{ExcludeFiles: []string{"UserController.ts", "pet/"}}
	dir := "/out/petstore"

	tests := []struct {
		path     string
		expected bool
	}{
		{"/out/petstore/UserController.ts", true},
		{"/out/petstore/OrderController.ts", false},
		{"/out/petstore/pet/index.ts", true},
		{"/out/petstore/pet/types.ts", true},
		{"/out/petstore/petshop/index.ts", false},
		{"/elsewhere/UserController.ts", false},
	}
	for _, test := range tests {
		if got := p.ShouldExcludeFile(dir, test.path); got != test.expected {
			t.Errorf("ShouldExcludeFile(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}

	assert.False(t, (&Project{}).ShouldExcludeFile(dir, "/out/petstore/a.ts"))
}
