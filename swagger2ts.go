// Package swagger2ts generates TypeScript API clients from Swagger 2.0 and
// OpenAPI 3.0 documents.
//
// Every operation of the document becomes an exported async function that
// delegates to a configurable request helper. Operations are grouped into one
// module per tag, together with the type declarations they reference.
//
// Quick Start:
//
//	import "github.com/blimu-dev/swagger2ts"
//
//	err := swagger2ts.Generate(swagger2ts.GenerateOptions{
//		Swagger: "./swagger.json",
//		Out:     "./src/services",
//	})
//
// For more advanced usage, see the generator package.
package swagger2ts

import (
	"github.com/blimu-dev/swagger2ts/pkg/generator"
)

// GenerateOptions contains the options of a single-project run
type GenerateOptions = generator.GenerateOptions

// Generate runs a single project described by opts.
//
// Example:
//
//	err := swagger2ts.Generate(swagger2ts.GenerateOptions{
//		Swagger:     "https://petstore.swagger.io/v2/swagger.json",
//		Out:         "./src/services",
//		ProjectName: "petstore",
//		Tags:        []string{"pet", "store"},
//		APIPrefix:   "/api",
//		Layout:      "nested",
//	})
func Generate(opts GenerateOptions) error {
	return generator.Generate(opts)
}

// GenerateFromConfig generates every project of a YAML configuration file.
// Optionally, you can specify a single project name to generate only that project.
//
// Example:
//
//	// Generate all projects from config
//	err := swagger2ts.GenerateFromConfig("./swagger2ts.yaml")
//
//	// Generate only a specific project
//	err := swagger2ts.GenerateFromConfig("./swagger2ts.yaml", "petstore")
func GenerateFromConfig(configPath string, onlyProject ...string) error {
	project := ""
	if len(onlyProject) > 0 {
		project = onlyProject[0]
	}
	return generator.GenerateFromConfig(configPath, project)
}
