package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	cli "github.com/blimu-dev/swagger2ts/internal/cli"
	"github.com/blimu-dev/swagger2ts/pkg/config"
)

func main() {
	root := &cobra.Command{
		Use:           "swagger2ts",
		Short:         "Generate TypeScript API clients from Swagger/OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var project string
	var verbose bool
	var fallback cli.FallbackParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate request functions and type declarations per service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath: configPath,
				Project:    project,
				Verbose:    verbose,
				Fallback:   fallback,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to swagger2ts.yaml config")
	cmd.Flags().StringVar(&project, "project", "", "Generate only the named project from config")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	// Single-project flags
	cmd.Flags().StringVarP(&fallback.Swagger, "swagger", "s", "", "Swagger/OpenAPI document (file or http(s) URL, json or yaml)")
	cmd.Flags().StringVarP(&fallback.Out, "out", "o", config.DefaultOut, "Output root directory")
	cmd.Flags().StringVar(&fallback.Out, "service-path", config.DefaultOut, "Alias of --out")
	cmd.Flags().StringVarP(&fallback.Tags, "tags", "t", "", "Comma-separated list of tags to generate")
	cmd.Flags().StringVarP(&fallback.RequestLib, "request-lib-path", "r", config.DefaultRequestLib, "Import statement of the request helper")
	cmd.Flags().StringVarP(&fallback.ProjectName, "project-name", "p", config.DefaultProjectName, "Project directory created under the output root")
	cmd.Flags().StringVarP(&fallback.APIPrefix, "api-prefix", "a", "", "Prefix prepended to every URL")
	cmd.Flags().StringVar(&fallback.Layout, "layout", config.LayoutFlat, "Output layout: flat or nested")
	cmd.Flags().StringVar(&fallback.Suffix, "suffix", config.DefaultSuffix, "File name suffix of the flat layout")

	return cmd
}
