package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemagen",
	Short: "Schema-driven code and migration generator for Go services",
	Long: `schemagen compiles a declarative entity schema into backend artifacts:
persistence structs, DTOs, service interfaces and implementations, REST
controllers and SQL migration scripts with rollback.

Examples:

  schemagen init
  schemagen validate -f schema.yaml
  schemagen generate -f schema.yaml -o generated/
  schemagen apply
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(statusCmd)
}
