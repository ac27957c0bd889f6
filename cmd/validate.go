package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegenlab/schemagen/relation"
	"github.com/codegenlab/schemagen/schema"
)

var validateSchemaFile string

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "file", "f", "schema.yaml", "Schema file to validate (.yaml, .yml or .json)")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a schema file without generating anything",
	Long: `Validate entity definitions and relationships.

Checks naming, primary keys, type modifiers (VARCHAR length, NUMERIC
precision/scale), index column references and relationship endpoints.

Examples:
  schemagen validate
  schemagen validate -f custom.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := schema.Load(validateSchemaFile)
		if err != nil {
			color.Red("❌ Schema validation failed!")
			fmt.Println("  ", err)
			os.Exit(1)
		}

		if _, err := relation.Resolve(f.Entities, f.Relationships); err != nil {
			color.Red("❌ Relationship validation failed!")
			fmt.Println("  ", err)
			os.Exit(1)
		}

		color.Green("✅ Schema validation passed!")
		for _, e := range f.Entities {
			fmt.Printf("   - %s (%d fields", e.Name, len(e.Fields))
			if e.Timestamps {
				fmt.Print(", timestamps")
			}
			if e.SoftDelete {
				fmt.Print(", soft delete")
			}
			if e.RLSEnabled {
				fmt.Printf(", %d RLS policies", len(e.RLSPolicies))
			}
			fmt.Println(")")
		}
		if len(f.Relationships) > 0 {
			fmt.Printf("   - %d relationship(s)\n", len(f.Relationships))
		}
	},
}
