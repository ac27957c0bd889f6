package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/runner"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply pending migration scripts to the database",
	Long: `Apply every pending migration script, oldest batch first.

Executed scripts are recorded in the schema_migrations table. A previously
failed script blocks new runs until it is resolved.

Examples:
  schemagen apply`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("❌ Loading config:", err)
			os.Exit(1)
		}

		applied, err := runner.New(cfg.MigrationDir, nil).Apply(cmd.Context())
		if err != nil {
			fmt.Println("❌ Applying migrations:", err)
			os.Exit(1)
		}
		if applied == 0 {
			fmt.Println("✅ No pending migrations.")
			return
		}
		fmt.Printf("✅ Applied %d migration(s).\n", applied)
	},
}
