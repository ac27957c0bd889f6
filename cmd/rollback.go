package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/runner"
)

var rollbackSteps int

func init() {
	rollbackCmd.Flags().IntVarP(&rollbackSteps, "steps", "s", 1, "Number of applied batches to roll back")
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recently applied migration batches",
	Long: `Roll back applied migrations, newest first, using each batch's
rollback script.

Examples:
  schemagen rollback
  schemagen rollback --steps 2`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("❌ Loading config:", err)
			os.Exit(1)
		}

		rolledBack, err := runner.New(cfg.MigrationDir, nil).Rollback(cmd.Context(), rollbackSteps)
		if err != nil {
			fmt.Println("❌ Rolling back:", err)
			os.Exit(1)
		}
		if rolledBack == 0 {
			fmt.Println("✅ No migrations to rollback.")
			return
		}
		fmt.Printf("✅ Rolled back %d migration(s).\n", rolledBack)
	},
}
