package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/runner"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied, pending and failed migrations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("❌ Loading config:", err)
			os.Exit(1)
		}

		applied, pending, failed, err := runner.New(cfg.MigrationDir, nil).Status(cmd.Context())
		if err != nil {
			fmt.Println("❌ Checking status:", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen, color.Bold)
		yellow := color.New(color.FgYellow, color.Bold)
		red := color.New(color.FgRed, color.Bold)

		green.Printf("Applied (%d):\n", len(applied))
		for _, f := range applied {
			fmt.Println("   ✅", f)
		}
		yellow.Printf("Pending (%d):\n", len(pending))
		for _, f := range pending {
			fmt.Println("   ⏳", f)
		}
		if len(failed) > 0 {
			red.Printf("Failed (%d):\n", len(failed))
			for _, record := range failed {
				fmt.Printf("   ❌ %s: %s\n", record.Filename, record.ErrorMessage)
			}
		}
	},
}
