package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/generator"
	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

var (
	generateSchemaFile string
	generateOutputDir  string
	dryRunGenerate     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateSchemaFile, "file", "f", "schema.yaml", "Schema file to load (.yaml, .yml or .json)")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", "", "Output directory for generated source (default from config)")
	generateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Preview artifact names and SQL without writing files")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate backend artifacts and migration scripts from a schema",
	Long: `Generate every artifact the schema describes.

Per entity: persistence struct, Create/Update/Response DTOs, service
interface and implementation, REST controller. Per batch: one migration
script and its rollback, sharing a timestamp.

Examples:
  schemagen generate
  schemagen generate -f custom.yaml -o out/
  schemagen generate --dry-run`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("❌ Loading config:", err)
			os.Exit(1)
		}
		if generateOutputDir != "" {
			cfg.OutputDir = generateOutputDir
		}

		f, err := schema.Load(generateSchemaFile)
		if err != nil {
			fmt.Println("❌ Loading schema:", err)
			os.Exit(1)
		}

		batch, err := generator.New(cfg, nil).GenerateAll(cmd.Context(), f.Entities, f.Relationships)
		if err != nil {
			fmt.Println("❌ Generating artifacts:", err)
			os.Exit(1)
		}

		names := make([]string, 0, len(batch.Artifacts))
		for name := range batch.Artifacts {
			names = append(names, name)
		}
		sort.Strings(names)

		if dryRunGenerate {
			fmt.Println("\n================ DRY RUN: Generation Preview ================")
			for _, name := range names {
				fmt.Println("  -", artifactPath(cfg, name))
			}
			fmt.Println("\n-- Migration SQL --")
			fmt.Println(batch.Artifacts[batch.MigrationFile()])
			fmt.Println("-- Rollback SQL --")
			fmt.Println(batch.Artifacts[batch.RollbackFile()])
			fmt.Println("==============================================================")
			fmt.Println("(Dry run only. No files were written.)")
			return
		}

		for _, dir := range []string{cfg.OutputDir, cfg.MigrationDir} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Println("❌ Creating output directory:", err)
				os.Exit(1)
			}
		}
		for _, name := range names {
			path := artifactPath(cfg, name)
			if err := os.WriteFile(path, []byte(batch.Artifacts[name]), 0644); err != nil {
				fmt.Println("❌ Writing", path+":", err)
				os.Exit(1)
			}
		}
		supportPath := filepath.Join(cfg.OutputDir, "support.go")
		if err := os.WriteFile(supportPath, []byte(supportSource(cfg.Package)), 0644); err != nil {
			fmt.Println("❌ Writing", supportPath+":", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Generated %d artifacts for %d entities (run %s)\n",
			len(batch.Artifacts), len(f.Entities), batch.RunID)
		fmt.Println("📁 Source:", cfg.OutputDir)
		fmt.Println("📁 Migrations:", cfg.MigrationDir)
	},
}

// artifactPath maps an artifact name to its on-disk location: SQL scripts
// keep their names under the migration directory, source artifacts become
// snake_case .go files under the output directory.
func artifactPath(cfg config.Config, name string) string {
	if strings.HasSuffix(name, ".sql") {
		return filepath.Join(cfg.MigrationDir, name)
	}
	return filepath.Join(cfg.OutputDir, naming.ToSnakeCase(name)+".go")
}

// supportSource is the static companion file generated source shares: the
// response envelopes and HTTP helpers every controller references.
func supportSource(pkg string) string {
	return `// Code generated by schemagen. DO NOT EDIT.

package ` + pkg + `

import (
	"encoding/json"
	"net/http"
)

// Result is the envelope every endpoint responds with.
type Result[T any] struct {
	Success bool   ` + "`json:\"success\"`" + `
	Data    T      ` + "`json:\"data,omitempty\"`" + `
	Error   string ` + "`json:\"error,omitempty\"`" + `
}

// PageResult is one page of a list response.
type PageResult[T any] struct {
	Items []T   ` + "`json:\"items\"`" + `
	Page  int   ` + "`json:\"page\"`" + `
	Size  int   ` + "`json:\"size\"`" + `
	Total int64 ` + "`json:\"total\"`" + `
}

func writeResult(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Result[any]{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Result[any]{Success: false, Error: err.Error()})
}
`
}
