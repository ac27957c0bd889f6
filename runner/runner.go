// Package runner applies generated migration and rollback scripts to
// Postgres and tracks them in a schema_migrations table. Scripts come in
// pairs sharing a batch timestamp: V<ts>__create_tables.sql forward,
// V<ts>__rollback.sql inverse. Only forward scripts are tracked; the
// rollback script of a batch is looked up by its timestamp prefix.
package runner

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/codegenlab/schemagen/database"
)

const rollbackSuffix = "__rollback.sql"

// MigrationRecord is one tracked execution of a forward script.
type MigrationRecord struct {
	ID            int
	Filename      string
	ExecutedAt    time.Time
	ExecutionTime time.Duration
	ExecutedBy    string
	Status        string
	ErrorMessage  string
	Checksum      string
}

// Runner executes scripts from one migration directory.
type Runner struct {
	dir string
	log *slog.Logger
}

// New builds a Runner over the given directory. A nil logger falls back to
// slog.Default().
func New(dir string, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{dir: dir, log: log}
}

func ensureMigrationsTable(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id SERIAL PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT now(),
		execution_time INTERVAL,
		executed_by TEXT,
		status TEXT DEFAULT 'success',
		error_message TEXT,
		checksum TEXT
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %v", err)
	}
	return nil
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	return u.Username
}

func checksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

// forwardScripts lists the forward .sql files in the directory, sorted so
// batch timestamps apply in order.
func (r *Runner) forwardScripts() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %v", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// rollbackFor maps a forward script to its batch's rollback script.
func rollbackFor(forward string) (string, error) {
	prefix, _, found := strings.Cut(forward, "__")
	if !found {
		return "", fmt.Errorf("migration file %s has no batch prefix", forward)
	}
	return prefix + rollbackSuffix, nil
}

func (r *Runner) readScript(filename string) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.dir, filename))
	if err != nil {
		return "", fmt.Errorf("read file %s: %v", filename, err)
	}
	return string(content), nil
}

func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	rows, err := conn.Query(ctx, `SELECT filename FROM schema_migrations WHERE status = 'success';`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %v", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var fname string
		if err := rows.Scan(&fname); err != nil {
			return nil, fmt.Errorf("scan filename: %v", err)
		}
		applied[fname] = true
	}
	return applied, nil
}

func appliedMigrationsOrdered(ctx context.Context, conn *pgx.Conn) ([]string, error) {
	rows, err := conn.Query(ctx, `SELECT filename FROM schema_migrations WHERE status = 'success' ORDER BY applied_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %v", err)
	}
	defer rows.Close()

	var applied []string
	for rows.Next() {
		var fname string
		if err := rows.Scan(&fname); err != nil {
			return nil, fmt.Errorf("scan filename: %v", err)
		}
		applied = append(applied, fname)
	}
	return applied, nil
}

func failedMigrations(ctx context.Context, conn *pgx.Conn) ([]MigrationRecord, error) {
	rows, err := conn.Query(ctx, `SELECT filename, error_message FROM schema_migrations WHERE status = 'failed';`)
	if err != nil {
		return nil, fmt.Errorf("query failed migrations: %v", err)
	}
	defer rows.Close()

	var failed []MigrationRecord
	for rows.Next() {
		var record MigrationRecord
		if err := rows.Scan(&record.Filename, &record.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan failed migration: %v", err)
		}
		failed = append(failed, record)
	}
	return failed, nil
}

func (r *Runner) applyOne(ctx context.Context, conn *pgx.Conn, filename string) error {
	start := time.Now()
	sql, err := r.readScript(filename)
	if err != nil {
		return err
	}

	r.log.InfoContext(ctx, "applying migration", "file", filename)
	_, err = conn.Exec(ctx, sql)
	elapsed := time.Since(start)

	if err != nil {
		r.log.ErrorContext(ctx, "migration failed", "file", filename, "error", err)
		_, insertErr := conn.Exec(ctx, `
			INSERT INTO schema_migrations (filename, execution_time, executed_by, status, error_message, checksum)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, filename, elapsed, currentUser(), "failed", err.Error(), checksum(sql))
		if insertErr != nil {
			return fmt.Errorf("recording failed migration %s: %v", filename, insertErr)
		}
		return fmt.Errorf("executing migration %s: %v", filename, err)
	}

	r.log.InfoContext(ctx, "migration applied", "file", filename, "elapsed", elapsed)
	_, err = conn.Exec(ctx, `
		INSERT INTO schema_migrations (filename, execution_time, executed_by, status, checksum)
		VALUES ($1, $2, $3, $4, $5)
	`, filename, elapsed, currentUser(), "success", checksum(sql))
	if err != nil {
		return fmt.Errorf("recording migration %s: %v", filename, err)
	}
	return nil
}

func (r *Runner) rollbackOne(ctx context.Context, conn *pgx.Conn, forward string) error {
	start := time.Now()
	rollback, err := rollbackFor(forward)
	if err != nil {
		return err
	}
	sql, err := r.readScript(rollback)
	if err != nil {
		return err
	}

	r.log.InfoContext(ctx, "rolling back migration", "file", forward, "rollback", rollback)
	if _, err := conn.Exec(ctx, sql); err != nil {
		r.log.ErrorContext(ctx, "rollback failed", "file", rollback, "error", err)
		return fmt.Errorf("executing rollback %s: %v", rollback, err)
	}
	r.log.InfoContext(ctx, "rollback applied", "file", rollback, "elapsed", time.Since(start))

	if _, err := conn.Exec(ctx, `DELETE FROM schema_migrations WHERE filename = $1;`, forward); err != nil {
		return fmt.Errorf("removing migration record for %s: %v", forward, err)
	}
	return nil
}

// Apply executes every pending forward script in order. Previously failed
// runs block new ones until resolved.
func (r *Runner) Apply(ctx context.Context) (int, error) {
	conn, err := database.GetConnection(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close(ctx)

	if err := ensureMigrationsTable(ctx, conn); err != nil {
		return 0, err
	}

	failed, err := failedMigrations(ctx, conn)
	if err != nil {
		return 0, fmt.Errorf("check failed migrations: %v", err)
	}
	if len(failed) > 0 {
		for _, record := range failed {
			r.log.ErrorContext(ctx, "unresolved failed migration", "file", record.Filename, "error", record.ErrorMessage)
		}
		return 0, fmt.Errorf("failed migrations detected")
	}

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return 0, err
	}
	files, err := r.forwardScripts()
	if err != nil {
		return 0, err
	}

	var pending []string
	for _, f := range files {
		if !applied[f] {
			pending = append(pending, f)
		}
	}
	for _, f := range pending {
		if err := r.applyOne(ctx, conn, f); err != nil {
			return 0, err
		}
	}
	return len(pending), nil
}

// Rollback undoes the most recent applied batches, newest first.
func (r *Runner) Rollback(ctx context.Context, steps int) (int, error) {
	conn, err := database.GetConnection(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close(ctx)

	if err := ensureMigrationsTable(ctx, conn); err != nil {
		return 0, err
	}

	applied, err := appliedMigrationsOrdered(ctx, conn)
	if err != nil {
		return 0, err
	}
	if len(applied) == 0 {
		return 0, nil
	}
	if steps > len(applied) {
		steps = len(applied)
	}

	for _, f := range applied[:steps] {
		if err := r.rollbackOne(ctx, conn, f); err != nil {
			return 0, err
		}
	}
	return steps, nil
}

// Status reports applied, pending and failed forward scripts.
func (r *Runner) Status(ctx context.Context) (applied, pending []string, failed []MigrationRecord, err error) {
	conn, err := database.GetConnection(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	defer conn.Close(ctx)

	if err := ensureMigrationsTable(ctx, conn); err != nil {
		return nil, nil, nil, err
	}

	appliedMap, err := appliedMigrations(ctx, conn)
	if err != nil {
		return nil, nil, nil, err
	}
	for name := range appliedMap {
		applied = append(applied, name)
	}
	sort.Strings(applied)

	files, err := r.forwardScripts()
	if err != nil {
		return nil, nil, nil, err
	}
	for _, f := range files {
		if !appliedMap[f] {
			pending = append(pending, f)
		}
	}

	failed, err = failedMigrations(ctx, conn)
	if err != nil {
		return nil, nil, nil, err
	}
	return applied, pending, failed, nil
}
