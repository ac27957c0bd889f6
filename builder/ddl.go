package builder

import (
	"fmt"
	"strings"

	"github.com/codegenlab/schemagen/relation"
	"github.com/codegenlab/schemagen/schema"
)

// BuildMigration assembles the forward DDL script for the whole schema:
// entity tables in declaration order, then junction tables, then secondary
// indexes, then row-level security. Statement order matters because later
// sections reference objects created by earlier ones.
func BuildMigration(entities []schema.Entity, res *relation.Resolution) string {
	var b strings.Builder
	b.WriteString("-- migration: create tables\n\n")

	for _, entity := range entities {
		writeCreateTable(&b, entity, res.ForeignKeys[entity.Name])
		b.WriteString("\n")
	}
	for _, j := range res.Junctions {
		writeJunctionTable(&b, j)
		b.WriteString("\n")
	}
	for _, entity := range entities {
		writeIndexes(&b, entity)
	}
	for _, entity := range entities {
		writeRowLevelSecurity(&b, entity)
	}
	return b.String()
}

// BuildRollback assembles the inverse script: junction tables drop first,
// then entity tables in reverse declaration order. CASCADE takes the
// indexes and policies down with each table.
func BuildRollback(entities []schema.Entity, res *relation.Resolution) string {
	var b strings.Builder
	b.WriteString("-- rollback: drop tables\n\n")

	for i := len(res.Junctions) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s CASCADE;\n", res.Junctions[i].Name)
	}
	for i := len(entities) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s CASCADE;\n", entities[i].Name)
	}
	return b.String()
}

func writeCreateTable(b *strings.Builder, entity schema.Entity, fks []relation.ForeignKey) {
	fields := entity.EffectiveFields()
	present := make(map[string]bool, len(fields))

	var lines []string
	for _, f := range fields {
		present[f.Name] = true
		lines = append(lines, "    "+columnDefinition(f))
	}
	// Relationship foreign keys add their column when the schema did not
	// declare one, then attach as table-level constraints.
	for _, fk := range fks {
		if !present[fk.Column] {
			lines = append(lines, fmt.Sprintf("    %s UUID NOT NULL", fk.Column))
		}
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s",
			fk.Column, fk.References, fk.RefColumn, fk.OnDelete))
	}

	fmt.Fprintf(b, "CREATE TABLE IF NOT EXISTS %s (\n%s\n);\n", entity.Name, strings.Join(lines, ",\n"))
}

// columnDefinition renders one column line. Clause order is fixed: type,
// PRIMARY KEY, NOT NULL, UNIQUE, DEFAULT, CHECK, REFERENCES.
func columnDefinition(f schema.Field) string {
	parts := []string{f.Name, f.SQLType()}

	if f.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
		if f.Type == schema.TypeUUID && f.Default == "" {
			parts = append(parts, "DEFAULT gen_random_uuid()")
		}
	}
	if !f.IsNullable() && !f.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}
	if f.Unique && !f.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	if f.Default != "" {
		parts = append(parts, "DEFAULT "+f.Default)
	}
	if f.Check != "" {
		parts = append(parts, "CHECK ("+f.Check+")")
	}
	if table, column, ok := f.ForeignKeyParts(); ok {
		parts = append(parts, fmt.Sprintf("REFERENCES %s(%s) ON DELETE %s", table, column, f.OnDeletePolicy()))
	}
	return strings.Join(parts, " ")
}

// writeJunctionTable emits the conventional many-to-many shape: two NOT
// NULL UUID foreign keys with CASCADE delete, a creation timestamp, a
// composite primary key over both keys and one index per key column.
func writeJunctionTable(b *strings.Builder, j relation.JunctionTable) {
	fmt.Fprintf(b, "CREATE TABLE IF NOT EXISTS %s (\n", j.Name)
	fmt.Fprintf(b, "    %s UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,\n", j.FromColumn, j.FromTable)
	fmt.Fprintf(b, "    %s UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,\n", j.ToColumn, j.ToTable)
	b.WriteString("    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),\n")
	fmt.Fprintf(b, "    PRIMARY KEY (%s, %s)\n);\n", j.FromColumn, j.ToColumn)

	fmt.Fprintf(b, "CREATE INDEX IF NOT EXISTS %s ON %s (%s);\n", junctionIndexName(j.Name, j.FromColumn), j.Name, j.FromColumn)
	fmt.Fprintf(b, "CREATE INDEX IF NOT EXISTS %s ON %s (%s);\n", junctionIndexName(j.Name, j.ToColumn), j.Name, j.ToColumn)
}

// junctionIndexName drops the _id suffix from the column before composing
// the index name: posts_tags + post_id -> posts_tags_post_idx.
func junctionIndexName(table, column string) string {
	return table + "_" + strings.TrimSuffix(column, "_id") + "_idx"
}

func writeIndexes(b *strings.Builder, entity schema.Entity) {
	for _, f := range entity.EffectiveFields() {
		if !f.Indexed || f.PrimaryKey {
			continue
		}
		fmt.Fprintf(b, "CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s (%s);\n",
			entity.Name, f.Name, entity.Name, f.Name)
	}
	for _, idx := range entity.Indexes {
		name := idx.Name
		if name == "" {
			name = entity.Name + "_" + strings.Join(idx.Columns, "_") + "_idx"
		}
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		fmt.Fprintf(b, "CREATE %sINDEX IF NOT EXISTS %s ON %s USING %s (%s);\n",
			unique, name, entity.Name, idx.Method(), strings.Join(idx.Columns, ", "))
	}
}

// writeRowLevelSecurity enables RLS and emits the declared policies. INSERT
// policies take only WITH CHECK because PostgreSQL rejects USING on them;
// UPDATE and ALL policies carry both clauses, with WITH CHECK falling back
// to the USING expression when the schema omits it.
func writeRowLevelSecurity(b *strings.Builder, entity schema.Entity) {
	if !entity.RLSEnabled {
		return
	}
	fmt.Fprintf(b, "ALTER TABLE %s ENABLE ROW LEVEL SECURITY;\n", entity.Name)

	for _, p := range entity.RLSPolicies {
		op := strings.ToUpper(p.Operation)
		fmt.Fprintf(b, "CREATE POLICY \"%s\" ON %s\n    FOR %s", p.Name, entity.Name, op)
		if op != "INSERT" && p.Using != "" {
			fmt.Fprintf(b, "\n    USING (%s)", p.Using)
		}
		if check := p.EffectiveWithCheck(); check != "" {
			fmt.Fprintf(b, "\n    WITH CHECK (%s)", check)
		}
		b.WriteString(";\n")
	}
}
