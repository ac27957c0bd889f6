package schema

import (
	"strconv"
	"strings"
)

// Field describes one column of an Entity. Fields are authored once and read
// by every builder; nothing mutates them after construction.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Length      *int      `json:"length,omitempty" yaml:"length,omitempty"`
	Precision   *int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale       *int      `json:"scale,omitempty" yaml:"scale,omitempty"`
	PrimaryKey  bool      `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	Unique      bool      `json:"unique,omitempty" yaml:"unique,omitempty"`
	Nullable    *bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Default     string    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Check       string    `json:"checkConstraint,omitempty" yaml:"checkConstraint,omitempty"`
	ForeignKey  string    `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty"`
	OnDelete    string    `json:"onDelete,omitempty" yaml:"onDelete,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Indexed     bool      `json:"indexed,omitempty" yaml:"indexed,omitempty"`
}

// IsNullable resolves the tri-state Nullable pointer; columns are nullable
// unless the schema says otherwise.
func (f Field) IsNullable() bool {
	return f.Nullable == nil || *f.Nullable
}

// OnDeletePolicy resolves the delete policy, defaulting to RESTRICT.
func (f Field) OnDeletePolicy() string {
	if f.OnDelete == "" {
		return "RESTRICT"
	}
	return strings.ToUpper(f.OnDelete)
}

// SQLType renders the full column type, including the VARCHAR length and
// NUMERIC precision/scale modifiers when present.
func (f Field) SQLType() string {
	switch {
	case f.Type == TypeVarchar && f.Length != nil:
		return "VARCHAR(" + strconv.Itoa(*f.Length) + ")"
	case f.Type == TypeNumeric && f.Precision != nil:
		scale := 0
		if f.Scale != nil {
			scale = *f.Scale
		}
		return "NUMERIC(" + strconv.Itoa(*f.Precision) + ", " + strconv.Itoa(scale) + ")"
	default:
		return f.Type.SQL()
	}
}

// ForeignKeyParts splits a "table.column" reference. The column defaults to
// "id" when the reference names only a table.
func (f Field) ForeignKeyParts() (table, column string, ok bool) {
	if f.ForeignKey == "" {
		return "", "", false
	}
	table, column, found := strings.Cut(f.ForeignKey, ".")
	if !found {
		return f.ForeignKey, "id", true
	}
	return table, column, true
}

var (
	notNull  = false
	nullable = true
)

// Entity is the schema description of one table. Field order is preserved in
// every generated declaration.
type Entity struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field     `json:"fields" yaml:"fields"`
	Indexes     []Index     `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	RLSEnabled  bool        `json:"rlsEnabled,omitempty" yaml:"rlsEnabled,omitempty"`
	RLSPolicies []RLSPolicy `json:"rlsPolicies,omitempty" yaml:"rlsPolicies,omitempty"`
	SoftDelete  bool        `json:"softDelete,omitempty" yaml:"softDelete,omitempty"`
	Timestamps  bool        `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// EffectiveFields returns the declared fields plus the implicit ones the
// feature flags add: created_at/updated_at for Timestamps, deleted_at for
// SoftDelete. The entity itself is never mutated; builders always consume
// this expanded view.
func (e Entity) EffectiveFields() []Field {
	fields := make([]Field, 0, len(e.Fields)+3)
	fields = append(fields, e.Fields...)
	if e.Timestamps {
		fields = append(fields,
			Field{Name: "created_at", Type: TypeTimestamptz, Nullable: &notNull, Default: "NOW()", Description: "creation time"},
			Field{Name: "updated_at", Type: TypeTimestamptz, Nullable: &notNull, Default: "NOW()", Description: "last update time"},
		)
	}
	if e.SoftDelete {
		fields = append(fields,
			Field{Name: "deleted_at", Type: TypeTimestamptz, Nullable: &nullable, Description: "soft-delete marker"},
		)
	}
	return fields
}

// PrimaryKey returns the single primary-key field. Entities that pass
// Validate always have exactly one.
func (e Entity) PrimaryKey() (Field, bool) {
	for _, f := range e.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	return Field{}, false
}

// IndexType mirrors the PostgreSQL access methods the generator emits.
type IndexType string

const (
	BTree IndexType = "BTREE"
	Hash  IndexType = "HASH"
	GIN   IndexType = "GIN"
	GiST  IndexType = "GIST"
)

// Index is a secondary index declaration on an Entity. Column references are
// checked against the owning entity's effective fields during validation.
type Index struct {
	Name    string    `json:"name" yaml:"name"`
	Columns []string  `json:"columns" yaml:"columns"`
	Type    IndexType `json:"type,omitempty" yaml:"type,omitempty"`
	Unique  bool      `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// Method resolves the access method, defaulting to BTREE.
func (i Index) Method() IndexType {
	if i.Type == "" {
		return BTree
	}
	return IndexType(strings.ToUpper(string(i.Type)))
}

// RelationType classifies an EntityRelationship.
type RelationType string

const (
	OneToOne   RelationType = "ONE_TO_ONE"
	OneToMany  RelationType = "ONE_TO_MANY"
	ManyToMany RelationType = "MANY_TO_MANY"
)

// EntityRelationship declares a link between two entities. For MANY_TO_MANY
// the junction table name and target foreign-key column may be left empty and
// are derived by convention during resolution.
type EntityRelationship struct {
	FromEntity            string       `json:"fromEntity" yaml:"fromEntity"`
	ToEntity              string       `json:"toEntity" yaml:"toEntity"`
	Type                  RelationType `json:"type" yaml:"type"`
	ForeignKeyField       string       `json:"foreignKeyField,omitempty" yaml:"foreignKeyField,omitempty"`
	JunctionTable         string       `json:"junctionTable,omitempty" yaml:"junctionTable,omitempty"`
	TargetForeignKeyField string       `json:"targetForeignKeyField,omitempty" yaml:"targetForeignKeyField,omitempty"`
}

// RLSPolicy is one row-level-security policy attached to a table.
type RLSPolicy struct {
	Name      string `json:"name" yaml:"name"`
	Operation string `json:"operation" yaml:"operation"`
	Using     string `json:"using,omitempty" yaml:"using,omitempty"`
	WithCheck string `json:"withCheck,omitempty" yaml:"withCheck,omitempty"`
}

// IsWrite reports whether the policy covers INSERT, UPDATE or ALL.
func (p RLSPolicy) IsWrite() bool {
	switch strings.ToUpper(p.Operation) {
	case "INSERT", "UPDATE", "ALL":
		return true
	}
	return false
}

// EffectiveWithCheck returns the write-validation predicate. Write policies
// without an explicit WITH CHECK fall back to the USING expression; the
// fallback is rendered into the DDL rather than dropped.
func (p RLSPolicy) EffectiveWithCheck() string {
	if p.WithCheck != "" {
		return p.WithCheck
	}
	if p.IsWrite() {
		return p.Using
	}
	return ""
}
