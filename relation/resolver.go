// Package relation turns declared entity relationships into the concrete
// schema objects the DDL builder emits: foreign-key constraints for 1:1 and
// 1:N links, junction-table definitions for N:M links.
package relation

import (
	"fmt"

	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

// UnknownEntityError is returned when a relationship names an entity that is
// not part of the supplied schema. Relationships are never silently skipped.
type UnknownEntityError struct {
	FromEntity string
	ToEntity   string
	Missing    string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("relationship %s -> %s references unknown entity %q",
		e.FromEntity, e.ToEntity, e.Missing)
}

// RelationshipError reports a structurally invalid relationship declaration,
// such as junction settings on a foreign-key relationship type.
type RelationshipError struct {
	FromEntity string
	ToEntity   string
	Message    string
}

func (e *RelationshipError) Error() string {
	return fmt.Sprintf("relationship %s -> %s: %s", e.FromEntity, e.ToEntity, e.Message)
}

// ForeignKey is a resolved FOREIGN KEY constraint, attached to Table's DDL.
type ForeignKey struct {
	Table      string
	Column     string
	References string
	RefColumn  string
	OnDelete   string
}

// JunctionTable is the resolved definition of a many-to-many auxiliary
// table: two NOT NULL UUID columns with CASCADE delete, a created_at
// timestamp, a composite primary key over both columns and one index per
// column.
type JunctionTable struct {
	Name       string
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
}

// Resolution is the output of Resolve, consumed by the DDL builder.
type Resolution struct {
	// ForeignKeys maps a table name to the constraints its CREATE TABLE
	// carries, in declaration order.
	ForeignKeys map[string][]ForeignKey
	Junctions   []JunctionTable
}

// Resolve validates and expands the declared relationships against the
// entity set. A relationship whose endpoints are not both present fails with
// UnknownEntityError.
func Resolve(entities []schema.Entity, relationships []schema.EntityRelationship) (*Resolution, error) {
	byName := make(map[string]schema.Entity, len(entities))
	for _, e := range entities {
		byName[e.Name] = e
	}

	res := &Resolution{ForeignKeys: make(map[string][]ForeignKey)}
	for _, rel := range relationships {
		if _, ok := byName[rel.FromEntity]; !ok {
			return nil, &UnknownEntityError{FromEntity: rel.FromEntity, ToEntity: rel.ToEntity, Missing: rel.FromEntity}
		}
		if _, ok := byName[rel.ToEntity]; !ok {
			return nil, &UnknownEntityError{FromEntity: rel.FromEntity, ToEntity: rel.ToEntity, Missing: rel.ToEntity}
		}

		switch rel.Type {
		case schema.ManyToMany:
			res.Junctions = append(res.Junctions, junctionFor(rel))
		case schema.OneToOne, schema.OneToMany:
			if rel.JunctionTable != "" || rel.TargetForeignKeyField != "" {
				return nil, &RelationshipError{
					FromEntity: rel.FromEntity,
					ToEntity:   rel.ToEntity,
					Message:    "junctionTable and targetForeignKeyField are only valid for MANY_TO_MANY",
				}
			}
			res.ForeignKeys[rel.ToEntity] = append(res.ForeignKeys[rel.ToEntity], foreignKeyFor(rel, byName[rel.ToEntity]))
		default:
			return nil, &RelationshipError{
				FromEntity: rel.FromEntity,
				ToEntity:   rel.ToEntity,
				Message:    fmt.Sprintf("unsupported type %q", rel.Type),
			}
		}
	}
	return res, nil
}

// foreignKeyFor builds the constraint attached to the target entity,
// referencing fromEntity(id). The delete policy comes from the matching
// field declaration on the target entity when one exists, otherwise
// RESTRICT.
func foreignKeyFor(rel schema.EntityRelationship, target schema.Entity) ForeignKey {
	column := rel.ForeignKeyField
	if column == "" {
		column = naming.ToSingular(rel.FromEntity) + "_id"
	}
	onDelete := "RESTRICT"
	for _, f := range target.Fields {
		if f.Name == column && f.OnDelete != "" {
			onDelete = f.OnDeletePolicy()
			break
		}
	}
	return ForeignKey{
		Table:      rel.ToEntity,
		Column:     column,
		References: rel.FromEntity,
		RefColumn:  "id",
		OnDelete:   onDelete,
	}
}

// junctionFor fills in the naming conventions for a many-to-many link:
// junction table {from}_{to}, target column singularize(to)+"_id".
func junctionFor(rel schema.EntityRelationship) JunctionTable {
	name := rel.JunctionTable
	if name == "" {
		name = rel.FromEntity + "_" + rel.ToEntity
	}
	fromColumn := rel.ForeignKeyField
	if fromColumn == "" {
		fromColumn = naming.ToSingular(rel.FromEntity) + "_id"
	}
	toColumn := rel.TargetForeignKeyField
	if toColumn == "" {
		toColumn = naming.ToSingular(rel.ToEntity) + "_id"
	}
	return JunctionTable{
		Name:       name,
		FromTable:  rel.FromEntity,
		FromColumn: fromColumn,
		ToTable:    rel.ToEntity,
		ToColumn:   toColumn,
	}
}
