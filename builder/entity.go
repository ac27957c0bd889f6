package builder

import (
	"sort"

	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

// BuildEntity produces the persistence-struct model for one entity. Field
// order follows the schema declaration, with the implicit timestamp and
// soft-delete columns appended after the declared ones.
func BuildEntity(entity schema.Entity, hdr Header) (EntityModel, error) {
	if _, ok := entity.PrimaryKey(); !ok {
		return EntityModel{}, missingPrimaryKey(entity)
	}

	fields := entity.EffectiveFields()
	models := make([]FieldModel, 0, len(fields))
	for _, f := range fields {
		models = append(models, fieldModel(f))
	}

	return EntityModel{
		Header:      hdr,
		TypeName:    naming.ToClassName(entity.Name),
		TableName:   entity.Name,
		Description: entity.Description,
		Fields:      models,
		Imports:     importsFor(models),
		SoftDelete:  entity.SoftDelete,
		Timestamps:  entity.Timestamps,
	}, nil
}

// fieldModel maps one schema field to its generated-code shape. Validation
// rules are not attached here; they only apply to CREATE and UPDATE DTOs.
func fieldModel(f schema.Field) FieldModel {
	return FieldModel{
		Name:        naming.ToExportedName(f.Name),
		JSONName:    naming.ToFieldName(f.Name),
		ColumnName:  f.Name,
		GoType:      f.Type.GoType(),
		Description: f.Description,
		PrimaryKey:  f.PrimaryKey,
		Unique:      f.Unique,
		Nullable:    f.IsNullable(),
		Required:    !f.IsNullable(),
		ForeignKey:  f.ForeignKey,
	}
}

// goTypeImports maps generated field types to the import they need.
var goTypeImports = map[string]string{
	"uuid.UUID":       "github.com/google/uuid",
	"time.Time":       "time",
	"json.RawMessage": "encoding/json",
}

// importsFor collects the sorted, deduplicated import paths the field set
// requires.
func importsFor(fields []FieldModel) []string {
	seen := make(map[string]bool)
	for _, f := range fields {
		if path, ok := goTypeImports[f.GoType]; ok {
			seen[path] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	imports := make([]string, 0, len(seen))
	for path := range seen {
		imports = append(imports, path)
	}
	sort.Strings(imports)
	return imports
}

func missingPrimaryKey(entity schema.Entity) error {
	return &schema.ValidationError{
		Entity:  entity.Name,
		Message: "entity has no primary key field",
	}
}
