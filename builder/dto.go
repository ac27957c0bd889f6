package builder

import (
	"strconv"
	"strings"

	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

// BuildDTO produces the transfer-object model of the given kind. The three
// kinds share one builder because they differ only in which columns they
// include, which are required and whether validation rules attach:
//
//	CREATE   excludes the primary key and timestamp columns; a field is
//	         required exactly when its column is NOT NULL.
//	UPDATE   excludes timestamp columns; the primary key is the only
//	         required field, everything else is optional.
//	RESPONSE includes every column and carries no validation rules.
//
// The soft-delete marker never appears in any DTO.
func BuildDTO(entity schema.Entity, kind DTOKind, hdr Header) (DTOModel, error) {
	if _, ok := entity.PrimaryKey(); !ok {
		return DTOModel{}, missingPrimaryKey(entity)
	}

	entityName := naming.ToClassName(entity.Name)
	var models []FieldModel
	for _, f := range entity.EffectiveFields() {
		if !includeInDTO(f, kind) {
			continue
		}
		fm := fieldModel(f)
		fm.Required = requiredInDTO(f, kind)
		if kind != ResponseDTO {
			fm.Validations = validationsFor(f, fm.Required)
		}
		models = append(models, fm)
	}

	return DTOModel{
		Header:      hdr,
		ClassName:   entityName + kind.Suffix(),
		EntityName:  entityName,
		Kind:        kind,
		Description: entity.Description,
		Fields:      models,
		Imports:     importsFor(models),
	}, nil
}

// BuildDTOs produces all three DTO kinds in declaration order.
func BuildDTOs(entity schema.Entity, hdr Header) ([]DTOModel, error) {
	kinds := []DTOKind{CreateDTO, UpdateDTO, ResponseDTO}
	models := make([]DTOModel, 0, len(kinds))
	for _, kind := range kinds {
		m, err := BuildDTO(entity, kind, hdr)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func isTimestampColumn(name string) bool {
	return name == "created_at" || name == "updated_at"
}

func includeInDTO(f schema.Field, kind DTOKind) bool {
	if f.Name == "deleted_at" {
		return false
	}
	switch kind {
	case CreateDTO:
		return !f.PrimaryKey && !isTimestampColumn(f.Name)
	case UpdateDTO:
		return !isTimestampColumn(f.Name)
	default:
		return true
	}
}

func requiredInDTO(f schema.Field, kind DTOKind) bool {
	switch kind {
	case CreateDTO:
		return !f.IsNullable()
	case UpdateDTO:
		return f.PrimaryKey
	default:
		return false
	}
}

// validationsFor derives the declarative rules a CREATE or UPDATE field
// carries. Rules are ordered: presence first, then shape constraints.
func validationsFor(f schema.Field, required bool) []Validation {
	var rules []Validation
	if required {
		rules = append(rules, Validation{Rule: "required"})
	}
	if f.Type.IsString() && strings.Contains(strings.ToLower(f.Name), "email") {
		rules = append(rules, Validation{Rule: "email"})
	}
	if f.Type == schema.TypeVarchar && f.Length != nil {
		rules = append(rules, Validation{Rule: "maxlen", Param: strconv.Itoa(*f.Length)})
	}
	if f.Type == schema.TypeInteger || f.Type == schema.TypeBigint {
		rules = append(rules, Validation{Rule: "min", Param: "0"})
	}
	if f.Type == schema.TypeNumeric && f.Precision != nil {
		scale := 0
		if f.Scale != nil {
			scale = *f.Scale
		}
		rules = append(rules, Validation{
			Rule:  "digits",
			Param: strconv.Itoa(*f.Precision-scale) + "," + strconv.Itoa(scale),
		})
	}
	return rules
}
