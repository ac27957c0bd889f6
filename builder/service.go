package builder

import (
	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

// BuildService produces the model behind both the service interface and its
// implementation. One model serves both because they must agree on every
// method signature; the variant only switches which template consumes it.
//
// Every entity gets the same five operations. Mutating operations are
// flagged transactional; the implementation template wraps their bodies in
// a transaction accordingly. Method bodies are described as ordered steps
// rather than prebaked statements so the template owns all spelling.
func BuildService(entity schema.Entity, variant ServiceVariant, hdr Header) (ServiceModel, error) {
	pk, ok := entity.PrimaryKey()
	if !ok {
		return ServiceModel{}, missingPrimaryKey(entity)
	}

	entityName := naming.ToClassName(entity.Name)
	singular := naming.ToSingular(entity.Name)
	pkName := naming.ToFieldName(pk.Name)
	responseDTO := entityName + ResponseDTO.Suffix()

	m := ServiceModel{
		Header:          hdr,
		Variant:         variant,
		InterfaceName:   "I" + entityName + "Service",
		ImplName:        entityName + "ServiceImpl",
		EntityName:      entityName,
		RepositoryName:  entityName + "Repository",
		CreateDTOName:   entityName + CreateDTO.Suffix(),
		UpdateDTOName:   entityName + UpdateDTO.Suffix(),
		ResponseDTOName: responseDTO,
		Description:     entity.Description,
		PrimaryKeyType:  pk.Type.GoType(),
		PrimaryKeyName:  pkName,
		PrimaryKeyField: naming.ToExportedName(pk.Name),
		SoftDelete:      entity.SoftDelete,
	}
	for _, f := range entity.EffectiveFields() {
		fm := fieldModel(f)
		if includeInDTO(f, CreateDTO) {
			m.CreateFields = append(m.CreateFields, fm)
		}
		if includeInDTO(f, UpdateDTO) && !f.PrimaryKey {
			m.UpdateFields = append(m.UpdateFields, fm)
		}
		if includeInDTO(f, ResponseDTO) {
			m.ResponseFields = append(m.ResponseFields, fm)
		}
	}
	m.Imports = importsFor([]FieldModel{{GoType: m.PrimaryKeyType}})

	deleteStep := Step{Kind: StepDelete, Detail: "delete " + singular + " row"}
	if entity.SoftDelete {
		deleteStep = Step{Kind: StepDelete, Detail: "mark " + singular + " deleted_at"}
	}

	m.Methods = []ServiceMethod{
		{
			Name:          "Create",
			Params:        []Param{{Name: "input", Type: m.CreateDTOName}},
			ReturnType:    responseDTO,
			Description:   "Create persists a new " + singular + " from the given input.",
			Transactional: true,
			Steps: []Step{
				{Kind: StepConvertInput, Detail: m.CreateDTOName + " to " + entityName},
				{Kind: StepInsert, Detail: "insert " + singular + " row"},
				{Kind: StepLog, Detail: "created " + singular},
				{Kind: StepConvertOutput, Detail: entityName + " to " + responseDTO},
			},
		},
		{
			Name:          "Update",
			Params:        []Param{{Name: "input", Type: m.UpdateDTOName}},
			ReturnType:    responseDTO,
			Description:   "Update applies the non-nil fields of the input to an existing " + singular + ".",
			Transactional: true,
			Steps: []Step{
				{Kind: StepLookup, Detail: "load " + singular + " by " + pkName},
				{Kind: StepApplyUpdate, Detail: "copy set fields from " + m.UpdateDTOName},
				{Kind: StepUpdate, Detail: "save " + singular + " row"},
				{Kind: StepLog, Detail: "updated " + singular},
				{Kind: StepConvertOutput, Detail: entityName + " to " + responseDTO},
			},
		},
		{
			Name:          "Delete",
			Params:        []Param{{Name: pkName, Type: m.PrimaryKeyType}},
			Description:   "Delete removes the " + singular + " with the given " + pkName + ".",
			Transactional: true,
			Steps: []Step{
				{Kind: StepLookup, Detail: "load " + singular + " by " + pkName},
				deleteStep,
				{Kind: StepLog, Detail: "deleted " + singular},
			},
		},
		{
			Name:        "GetByID",
			Params:      []Param{{Name: pkName, Type: m.PrimaryKeyType}},
			ReturnType:  responseDTO,
			Description: "GetByID fetches one " + singular + " by its " + pkName + ".",
			Steps: []Step{
				{Kind: StepLookup, Detail: "load " + singular + " by " + pkName},
				{Kind: StepConvertOutput, Detail: entityName + " to " + responseDTO},
			},
		},
		{
			Name: "List",
			Params: []Param{
				{Name: "page", Type: "int", Description: "zero-based page number"},
				{Name: "size", Type: "int", Description: "page size"},
			},
			ReturnType:  "PageResult[" + responseDTO + "]",
			Description: "List returns one page of " + entity.Name + " ordered by " + pkName + ".",
			Steps: []Step{
				{Kind: StepPage, Detail: "select page of " + entity.Name},
				{Kind: StepConvertOutput, Detail: entityName + " slice to " + responseDTO + " page"},
			},
		},
	}
	return m, nil
}
