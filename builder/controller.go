package builder

import (
	"strings"

	"github.com/codegenlab/schemagen/naming"
	"github.com/codegenlab/schemagen/schema"
)

// BuildController produces the REST-controller model: the five standard
// endpoints mounted under baseURL plus the entity's plural table name.
// Single-item responses are wrapped in Result, the list endpoint in a
// Result carrying a PageResult, and delete returns an empty Result.
func BuildController(entity schema.Entity, baseURL string, hdr Header) (ControllerModel, error) {
	pk, ok := entity.PrimaryKey()
	if !ok {
		return ControllerModel{}, missingPrimaryKey(entity)
	}

	entityName := naming.ToClassName(entity.Name)
	singular := naming.ToSingular(entity.Name)
	pkName := naming.ToFieldName(pk.Name)
	responseDTO := entityName + ResponseDTO.Suffix()
	idPath := "/{" + pkName + "}"

	m := ControllerModel{
		Header:          hdr,
		ClassName:       entityName + "Controller",
		EntityName:      entityName,
		BaseURL:         strings.TrimSuffix(baseURL, "/") + "/" + entity.Name,
		ServiceName:     "I" + entityName + "Service",
		ServiceField:    naming.Decapitalize(entityName) + "Service",
		CreateDTOName:   entityName + CreateDTO.Suffix(),
		UpdateDTOName:   entityName + UpdateDTO.Suffix(),
		ResponseDTOName: responseDTO,
		Description:     entity.Description,
		PrimaryKeyType:  pk.Type.GoType(),
		PrimaryKeyName:  pkName,
		PrimaryKeyField: naming.ToExportedName(pk.Name),
	}

	idParam := EndpointParam{Name: pkName, Type: m.PrimaryKeyType, Location: "path", Required: true}

	m.Endpoints = []Endpoint{
		{
			Name:         "Create",
			HTTPMethod:   "POST",
			Path:         "",
			Description:  "creates a new " + singular,
			Params:       []EndpointParam{{Name: "input", Type: m.CreateDTOName, Location: "body", Required: true}},
			RequestBody:  m.CreateDTOName,
			Wrapper:      "Result",
			ResponseType: responseDTO,
		},
		{
			Name:         "GetByID",
			HTTPMethod:   "GET",
			Path:         idPath,
			Description:  "fetches one " + singular + " by " + pkName,
			Params:       []EndpointParam{idParam},
			Wrapper:      "Result",
			ResponseType: responseDTO,
		},
		{
			Name:        "Update",
			HTTPMethod:  "PUT",
			Path:        idPath,
			Description: "updates an existing " + singular,
			Params: []EndpointParam{
				idParam,
				{Name: "input", Type: m.UpdateDTOName, Location: "body", Required: true},
			},
			RequestBody:  m.UpdateDTOName,
			Wrapper:      "Result",
			ResponseType: responseDTO,
		},
		{
			Name:        "Delete",
			HTTPMethod:  "DELETE",
			Path:        idPath,
			Description: "deletes the " + singular + " with the given " + pkName,
			Params:      []EndpointParam{idParam},
			Wrapper:     "Result",
		},
		{
			Name:        "List",
			HTTPMethod:  "GET",
			Path:        "",
			Description: "returns one page of " + entity.Name,
			Params: []EndpointParam{
				{Name: "page", Type: "int", Location: "query"},
				{Name: "size", Type: "int", Location: "query"},
			},
			Wrapper:      "Result",
			ResponseType: "PageResult[" + responseDTO + "]",
		},
	}
	return m, nil
}
