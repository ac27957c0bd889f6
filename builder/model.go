// Package builder contains one builder per generated artifact kind. Every
// builder has the same shape: a pure function from a validated
// schema.Entity (plus the generator Config) to an artifact-specific
// intermediate model. Builders do no I/O and touch no templates; rendering
// the models to text is the render package's job.
package builder

// Header carries the provenance fields stamped into every generated
// artifact. It is filled by the orchestrator from the batch configuration
// and clock so that one batch produces artifacts with one consistent
// header.
type Header struct {
	Author  string
	Date    string
	Package string
}

// Validation is one validation rule attached to a DTO field, expressed as
// data so a template can translate it into whatever the target language
// uses (struct tags, annotations, decorators).
type Validation struct {
	Rule  string // required, email, maxlen, min, digits
	Param string // rule parameter, empty when the rule takes none
}

// FieldModel is the shared per-field shape consumed by the entity and DTO
// templates.
type FieldModel struct {
	// Name is the generated identifier (PascalCase for Go struct fields).
	Name string
	// JSONName is the camelCase wire name.
	JSONName string
	// ColumnName is the original snake_case column.
	ColumnName string
	// GoType is the mapped target type.
	GoType      string
	Description string
	PrimaryKey  bool
	Unique      bool
	Nullable    bool
	Required    bool
	ForeignKey  string
	Validations []Validation
}

// EntityModel feeds the persistence-entity template.
type EntityModel struct {
	Header      Header
	TypeName    string
	TableName   string
	Description string
	Fields      []FieldModel
	Imports     []string
	SoftDelete  bool
	Timestamps  bool
}

// DTOKind selects which transfer shape a DTO builder produces.
type DTOKind int

const (
	CreateDTO DTOKind = iota
	UpdateDTO
	ResponseDTO
)

func (k DTOKind) String() string {
	switch k {
	case CreateDTO:
		return "CREATE"
	case UpdateDTO:
		return "UPDATE"
	case ResponseDTO:
		return "RESPONSE"
	}
	return "UNKNOWN"
}

// IsUpdate reports the UPDATE kind; update DTOs render optional fields as
// pointers so absent keys stay distinguishable from zero values.
func (k DTOKind) IsUpdate() bool { return k == UpdateDTO }

// Suffix returns the class-name suffix for the kind: "CreateDTO" and so on.
func (k DTOKind) Suffix() string {
	switch k {
	case CreateDTO:
		return "CreateDTO"
	case UpdateDTO:
		return "UpdateDTO"
	default:
		return "ResponseDTO"
	}
}

// DTOModel feeds the DTO template.
type DTOModel struct {
	Header      Header
	ClassName   string
	EntityName  string
	Kind        DTOKind
	Description string
	Fields      []FieldModel
	Imports     []string
}

// StepKind classifies one step of a generated service-method body. Steps
// describe persistence calls, logging and DTO conversion as data; the
// template decides how each kind is spelled in the target language.
type StepKind string

const (
	StepConvertInput  StepKind = "convert_input"
	StepConvertOutput StepKind = "convert_output"
	StepInsert        StepKind = "insert"
	StepLookup        StepKind = "lookup"
	StepApplyUpdate   StepKind = "apply_update"
	StepUpdate        StepKind = "update"
	StepDelete        StepKind = "delete"
	StepPage          StepKind = "page"
	StepLog           StepKind = "log"
)

// Step is one composable unit of a service-method implementation.
type Step struct {
	Kind   StepKind
	Detail string
}

// Param describes one parameter of a service method or endpoint.
type Param struct {
	Name        string
	Type        string
	Description string
}

// ServiceMethod is one of the five standard operations.
type ServiceMethod struct {
	Name          string
	Params        []Param
	ReturnType    string
	Description   string
	Transactional bool
	Steps         []Step
}

// ServiceVariant distinguishes the generated interface from its
// implementation.
type ServiceVariant int

const (
	ServiceInterface ServiceVariant = iota
	ServiceImplementation
)

// ServiceModel feeds the service templates.
type ServiceModel struct {
	Header          Header
	Variant         ServiceVariant
	InterfaceName   string
	ImplName        string
	EntityName      string
	RepositoryName  string
	CreateDTOName   string
	UpdateDTOName   string
	ResponseDTOName string
	Description     string
	PrimaryKeyType  string
	PrimaryKeyName  string
	// PrimaryKeyField is the exported struct-field spelling of the key.
	PrimaryKeyField string
	SoftDelete      bool
	Methods         []ServiceMethod
	// Field views drive the generated DTO conversion helpers.
	CreateFields   []FieldModel
	UpdateFields   []FieldModel
	ResponseFields []FieldModel
	Imports        []string
}

// EndpointParam is one bound parameter of a REST endpoint.
type EndpointParam struct {
	Name     string
	Type     string
	Location string // path, query, body
	Required bool
}

// Endpoint is one REST operation of a generated controller.
type Endpoint struct {
	Name        string
	HTTPMethod  string
	Path        string
	Description string
	Params      []EndpointParam
	RequestBody string
	// Wrapper is the response-envelope type the handler writes.
	Wrapper string
	// ResponseType is the payload inside the wrapper; empty for delete.
	ResponseType string
}

// ControllerModel feeds the controller template.
type ControllerModel struct {
	Header          Header
	ClassName       string
	EntityName      string
	BaseURL         string
	ServiceName     string
	ServiceField    string
	CreateDTOName   string
	UpdateDTOName   string
	ResponseDTOName string
	Description     string
	PrimaryKeyType  string
	PrimaryKeyName  string
	PrimaryKeyField string
	Endpoints       []Endpoint
}
