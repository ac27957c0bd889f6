package schema

import "fmt"

// FieldType is the closed set of column types the generator understands.
// The zero value is TypeUUID on purpose: primary keys default to UUID.
type FieldType int

const (
	TypeUUID FieldType = iota
	TypeInteger
	TypeBigint
	TypeNumeric
	TypeReal
	TypeVarchar
	TypeText
	TypeDate
	TypeTime
	TypeTimestamptz
	TypeBoolean
	TypeJSON
	TypeJSONB
	TypeTextArray
	TypeIntegerArray

	fieldTypeCount
)

// The three tables below are positional: adding a FieldType variant without
// extending every table changes the array length and breaks the compile-time
// assignments that follow them.

var fieldTypeNames = [...]string{
	"UUID",
	"INTEGER",
	"BIGINT",
	"NUMERIC",
	"REAL",
	"VARCHAR",
	"TEXT",
	"DATE",
	"TIME",
	"TIMESTAMPTZ",
	"BOOLEAN",
	"JSON",
	"JSONB",
	"TEXT_ARRAY",
	"INTEGER_ARRAY",
}

var sqlTypes = [...]string{
	"UUID",
	"INTEGER",
	"BIGINT",
	"NUMERIC",
	"REAL",
	"VARCHAR",
	"TEXT",
	"DATE",
	"TIME",
	"TIMESTAMPTZ",
	"BOOLEAN",
	"JSON",
	"JSONB",
	"TEXT[]",
	"INTEGER[]",
}

var goTypes = [...]string{
	"uuid.UUID",
	"int",
	"int64",
	"float64",
	"float32",
	"string",
	"string",
	"time.Time",
	"time.Time",
	"time.Time",
	"bool",
	"json.RawMessage",
	"json.RawMessage",
	"[]string",
	"[]int",
}

var (
	_ [fieldTypeCount]string = fieldTypeNames
	_ [fieldTypeCount]string = sqlTypes
	_ [fieldTypeCount]string = goTypes
)

// SQL returns the bare PostgreSQL type keyword. VARCHAR and NUMERIC modifiers
// (length, precision/scale) are appended by Field.SQLType, not here.
func (t FieldType) SQL() string {
	return sqlTypes[t]
}

// GoType returns the Go type generated source uses for columns of this type.
func (t FieldType) GoType() string {
	return goTypes[t]
}

func (t FieldType) String() string {
	return fieldTypeNames[t]
}

// RequiresLength reports whether a field of this type must declare a length.
func (t FieldType) RequiresLength() bool {
	return t == TypeVarchar
}

// RequiresPrecision reports whether a field of this type must declare
// precision and scale.
func (t FieldType) RequiresPrecision() bool {
	return t == TypeNumeric
}

func (t FieldType) IsNumeric() bool {
	return t == TypeInteger || t == TypeBigint || t == TypeNumeric || t == TypeReal
}

func (t FieldType) IsString() bool {
	return t == TypeVarchar || t == TypeText
}

func (t FieldType) IsDateTime() bool {
	return t == TypeDate || t == TypeTime || t == TypeTimestamptz
}

func (t FieldType) IsArray() bool {
	return t == TypeTextArray || t == TypeIntegerArray
}

// ParseFieldType maps a wire name (for example "TIMESTAMPTZ") back to its
// FieldType. Unknown names are an error, never a silent default.
func ParseFieldType(name string) (FieldType, error) {
	for i, n := range fieldTypeNames {
		if n == name {
			return FieldType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field type %q", name)
}

// MarshalText implements encoding.TextMarshaler so FieldType round-trips
// through JSON as its wire name.
func (t FieldType) MarshalText() ([]byte, error) {
	if t < 0 || t >= fieldTypeCount {
		return nil, fmt.Errorf("invalid field type %d", int(t))
	}
	return []byte(fieldTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON decoding.
func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML decodes the wire name from a YAML scalar. yaml.v3 does not
// honor TextUnmarshaler, so this is spelled out separately.
func (t *FieldType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseFieldType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML emits the wire name.
func (t FieldType) MarshalYAML() (interface{}, error) {
	if t < 0 || t >= fieldTypeCount {
		return nil, fmt.Errorf("invalid field type %d", int(t))
	}
	return fieldTypeNames[t], nil
}

// FieldTypes returns every variant in declaration order. Used by totality
// tests and by the init scaffold.
func FieldTypes() []FieldType {
	all := make([]FieldType, fieldTypeCount)
	for i := range all {
		all[i] = FieldType(i)
	}
	return all
}
