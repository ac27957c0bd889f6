package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError is a fatal schema defect: the generator refuses to run any
// builder until the input is corrected. Retrying without changing the schema
// would reproduce the identical error, so nothing is ever downgraded to a
// warning.
type ValidationError struct {
	Entity  string
	Field   string
	Index   string
	Message string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("schema validation")
	if e.Entity != "" {
		fmt.Fprintf(&b, " [%s", e.Entity)
		if e.Field != "" {
			fmt.Fprintf(&b, ".%s", e.Field)
		}
		if e.Index != "" {
			fmt.Fprintf(&b, " index %s", e.Index)
		}
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks a single entity: snake_case naming, exactly one primary
// key, type modifiers present where the type demands them, and index columns
// that resolve against the effective field set. The first defect found is
// returned; there is no partial-validity mode.
func (e Entity) Validate() error {
	if e.Name == "" {
		return &ValidationError{Message: "entity name must not be empty"}
	}
	if !identifierPattern.MatchString(e.Name) {
		return &ValidationError{Entity: e.Name, Message: "entity name must be snake_case"}
	}
	if len(e.Fields) == 0 {
		return &ValidationError{Entity: e.Name, Message: "entity declares no fields"}
	}

	pkCount := 0
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if err := f.validate(e.Name); err != nil {
			return err
		}
		if seen[f.Name] {
			return &ValidationError{Entity: e.Name, Field: f.Name, Message: "duplicate field name"}
		}
		seen[f.Name] = true
		if f.PrimaryKey {
			pkCount++
		}
	}
	switch {
	case pkCount == 0:
		return &ValidationError{Entity: e.Name, Message: "entity has no primary key field"}
	case pkCount > 1:
		return &ValidationError{Entity: e.Name, Message: fmt.Sprintf("entity has %d primary key fields, want exactly 1", pkCount)}
	}

	known := make(map[string]bool)
	for _, f := range e.EffectiveFields() {
		known[f.Name] = true
	}
	for _, idx := range e.Indexes {
		if len(idx.Columns) == 0 {
			return &ValidationError{Entity: e.Name, Index: idx.Name, Message: "index declares no columns"}
		}
		for _, col := range idx.Columns {
			if !known[col] {
				return &ValidationError{Entity: e.Name, Index: idx.Name, Message: fmt.Sprintf("index references unknown column %q", col)}
			}
		}
	}
	return nil
}

func (f Field) validate(entity string) error {
	if f.Name == "" {
		return &ValidationError{Entity: entity, Message: "field name must not be empty"}
	}
	if !identifierPattern.MatchString(f.Name) {
		return &ValidationError{Entity: entity, Field: f.Name, Message: "field name must be snake_case"}
	}
	if f.Type.RequiresLength() && f.Length == nil {
		return &ValidationError{Entity: entity, Field: f.Name, Message: "VARCHAR requires a length"}
	}
	if f.Type.RequiresPrecision() && (f.Precision == nil || f.Scale == nil) {
		return &ValidationError{Entity: entity, Field: f.Name, Message: "NUMERIC requires precision and scale"}
	}
	if f.Length != nil && *f.Length <= 0 {
		return &ValidationError{Entity: entity, Field: f.Name, Message: "length must be positive"}
	}
	switch f.OnDeletePolicy() {
	case "RESTRICT", "CASCADE", "SET NULL":
	default:
		return &ValidationError{Entity: entity, Field: f.Name, Message: fmt.Sprintf("unsupported onDelete policy %q", f.OnDelete)}
	}
	return nil
}

// ValidateAll validates every entity and rejects duplicate table names.
func ValidateAll(entities []Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.Name] {
			return &ValidationError{Entity: e.Name, Message: "duplicate entity name"}
		}
		seen[e.Name] = true
	}
	return nil
}
