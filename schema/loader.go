package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the serializable form of a complete schema: the entities plus the
// relationships declared between them.
type File struct {
	Entities      []Entity             `json:"entities" yaml:"entities"`
	Relationships []EntityRelationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Load reads a schema file, choosing the decoder by extension (.json, .yaml,
// .yml). The loaded schema is validated before it is returned; a schema that
// fails validation never reaches a builder.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("unmarshalling JSON schema: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("unmarshalling YAML schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema file extension %q", filepath.Ext(filename))
	}

	if err := ValidateAll(f.Entities); err != nil {
		return nil, err
	}
	return &f, nil
}
