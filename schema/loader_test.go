package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSchema = `
entities:
  - name: users
    timestamps: true
    fields:
      - name: id
        type: UUID
        primaryKey: true
      - name: email
        type: VARCHAR
        length: 255
        nullable: false
relationships:
  - fromEntity: users
    toEntity: users
    type: ONE_TO_MANY
`

const jsonSchema = `{
  "entities": [
    {
      "name": "tags",
      "fields": [
        {"name": "id", "type": "UUID", "primaryKey": true},
        {"name": "label", "type": "VARCHAR", "length": 64, "unique": true}
      ]
    }
  ]
}`

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	f, err := Load(writeSchema(t, "schema.yaml", yamlSchema))
	require.NoError(t, err)

	require.Len(t, f.Entities, 1)
	assert.Equal(t, "users", f.Entities[0].Name)
	assert.Equal(t, TypeVarchar, f.Entities[0].Fields[1].Type)
	assert.True(t, f.Entities[0].Timestamps)
	require.Len(t, f.Relationships, 1)
	assert.Equal(t, OneToMany, f.Relationships[0].Type)
}

func TestLoadJSON(t *testing.T) {
	f, err := Load(writeSchema(t, "schema.json", jsonSchema))
	require.NoError(t, err)

	require.Len(t, f.Entities, 1)
	assert.Equal(t, "tags", f.Entities[0].Name)
	assert.True(t, f.Entities[0].Fields[1].Unique)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeSchema(t, "schema.toml", "whatever"))
	assert.ErrorContains(t, err, "unsupported schema file extension")
}

func TestLoadRejectsInvalidSchema(t *testing.T) {
	noPK := `
entities:
  - name: users
    fields:
      - name: email
        type: TEXT
`
	_, err := Load(writeSchema(t, "schema.yaml", noPK))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "users", verr.Entity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
