package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/relation"
	"github.com/codegenlab/schemagen/schema"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func testConfig() config.Config {
	return config.Config{
		Author:  "schemagen",
		Package: "generated",
		BaseURL: "/api/v1",
	}
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func blogEntities() []schema.Entity {
	return []schema.Entity{
		{
			Name:       "users",
			Timestamps: true,
			SoftDelete: true,
			Fields: []schema.Field{
				{Name: "id", Type: schema.TypeUUID, PrimaryKey: true},
				{Name: "email", Type: schema.TypeVarchar, Length: intp(255), Unique: true, Nullable: boolp(false)},
				{Name: "name", Type: schema.TypeVarchar, Length: intp(120), Nullable: boolp(false)},
			},
		},
		{
			Name:       "posts",
			Timestamps: true,
			Fields: []schema.Field{
				{Name: "id", Type: schema.TypeUUID, PrimaryKey: true},
				{Name: "title", Type: schema.TypeVarchar, Length: intp(200), Nullable: boolp(false)},
				{Name: "author_id", Type: schema.TypeUUID, Nullable: boolp(false), ForeignKey: "users.id", OnDelete: "CASCADE"},
			},
		},
		{
			Name: "tags",
			Fields: []schema.Field{
				{Name: "id", Type: schema.TypeUUID, PrimaryKey: true},
				{Name: "label", Type: schema.TypeVarchar, Length: intp(64), Unique: true, Nullable: boolp(false)},
			},
		},
	}
}

func blogRelationships() []schema.EntityRelationship {
	return []schema.EntityRelationship{
		{FromEntity: "posts", ToEntity: "tags", Type: schema.ManyToMany},
	}
}

func TestGenerateAllArtifactSet(t *testing.T) {
	g := New(testConfig(), nil).WithClock(fixedClock())
	batch, err := g.GenerateAll(context.Background(), blogEntities(), blogRelationships())
	require.NoError(t, err)

	// Seven artifacts per entity plus the shared migration pair.
	assert.Len(t, batch.Artifacts, 3*7+2)
	assert.Equal(t, "20260827120000", batch.Timestamp)
	assert.NotEqual(t, batch.RunID.String(), "00000000-0000-0000-0000-000000000000")

	for _, name := range []string{
		"User", "UserCreateDTO", "UserUpdateDTO", "UserResponseDTO",
		"IUserService", "UserServiceImpl", "UserController",
		"Post", "Tag",
		"V20260827120000__create_tables.sql",
		"V20260827120000__rollback.sql",
	} {
		assert.Contains(t, batch.Artifacts, name)
	}
	assert.Equal(t, "V20260827120000__create_tables.sql", batch.MigrationFile())
	assert.Equal(t, "V20260827120000__rollback.sql", batch.RollbackFile())
}

func TestGenerateAllIsDeterministic(t *testing.T) {
	first, err := New(testConfig(), nil).WithClock(fixedClock()).
		GenerateAll(context.Background(), blogEntities(), blogRelationships())
	require.NoError(t, err)

	second, err := New(testConfig(), nil).WithClock(fixedClock()).
		GenerateAll(context.Background(), blogEntities(), blogRelationships())
	require.NoError(t, err)

	assert.Equal(t, first.Artifacts, second.Artifacts, "identical input and clock produce byte-identical output")
	assert.NotEqual(t, first.RunID, second.RunID, "each run gets its own identifier")
}

func TestGenerateAllUsersScenario(t *testing.T) {
	batch, err := New(testConfig(), nil).WithClock(fixedClock()).
		GenerateAll(context.Background(), blogEntities(), blogRelationships())
	require.NoError(t, err)

	create := batch.Artifacts["UserCreateDTO"]
	assert.Contains(t, create, `validate:"required,email,max=255"`)
	assert.Contains(t, create, `validate:"required,max=120"`)
	assert.NotContains(t, create, "DeletedAt")

	response := batch.Artifacts["UserResponseDTO"]
	assert.Contains(t, response, `json:"createdAt`)
	assert.Contains(t, response, `json:"updatedAt`)
	assert.NotContains(t, response, "validate:")
	assert.NotContains(t, response, "DeletedAt")

	controller := batch.Artifacts["UserController"]
	assert.Contains(t, controller, `mux.HandleFunc("POST /api/v1/users", c.create)`)
	assert.Contains(t, controller, `mux.HandleFunc("GET /api/v1/users/{id}", c.getByID)`)

	impl := batch.Artifacts["UserServiceImpl"]
	assert.Contains(t, impl, "func (s *UserServiceImpl) Create(ctx context.Context, input UserCreateDTO) (UserResponseDTO, error)")
	assert.Contains(t, impl, "SoftDelete(ctx context.Context, id uuid.UUID) error")

	migration := batch.Artifacts[batch.MigrationFile()]
	assert.Contains(t, migration, "CREATE TABLE IF NOT EXISTS posts_tags (")
}

func TestGenerateAllRejectsInvalidSchema(t *testing.T) {
	entities := blogEntities()
	entities[0].Fields[0].PrimaryKey = false

	_, err := New(testConfig(), nil).GenerateAll(context.Background(), entities, nil)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "users", verr.Entity)
}

func TestGenerateAllRejectsDanglingRelationship(t *testing.T) {
	rels := []schema.EntityRelationship{
		{FromEntity: "posts", ToEntity: "comments", Type: schema.ManyToMany},
	}

	_, err := New(testConfig(), nil).GenerateAll(context.Background(), blogEntities(), rels)
	var uerr *relation.UnknownEntityError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "comments", uerr.Missing)
}

func TestGenerateAllAbortIdentifiesEntityAndArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dto.tmpl"), []byte("{{.NoSuchMethod.Boom}}"), 0644))

	cfg := testConfig()
	cfg.TemplateDir = dir

	_, err := New(cfg, nil).GenerateAll(context.Background(), blogEntities()[:1], nil)
	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "users", berr.Entity)
	assert.Equal(t, "UserCreateDTO", berr.Artifact)
}

func TestGenerateAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(), nil).GenerateAll(ctx, blogEntities(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
