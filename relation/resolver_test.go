package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegenlab/schemagen/schema"
)

func entity(name string, fields ...schema.Field) schema.Entity {
	fields = append([]schema.Field{{Name: "id", Type: schema.TypeUUID, PrimaryKey: true}}, fields...)
	return schema.Entity{Name: name, Fields: fields}
}

func TestResolveManyToManyJunctionDefaults(t *testing.T) {
	entities := []schema.Entity{entity("posts"), entity("tags")}
	rels := []schema.EntityRelationship{
		{FromEntity: "posts", ToEntity: "tags", Type: schema.ManyToMany},
	}

	res, err := Resolve(entities, rels)
	require.NoError(t, err)
	require.Len(t, res.Junctions, 1)

	j := res.Junctions[0]
	assert.Equal(t, "posts_tags", j.Name)
	assert.Equal(t, "posts", j.FromTable)
	assert.Equal(t, "post_id", j.FromColumn)
	assert.Equal(t, "tags", j.ToTable)
	assert.Equal(t, "tag_id", j.ToColumn)
	assert.Empty(t, res.ForeignKeys)
}

func TestResolveManyToManyExplicitNames(t *testing.T) {
	entities := []schema.Entity{entity("posts"), entity("tags")}
	rels := []schema.EntityRelationship{
		{
			FromEntity:            "posts",
			ToEntity:              "tags",
			Type:                  schema.ManyToMany,
			JunctionTable:         "post_tag_links",
			ForeignKeyField:       "origin_post_id",
			TargetForeignKeyField: "linked_tag_id",
		},
	}

	res, err := Resolve(entities, rels)
	require.NoError(t, err)
	j := res.Junctions[0]
	assert.Equal(t, "post_tag_links", j.Name)
	assert.Equal(t, "origin_post_id", j.FromColumn)
	assert.Equal(t, "linked_tag_id", j.ToColumn)
}

func TestResolveOneToManyForeignKey(t *testing.T) {
	posts := entity("posts", schema.Field{Name: "author_id", Type: schema.TypeUUID, OnDelete: "CASCADE"})
	entities := []schema.Entity{entity("users"), posts}
	rels := []schema.EntityRelationship{
		{FromEntity: "users", ToEntity: "posts", Type: schema.OneToMany, ForeignKeyField: "author_id"},
	}

	res, err := Resolve(entities, rels)
	require.NoError(t, err)
	require.Len(t, res.ForeignKeys["posts"], 1)

	fk := res.ForeignKeys["posts"][0]
	assert.Equal(t, "author_id", fk.Column)
	assert.Equal(t, "users", fk.References)
	assert.Equal(t, "id", fk.RefColumn)
	assert.Equal(t, "CASCADE", fk.OnDelete)
}

func TestResolveForeignKeyColumnDefaultsToSingularID(t *testing.T) {
	entities := []schema.Entity{entity("companies"), entity("employees")}
	rels := []schema.EntityRelationship{
		{FromEntity: "companies", ToEntity: "employees", Type: schema.OneToMany},
	}

	res, err := Resolve(entities, rels)
	require.NoError(t, err)
	fk := res.ForeignKeys["employees"][0]
	assert.Equal(t, "company_id", fk.Column)
	assert.Equal(t, "RESTRICT", fk.OnDelete)
}

func TestResolveRejectsJunctionFieldsOnForeignKeyTypes(t *testing.T) {
	entities := []schema.Entity{entity("users"), entity("posts")}
	rels := []schema.EntityRelationship{
		{FromEntity: "users", ToEntity: "posts", Type: schema.OneToMany, JunctionTable: "users_posts"},
	}

	_, err := Resolve(entities, rels)
	var rerr *RelationshipError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "users", rerr.FromEntity)
	assert.Equal(t, "posts", rerr.ToEntity)
	assert.ErrorContains(t, err, "only valid for MANY_TO_MANY")
}

func TestResolveUnknownEntity(t *testing.T) {
	entities := []schema.Entity{entity("posts")}
	rels := []schema.EntityRelationship{
		{FromEntity: "posts", ToEntity: "tags", Type: schema.ManyToMany},
	}

	_, err := Resolve(entities, rels)
	var uerr *UnknownEntityError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "tags", uerr.Missing)
	assert.Contains(t, err.Error(), "posts -> tags")
}

func TestResolveUnsupportedType(t *testing.T) {
	entities := []schema.Entity{entity("posts"), entity("tags")}
	rels := []schema.EntityRelationship{
		{FromEntity: "posts", ToEntity: "tags", Type: "MANY_TO_ONE"},
	}

	_, err := Resolve(entities, rels)
	var rerr *RelationshipError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorContains(t, err, `unsupported type "MANY_TO_ONE"`)
}
