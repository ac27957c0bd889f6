// Package generator orchestrates one generation batch: it fans the entity
// set out to the builders, renders every artifact and returns the named
// results as one map. The engine is pure with respect to the filesystem;
// callers decide what to do with the artifact text.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codegenlab/schemagen/builder"
	"github.com/codegenlab/schemagen/config"
	"github.com/codegenlab/schemagen/relation"
	"github.com/codegenlab/schemagen/render"
	"github.com/codegenlab/schemagen/schema"
)

// BuildError identifies the entity and artifact a batch failed on.
type BuildError struct {
	Entity   string
	Artifact string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s for entity %q: %v", e.Artifact, e.Entity, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Batch is the result of one GenerateAll call: every artifact of every
// entity plus the shared migration pair, keyed by artifact name.
type Batch struct {
	RunID     uuid.UUID
	Timestamp string
	Artifacts map[string]string
}

// MigrationFile returns the shared forward-script name for this batch.
func (b *Batch) MigrationFile() string {
	return "V" + b.Timestamp + "__create_tables.sql"
}

// RollbackFile returns the shared rollback-script name for this batch.
func (b *Batch) RollbackFile() string {
	return "V" + b.Timestamp + "__rollback.sql"
}

// Generator runs generation batches with a fixed configuration.
type Generator struct {
	cfg      config.Config
	renderer *render.Renderer
	log      *slog.Logger
	now      func() time.Time
}

// New builds a Generator. A nil logger falls back to slog.Default().
func New(cfg config.Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		cfg:      cfg,
		renderer: render.New(cfg.TemplateDir),
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the batch clock. Timestamps and dated headers come
// from one clock reading per batch, so identical input under a fixed clock
// produces byte-identical output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// GenerateAll runs one batch over the full schema. Entities are processed
// concurrently, one goroutine each; the first failure cancels the rest and
// is returned as a BuildError naming the entity and artifact. On failure no
// partial artifact map is returned.
func (g *Generator) GenerateAll(ctx context.Context, entities []schema.Entity, relationships []schema.EntityRelationship) (*Batch, error) {
	if err := schema.ValidateAll(entities); err != nil {
		return nil, err
	}
	res, err := relation.Resolve(entities, relationships)
	if err != nil {
		return nil, err
	}

	start := g.now().UTC()
	batch := &Batch{
		RunID:     uuid.New(),
		Timestamp: start.Format("20060102150405"),
	}
	hdr := builder.Header{
		Author:  g.cfg.Author,
		Date:    start.Format("2006-01-02"),
		Package: g.cfg.Package,
	}

	results := make([]map[string]string, len(entities))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, entity := range entities {
		i, entity := i, entity
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			artifacts, err := g.entityArtifacts(entity, hdr)
			if err != nil {
				return err
			}
			results[i] = artifacts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]string)
	for _, artifacts := range results {
		for name, text := range artifacts {
			merged[name] = text
		}
	}
	merged[batch.MigrationFile()] = builder.BuildMigration(entities, res)
	merged[batch.RollbackFile()] = builder.BuildRollback(entities, res)
	batch.Artifacts = merged

	g.log.InfoContext(ctx, "generated batch",
		"run_id", batch.RunID,
		"entities", len(entities),
		"artifacts", len(merged),
		"elapsed", g.now().UTC().Sub(start))
	return batch, nil
}

// entityArtifacts produces the seven per-entity artifacts: the persistence
// struct, the three DTOs, both service variants and the controller.
func (g *Generator) entityArtifacts(entity schema.Entity, hdr builder.Header) (map[string]string, error) {
	artifacts := make(map[string]string, 7)

	entityModel, err := builder.BuildEntity(entity, hdr)
	if err != nil {
		return nil, &BuildError{Entity: entity.Name, Artifact: "entity", Err: err}
	}
	if err := g.renderInto(artifacts, "entity", entityModel.TypeName, entityModel, entity.Name); err != nil {
		return nil, err
	}

	dtos, err := builder.BuildDTOs(entity, hdr)
	if err != nil {
		return nil, &BuildError{Entity: entity.Name, Artifact: "dto", Err: err}
	}
	for _, dto := range dtos {
		if err := g.renderInto(artifacts, "dto", dto.ClassName, dto, entity.Name); err != nil {
			return nil, err
		}
	}

	for _, variant := range []struct {
		v        builder.ServiceVariant
		template string
	}{
		{builder.ServiceInterface, "service_interface"},
		{builder.ServiceImplementation, "service_impl"},
	} {
		svc, err := builder.BuildService(entity, variant.v, hdr)
		if err != nil {
			return nil, &BuildError{Entity: entity.Name, Artifact: variant.template, Err: err}
		}
		name := svc.InterfaceName
		if variant.v == builder.ServiceImplementation {
			name = svc.ImplName
		}
		if err := g.renderInto(artifacts, variant.template, name, svc, entity.Name); err != nil {
			return nil, err
		}
	}

	ctrl, err := builder.BuildController(entity, g.cfg.BaseURL, hdr)
	if err != nil {
		return nil, &BuildError{Entity: entity.Name, Artifact: "controller", Err: err}
	}
	if err := g.renderInto(artifacts, "controller", ctrl.ClassName, ctrl, entity.Name); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (g *Generator) renderInto(artifacts map[string]string, template, name string, model any, entityName string) error {
	text, err := g.renderer.Render(template, model)
	if err != nil {
		return &BuildError{Entity: entityName, Artifact: name, Err: err}
	}
	artifacts[name] = text
	return nil
}
