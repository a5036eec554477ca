// Package convert orchestrates one graph-to-STEP conversion: ontology
// version selection, schema fact-base loading, edge-stream ingestion, and
// STEP emission. All conversion state is scoped to a single Convert call
// and released when it returns.
package convert

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/owl2step/ingest"
	"github.com/c360studio/owl2step/schema"
	"github.com/c360studio/owl2step/step"
	"github.com/c360studio/owl2step/vocabulary/ifcowl"
)

// Source produces the model's edge stream. Edges is called once per pass,
// first to detect the declared ontology version and again for ingestion, so
// implementations must be re-openable.
type Source interface {
	Edges(ctx context.Context) (<-chan message.Triple, error)
}

// Converter converts ifcOWL model graphs to STEP physical files.
type Converter struct {
	// Schemas holds the fact-base documents, one "<label>.yaml" per
	// supported version.
	Schemas fs.FS

	// Version, when set, overrides version detection. A declared version
	// that disagrees with it is reported but not fatal.
	Version schema.Version

	// Logger receives all diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Convert runs one conversion and writes the STEP text to out. Fatal
// errors (undeterminable or unloadable schema version) occur before any
// output byte is written; every later anomaly is recovered per fact.
func (c *Converter) Convert(ctx context.Context, src Source, out io.Writer) error {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("conversion", uuid.NewString())

	declared, detectErr := DetectVersion(ctx, src)

	version := c.Version
	switch {
	case version == "":
		if detectErr != nil {
			return detectErr
		}
		version = declared
	case detectErr != nil:
		logger.Warn("Could not verify the declared ifcOWL ontology version", "error", detectErr.Error())
	case declared != version:
		logger.Warn("Used ifcOWL ontology might not be consistent with the data",
			"declared", declared.Label(), "selected", version.Label())
	}

	sch, err := schema.LoadVersion(c.Schemas, version)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", version.Label(), err)
	}
	logger.Info("Converting model", "version", version.Label())

	edges, err := src.Edges(ctx)
	if err != nil {
		return fmt.Errorf("open edge stream: %w", err)
	}
	m := ingest.NewBuilder(sch, logger).Consume(edges)
	logger.Info("Model assembled", "instances", m.Len())

	return step.NewWriter(sch, m, out, logger).Write()
}

// DetectVersion scans the edge stream for the owl:imports declaration and
// resolves it to a supported ontology version. The last import wins when a
// graph declares several. A missing or unrecognized declaration resolves
// to ErrVersionMismatch.
func DetectVersion(ctx context.Context, src Source) (schema.Version, error) {
	edges, err := src.Edges(ctx)
	if err != nil {
		return "", fmt.Errorf("open edge stream: %w", err)
	}

	var ontology string
	for t := range edges {
		if t.Predicate != ifcowl.OWLImports {
			continue
		}
		if s, ok := t.Object.(string); ok {
			ontology = s
		}
	}

	if ontology == "" {
		return "", fmt.Errorf("model does not import an ifcOWL ontology: %w", schema.ErrVersionMismatch)
	}
	v, ok := schema.VersionForNamespace(ontology)
	if !ok {
		return "", fmt.Errorf("cannot determine required IFC version for %s: %w", ontology, schema.ErrVersionMismatch)
	}
	return v, nil
}
