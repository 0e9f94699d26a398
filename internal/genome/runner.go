package genome

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Runner drives the sequential download pipeline: validate the token, list
// the narrative's genomes, export each one, then write the manifest.
type Runner struct {
	auth         AuthChecker
	lister       GenomeLister
	exporter     GenomeExporter
	sink         *Sink
	manifestName string
	logger       *zap.Logger
}

// NewRunner wires the pipeline components together.
func NewRunner(auth AuthChecker, lister GenomeLister, exporter GenomeExporter, sink *Sink, manifestName string, logger *zap.Logger) *Runner {
	return &Runner{
		auth:         auth,
		lister:       lister,
		exporter:     exporter,
		sink:         sink,
		manifestName: manifestName,
		logger:       logger,
	}
}

// Result summarizes one run.
type Result struct {
	User         string
	Processed    []string
	Failed       int
	ManifestPath string
}

// Run executes the pipeline for one narrative. A failed export is logged and
// skipped; only authentication and listing failures abort the run. Genomes
// are processed strictly one at a time, in the order the platform listed
// them, and the manifest records exactly the successful ones in that order.
func (r *Runner) Run(ctx context.Context, narrativeID int64, format Format) (Result, error) {
	user, err := r.auth.WhoAmI(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("validate token: %w", err)
	}
	r.logger.Info("Token validated", zap.String("user", user))

	refs, err := r.lister.List(ctx, narrativeID)
	if err != nil {
		return Result{}, err
	}
	r.logger.Info("Genomes found", zap.Int("count", len(refs)))

	result := Result{User: user}
	var manifest Manifest
	for _, ref := range refs {
		if err := r.exporter.Export(ctx, ref, format); err != nil {
			r.logger.Warn("Genome export failed, skipping",
				zap.String("ref", ref.String()),
				zap.String("name", ref.Name),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		manifest.Append(SanitizeName(ref.Name))
	}

	manifestPath, err := r.sink.WriteManifest(r.manifestName, manifest)
	if err != nil {
		return Result{}, err
	}
	result.Processed = manifest.Entries()
	result.ManifestPath = manifestPath
	return result, nil
}
