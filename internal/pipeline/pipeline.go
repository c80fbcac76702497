// Package pipeline runs the enrichment passes over a candidate roster as a
// sequence of named steps, logging per-step statistics. Steps either filter
// records (invariant guards, exclusions) or populate derived fields.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abelgeorge323/MIT-Candidates/internal/classify"
	"github.com/abelgeorge323/MIT-Candidates/internal/logger"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
	"github.com/abelgeorge323/MIT-Candidates/internal/vertical"
)

// Step is a single enrichment or filtering pass over the roster.
type Step interface {
	Name() string
	Apply(ctx context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error)
}

// Deps aggregates the collaborators shared across steps.
type Deps struct {
	Logger     *zap.Logger
	Classifier *classify.Classifier
	Verticals  *vertical.Table
}

// Stat describes the effect of one step.
type Stat struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the steps sequentially with structured logging.
func Run(ctx context.Context, deps Deps, steps []Step, cs *roster.Candidates) (*roster.Candidates, error) {
	deps.Logger = logger.WithFields(deps.Logger)

	for _, step := range steps {
		next, stat, err := step.Apply(ctx, deps, cs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("pipeline step",
			zap.String("name", step.Name()),
			zap.Int("initial", stat.Initial),
			zap.Int("dropped", stat.Dropped),
			zap.Int("left", stat.Left),
		)

		cs = next
	}
	return cs, nil
}

// Default returns the standard enrichment sequence: invariant guard,
// classification, vertical assignment, then the position-identified
// exclusion filter.
func Default() []Step {
	return []Step{
		DropUnnamed(),
		Classify(),
		AssignVertical(),
		DropPositionIdentified(),
	}
}
