package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/abelgeorge323/MIT-Candidates/internal/logger"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
	"github.com/abelgeorge323/MIT-Candidates/internal/vertical"
)

type dropUnnamed struct{}

// DropUnnamed removes records whose name normalizes to empty. Every record
// past this step has a usable identity key.
func DropUnnamed() Step { return &dropUnnamed{} }

func (s *dropUnnamed) Name() string { return "drop_unnamed" }

func (s *dropUnnamed) Apply(_ context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error) {
	initial := cs.Len()
	out := &roster.Candidates{}
	for _, c := range cs.Items {
		if c.Key() != "" {
			out.Items = append(out.Items, c)
		}
	}

	dropped := initial - out.Len()
	if dropped > 0 {
		deps.Logger.Debug("dropped records without identity", zap.Int("count", dropped))
	}
	return out, Stat{Initial: initial, Dropped: dropped, Left: out.Len()}, nil
}

type classifyStep struct{}

// Classify populates the derived readiness stage on every record.
// Reclassifying an already classified roster yields the same stages.
func Classify() Step { return &classifyStep{} }

func (s *classifyStep) Name() string { return "classify" }

func (s *classifyStep) Apply(_ context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error) {
	for _, c := range cs.Items {
		c.Readiness = deps.Classifier.Classify(c)
	}
	return cs, Stat{Initial: cs.Len(), Left: cs.Len()}, nil
}

type assignVertical struct{}

// AssignVertical populates the derived vertical: the raw feed code when it
// translates, otherwise inference from the training-site name.
func AssignVertical() Step { return &assignVertical{} }

func (s *assignVertical) Name() string { return "assign_vertical" }

func (s *assignVertical) Apply(_ context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error) {
	for _, c := range cs.Items {
		v := vertical.FromCode(c.Vertical)
		if v == roster.UnknownVertical {
			v = deps.Verticals.Resolve(c.TrainingSite)
		}
		c.AssignedVertical = v
	}
	return cs, Stat{Initial: cs.Len(), Left: cs.Len()}, nil
}

type dropPositionIdentified struct{}

// DropPositionIdentified excludes candidates whose position is already
// identified from all downstream aggregation. Runs after classification.
func DropPositionIdentified() Step { return &dropPositionIdentified{} }

func (s *dropPositionIdentified) Name() string { return "drop_position_identified" }

func (s *dropPositionIdentified) Apply(_ context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error) {
	initial := cs.Len()
	out := &roster.Candidates{}
	var excluded []string
	for _, c := range cs.Items {
		if c.Readiness == roster.PositionIdentified {
			excluded = append(excluded, c.Name)
			deps.Logger.Debug("excluding candidate",
				logger.StringFields(
					logger.StringField{Key: logger.FieldCandidate, Value: c.Name},
					logger.StringField{Key: logger.FieldSource, Value: c.Source},
					logger.StringField{Key: logger.FieldSite, Value: c.TrainingSite},
				)...,
			)
			continue
		}
		out.Items = append(out.Items, c)
	}

	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates with identified positions",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", out.Len()),
		)
	}
	return out, Stat{Initial: initial, Dropped: len(excluded), Left: out.Len()}, nil
}

type programFilter struct {
	programs []string
}

// ProgramFilter keeps only candidates in the given training programs.
// Records without a program tag (non-reconciliation feeds) pass through.
func ProgramFilter(programs []string) Step {
	return &programFilter{programs: programs}
}

func (s *programFilter) Name() string { return "program_filter" }

func (s *programFilter) Apply(_ context.Context, deps Deps, cs *roster.Candidates) (*roster.Candidates, Stat, error) {
	initial := cs.Len()
	if len(s.programs) == 0 {
		return cs, Stat{Initial: initial, Left: initial}, nil
	}

	allowed := make(map[string]struct{}, len(s.programs))
	for _, p := range s.programs {
		allowed[strings.ToUpper(p)] = struct{}{}
	}

	out := &roster.Candidates{}
	for _, c := range cs.Items {
		if c.Program == "" {
			out.Items = append(out.Items, c)
			continue
		}
		if _, ok := allowed[strings.ToUpper(c.Program)]; ok {
			out.Items = append(out.Items, c)
		}
	}
	return out, Stat{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}
