// Package classify derives the readiness stage of a candidate from its
// status, week and feed provenance. Classification is a pure function of the
// record's current field values.
package classify

import (
	"strings"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// Thresholds are the week boundaries of the classification ladder.
type Thresholds struct {
	// ReadyWeek is the elapsed week at which a training candidate becomes
	// ready for placement.
	ReadyWeek int `mapstructure:"ready-week"`
	// InTrainingWeek is the first week counted as actively in training.
	InTrainingWeek int `mapstructure:"in-training-week"`
}

// DefaultThresholds returns the production ladder: weeks 1-5 in training,
// week 6 and later ready.
func DefaultThresholds() Thresholds {
	return Thresholds{ReadyWeek: 6, InTrainingWeek: 1}
}

// Classifier maps candidate records onto readiness stages.
type Classifier struct {
	thresholds Thresholds

	// offerAcceptedStage is the stage an accepted offer maps to. The rich
	// tracking feed treats it as a fresh training start; the combined feed
	// treats it as already placed at a training site.
	offerAcceptedStage roster.Readiness
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithThresholds overrides the week boundaries.
func WithThresholds(t Thresholds) Option {
	return func(c *Classifier) {
		if t.ReadyWeek > t.InTrainingWeek && t.InTrainingWeek >= 0 {
			c.thresholds = t
		}
	}
}

// WithPlacedOfferAccepted switches the accepted-offer mapping to the
// combined-feed variant, where an accepted offer means the candidate is
// already placed at a training site.
func WithPlacedOfferAccepted() Option {
	return func(c *Classifier) {
		c.offerAcceptedStage = roster.PlacedAtTraining
	}
}

// New creates a classifier with the production defaults.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		thresholds:         DefaultThresholds(),
		offerAcceptedStage: roster.StartedTraining,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify evaluates the ladder in priority order: explicit terminal
// statuses first, then the accepted-offer mapping, then week thresholds
// within a training status, then the future-start marker, then week
// thresholds for any other status, then the default. Status overrides week
// except where week refines a training status.
func (cl *Classifier) Classify(c *roster.Candidate) roster.Readiness {
	status := normalize.CleanText(c.Status)

	switch {
	case strings.EqualFold(status, "Position Identified"):
		return roster.PositionIdentified
	case strings.EqualFold(status, "Offer Pending"):
		return roster.OfferPending
	case strings.EqualFold(status, "Offer Accepted"):
		return cl.offerAcceptedStage
	}

	if strings.EqualFold(status, "Training") {
		return cl.byWeek(c.Week)
	}

	if c.Week.Known && c.Week.Future {
		return roster.StartingTraining
	}

	return cl.byWeek(c.Week)
}

func (cl *Classifier) byWeek(w roster.Week) roster.Readiness {
	if !w.Known || w.Future {
		return roster.StartedTraining
	}
	switch {
	case w.Weeks >= cl.thresholds.ReadyWeek:
		return roster.ReadyForPlacement
	case w.Weeks >= cl.thresholds.InTrainingWeek:
		return roster.InTraining
	default:
		return roster.StartedTraining
	}
}
