package reconciler

import (
	"github.com/agentstation/revcheck/internal/matcher"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/verdict"
)

// Options configures a reconciler.
type options struct {
	tiers         []matcher.Tier
	classify      matcher.ClassifyFunc
	concurrency   int
	progressEvery int
}

func defaultOptions() *options {
	return &options{
		tiers:         matcher.Default(),
		classify:      verdict.Classify,
		concurrency:   constants.DefaultConcurrency,
		progressEvery: constants.DefaultProgressEvery,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithTiers replaces the matching tiers, tried in the given order.
func WithTiers(tiers ...matcher.Tier) Option {
	return func(o *options) error {
		if len(tiers) == 0 {
			return &errors.ValidationError{
				Field:   "tiers",
				Message: "at least one tier is required",
			}
		}
		for _, t := range tiers {
			if t == nil {
				return &errors.ValidationError{
					Field:   "tiers",
					Message: "cannot contain nil",
				}
			}
		}
		o.tiers = tiers
		return nil
	}
}

// WithTierTypes selects built-in tiers by type.
func WithTierTypes(types ...matcher.TierType) Option {
	return func(o *options) error {
		tiers := make([]matcher.Tier, 0, len(types))
		for _, tt := range types {
			tier, ok := matcher.ForType(tt)
			if !ok {
				return &errors.ValidationError{
					Field:   "tiers",
					Value:   tt,
					Message: "unknown tier",
				}
			}
			tiers = append(tiers, tier)
		}
		return WithTiers(tiers...)(o)
	}
}

// WithClassifier replaces the verdict classifier.
func WithClassifier(classify matcher.ClassifyFunc) Option {
	return func(o *options) error {
		if classify == nil {
			return &errors.ValidationError{
				Field:   "classifier",
				Message: "cannot be nil",
			}
		}
		o.classify = classify
		return nil
	}
}

// WithConcurrency sets how many client rows are classified in parallel.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		o.concurrency = n
		return nil
	}
}

// WithProgressEvery logs progress after every n classified rows. Zero disables it.
func WithProgressEvery(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field:   "progress_every",
				Value:   n,
				Message: "cannot be negative",
			}
		}
		o.progressEvery = n
		return nil
	}
}
