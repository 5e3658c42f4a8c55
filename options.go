package ioc

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Registry.
type Option interface {
	apply(*options)
}

// options holds registry configuration.
type options struct {
	id         string
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}

// WithLogger sets the logger used for registry lifecycle events.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// WithMetrics registers construction counters with reg.
// Without this option no metrics are recorded.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(opts *options) {
		opts.registerer = reg
	})
}

// WithID overrides the generated registry ID.
func WithID(id string) Option {
	return optionFunc(func(opts *options) {
		opts.id = id
	})
}
