package guardrail

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/guardrail/engine"
	"github.com/dmitrymomot/guardrail/pkg/config"
	"github.com/dmitrymomot/guardrail/rules"
)

// Factory wires a validation middleware together: rule set, error
// construction and abort policy. The zero configuration obtained from
// NewFactory aborts with a 422 ValidationError and gives every schema its
// own fresh rule set.
type Factory struct {
	set              *rules.Set
	newError         ErrorFactory
	throwOnError     bool
	stopOnFirstError bool
	log              *slog.Logger
}

// NewFactory creates a Factory with the default policy: abort on error.
func NewFactory() *Factory {
	return &Factory{throwOnError: true}
}

// WithRuleSet injects a shared rule catalog. Schemas built from this factory
// resolve named rules against it; without this call each Make builds a
// fresh rules.NewSet so custom registrations never leak between consumers.
func (f *Factory) WithRuleSet(set *rules.Set) *Factory {
	f.set = set
	return f
}

// WithValidationError injects the structured error constructor, letting
// callers change the reported status or shape.
func (f *Factory) WithValidationError(fn ErrorFactory) *Factory {
	f.newError = fn
	return f
}

// DoNotThrow switches the middleware to pass-through mode: requests always
// reach the next handler, with the full {errors, validated} result available
// through ResultFrom.
func (f *Factory) DoNotThrow() *Factory {
	f.throwOnError = false
	return f
}

// StopOnFirstError makes built validators report the first failing check
// alone instead of the full aggregate.
func (f *Factory) StopOnFirstError() *Factory {
	f.stopOnFirstError = true
	return f
}

// WithLogger sets the logger used to report 500-class pipeline failures.
func (f *Factory) WithLogger(log *slog.Logger) *Factory {
	f.log = log
	return f
}

// Make builds the middleware for one schema.
func (f *Factory) Make(schema Schema) func(http.Handler) http.Handler {
	set := f.set
	if set == nil {
		set = rules.NewSet()
	}

	opts := []engine.Option{engine.WithRuleSet(set)}
	if f.stopOnFirstError {
		opts = append(opts, engine.WithStopOnFirstError())
	}

	newError := f.newError
	if newError == nil {
		newError = NewValidationError
	}

	m := &Middleware{
		validator:    engine.New(schema, opts...),
		newError:     newError,
		throwOnError: f.throwOnError,
		log:          f.log,
	}
	return m.Handler
}

// Make is the one-call facade: middleware for a schema with default policy.
func Make(schema Schema) func(http.Handler) http.Handler {
	return NewFactory().Make(schema)
}

// Config carries the environment-driven defaults for factories built with
// NewFactoryFromEnv.
type Config struct {
	StopOnFirstError bool `env:"GUARDRAIL_STOP_ON_FIRST_ERROR" envDefault:"false"`
	ThrowOnError     bool `env:"GUARDRAIL_THROW_ON_ERROR" envDefault:"true"`
	ErrorStatus      int  `env:"GUARDRAIL_ERROR_STATUS" envDefault:"422"`
}

// NewFactoryFromEnv builds a Factory configured from environment variables.
func NewFactoryFromEnv() (*Factory, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewFactoryFromConfig(cfg), nil
}

// NewFactoryFromConfig builds a Factory from an explicit Config.
func NewFactoryFromConfig(cfg Config) *Factory {
	f := NewFactory()
	if !cfg.ThrowOnError {
		f.DoNotThrow()
	}
	if cfg.StopOnFirstError {
		f.StopOnFirstError()
	}
	if cfg.ErrorStatus != 0 && cfg.ErrorStatus != http.StatusUnprocessableEntity {
		status := cfg.ErrorStatus
		f.WithValidationError(func(errs engine.Errors) *ValidationError {
			return &ValidationError{Status: status, Errors: errs}
		})
	}
	return f
}
