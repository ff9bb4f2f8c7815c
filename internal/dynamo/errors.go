package dynamo

import (
	"errors"
	"fmt"
)

// Configuration errors reported by the simulation orchestrator.
var (
	// ErrUnknownModel indicates a model id with no registered model.
	ErrUnknownModel = errors.New("dynamo: unknown model")

	// ErrUnknownSignal indicates an unsupported input signal type.
	ErrUnknownSignal = errors.New("dynamo: unknown signal type")

	// ErrUnknownWindow indicates an unsupported window function type.
	ErrUnknownWindow = errors.New("dynamo: unknown window type")

	// ErrUnknownIntegrator indicates an integrator name with no registration.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrMissingParameter indicates a parameter the model needs is absent.
	ErrMissingParameter = errors.New("dynamo: missing model parameter")

	// ErrInvalidConfig indicates an out-of-domain configuration value.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// ConfigError wraps a configuration error with the offending field.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
