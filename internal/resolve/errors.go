package resolve

import "fmt"

// ConfigurationError reports a supplied source that is not usable as configured.
type ConfigurationError struct {
	Field string // e.g. "directory"
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
