package provision

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid or missing input field. It is always
// recoverable: the caller corrects the input and retries.
type ConfigurationError struct {
	Field    string
	Value    string
	Expected string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configuration: %s is missing (expected %s)", e.Field, e.Expected)
	}
	return fmt.Sprintf("invalid configuration: %s: got %q, expected %s", e.Field, e.Value, e.Expected)
}

// ExternalToolError reports a non-zero exit from an external tool (pulumi,
// kubectl, az). The tool's stderr is surfaced verbatim; there is no automatic
// retry.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s %s exited with code %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// AuthenticationError reports missing or invalid cloud credentials. It is not
// retried; the operator must fix their credential setup.
type AuthenticationError struct {
	Provider Provider
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for provider %s: %v", e.Provider, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
