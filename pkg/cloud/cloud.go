// Package cloud defines the thin per-provider surface the tool needs beyond
// the infrastructure tool itself: credential preflight and state backend
// bootstrap. Everything else (provisioning, scaling, routing) is delegated to
// the provider via the external tool invocation.
package cloud

import (
	"context"

	"multicloud/pkg/provision"
)

// Settings carries the provider-specific auxiliary values a platform client
// needs. Only the fields relevant to the provider are populated.
type Settings struct {
	Region   string
	Location string
	Project  string
	Zone     string
}

// Platform is implemented once per provider.
type Platform interface {
	ProviderName() provision.Provider

	// CheckCredentials verifies that usable cloud credentials are present,
	// returning *provision.AuthenticationError when they are not. It is
	// called before any external tool invocation so credential problems
	// surface without a partially executed pipeline.
	CheckCredentials(ctx context.Context) error

	// EnsureStateBackend creates (idempotently) the object-store bucket or
	// container used as the infrastructure tool's state backend.
	EnsureStateBackend(ctx context.Context, name string) error

	Close() error
}
