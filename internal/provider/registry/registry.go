package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"multicloud/internal/config"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
)

// ProviderConfigCheck reports whether the persisted configuration carries
// enough for the provider's platform client to be built.
type ProviderConfigCheck func(cfg *config.Config) bool

// ProviderInitializer builds the platform client for one provider.
type ProviderInitializer func(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error)

// ProviderRegistration is what a provider package contributes at init time.
type ProviderRegistration struct {
	ConfigCheck ProviderConfigCheck
	Initializer ProviderInitializer
}

var (
	// Keyed by lowercase provider name
	providerRegistry = make(map[string]ProviderRegistration)
	registryMu       sync.RWMutex
)

// RegisterProvider is called from each provider package's init(). A duplicate
// name or an incomplete registration is a programming error, so it panics.
func RegisterProvider(name string, registration ProviderRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := providerRegistry[normalizedName]; exists {
		panic(fmt.Sprintf("provider %s already registered", normalizedName))
	}

	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("provider %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("provider %s registration missing Initializer", normalizedName))
	}

	providerRegistry[normalizedName] = registration
}

// GetSupportedProviders returns all registered provider names, sorted.
func GetSupportedProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// IsSupported reports whether a provider name has been registered.
func IsSupported(providerName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := providerRegistry[strings.ToLower(providerName)]
	return exists
}

// GetRegistration looks up one provider's registration.
func GetRegistration(providerName string) (ProviderRegistration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := providerRegistry[strings.ToLower(providerName)]
	return registration, exists
}

// GetAllRegistrations returns a copy of the registry, so callers iterate
// without holding the lock.
func GetAllRegistrations() map[string]ProviderRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registrations := make(map[string]ProviderRegistration, len(providerRegistry))
	for k, v := range providerRegistry {
		registrations[k] = v
	}
	return registrations
}
