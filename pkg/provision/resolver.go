package provision

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultAppName is used when the input omits appName.
const DefaultAppName = "multi-cloud-api"

// Defaults supplies per-provider fallback values applied during resolution.
// NamingMaxLength bounds the appName; a zero value falls back to the
// provider's built-in bound.
type Defaults struct {
	Region          string
	Location        string
	Project         string
	Zone            string
	NamingMaxLength int
}

// DefaultsFunc returns the defaults for the provider selected by the input.
// Resolution works without one; a nil func applies built-in defaults only.
type DefaultsFunc func(Provider) Defaults

// Resource names must survive each platform's naming rules, so the common
// denominator is enforced here: lowercase alphanumeric plus hyphen, no
// leading or trailing hyphen.
var resourceNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Built-in appName length bounds, overridable via <provider>.naming.maxlength.
var namingMaxLength = map[Provider]int{
	AWS:   64,
	Azure: 60,
	GCP:   63,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs
	if err := v.RegisterValidation("resourcename", func(fl validator.FieldLevel) bool {
		return resourceNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering resourcename validation: %v", err))
	}
	return v
}

// Resolve validates and normalizes raw key-value input into a
// DeploymentConfig. It performs no network calls; any violation yields a
// *ConfigurationError naming the offending field.
func Resolve(input map[string]string, defaults DefaultsFunc) (*DeploymentConfig, error) {
	cfg, err := decodeInput(input)
	if err != nil {
		return nil, err
	}

	provider, err := ParseProvider(string(cfg.Provider))
	if err != nil {
		return nil, err
	}
	cfg.Provider = provider

	d := Defaults{}
	if defaults != nil {
		d = defaults(provider)
	}
	applyDefaults(cfg, d)

	cfg.DeploymentType = strings.ToLower(strings.TrimSpace(cfg.DeploymentType))
	kind, ok := KindOf(provider, cfg.DeploymentType)
	if !ok {
		return nil, &ConfigurationError{
			Field:    "deploymentType",
			Value:    cfg.DeploymentType,
			Expected: fmt.Sprintf("one of %s for provider %s", strings.Join(DeploymentTypes(provider), ", "), provider),
		}
	}
	cfg.kind = kind

	if err := validateAppName(cfg, d); err != nil {
		return nil, err
	}

	if provider == GCP && cfg.Project == "" {
		return nil, &ConfigurationError{
			Field:    "project",
			Expected: "a GCP project ID (flag --project or 'multicloud config set gcp.project')",
		}
	}

	return cfg, nil
}

func decodeInput(input map[string]string) (*DeploymentConfig, error) {
	var cfg DeploymentConfig
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &cfg,
		Metadata: &md,
	})
	if err != nil {
		return nil, fmt.Errorf("building input decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	if len(md.Unused) > 0 {
		// Deterministic: always report the lexicographically first unknown key
		sort.Strings(md.Unused)
		return nil, &ConfigurationError{
			Field:    md.Unused[0],
			Value:    input[md.Unused[0]],
			Expected: "a known configuration key (provider, deploymentType, appName, region, location, project, zone, image)",
		}
	}

	return &cfg, nil
}

func applyDefaults(cfg *DeploymentConfig, d Defaults) {
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.DeploymentType == "" {
		cfg.DeploymentType = DefaultDeploymentType(cfg.Provider)
	}

	switch cfg.Provider {
	case AWS:
		if cfg.Region == "" {
			cfg.Region = firstNonEmpty(d.Region, "us-east-1")
		}
	case Azure:
		if cfg.Location == "" {
			cfg.Location = firstNonEmpty(d.Location, "eastus")
		}
	case GCP:
		if cfg.Region == "" {
			cfg.Region = firstNonEmpty(d.Region, "us-central1")
		}
		if cfg.Zone == "" {
			cfg.Zone = firstNonEmpty(d.Zone, "us-central1-a")
		}
		if cfg.Project == "" {
			cfg.Project = d.Project
		}
	}
}

func validateAppName(cfg *DeploymentConfig, d Defaults) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ConfigurationError{
				Field:    "appName",
				Value:    cfg.AppName,
				Expected: "a non-empty name of lowercase letters, digits and hyphens, not starting or ending with a hyphen",
			}
		}
		return fmt.Errorf("validating configuration: %w", err)
	}

	maxLen := d.NamingMaxLength
	if maxLen <= 0 {
		maxLen = namingMaxLength[cfg.Provider]
	}
	if len(cfg.AppName) > maxLen {
		return &ConfigurationError{
			Field:    "appName",
			Value:    cfg.AppName,
			Expected: fmt.Sprintf("at most %d characters for provider %s", maxLen, cfg.Provider),
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
