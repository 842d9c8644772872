package provision

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAcceptsEveryValidCombination(t *testing.T) {
	for _, p := range Providers() {
		for _, dt := range DeploymentTypes(p) {
			t.Run(string(p)+"/"+dt, func(t *testing.T) {
				input := map[string]string{
					"provider":       string(p),
					"deploymentType": dt,
					"appName":        "orders-api",
				}
				if p == GCP {
					input["project"] = "acme-prod-123"
				}

				cfg, err := Resolve(input, nil)
				require.NoError(t, err)
				assert.Equal(t, p, cfg.Provider)
				assert.Equal(t, dt, cfg.DeploymentType)
				assert.Equal(t, "orders-api", cfg.AppName)

				expectedKind, ok := KindOf(p, dt)
				require.True(t, ok)
				assert.Equal(t, expectedKind, cfg.Kind())
			})
		}
	}
}

func TestResolveRejectsCrossProviderType(t *testing.T) {
	_, err := Resolve(map[string]string{
		"provider":       "azure",
		"deploymentType": "gke",
		"appName":        "orders-api",
	}, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "deploymentType", cfgErr.Field)
	assert.Equal(t, "gke", cfgErr.Value)
	assert.Contains(t, cfgErr.Expected, "aks")
}

func TestResolveRejectsUnknownProvider(t *testing.T) {
	_, err := Resolve(map[string]string{"provider": "digitalocean"}, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "provider", cfgErr.Field)
}

func TestResolveRejectsUnknownInputKey(t *testing.T) {
	_, err := Resolve(map[string]string{
		"provider": "aws",
		"flavour":  "large",
	}, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "flavour", cfgErr.Field)
}

func TestResolveReportsFirstUnknownKeyDeterministically(t *testing.T) {
	input := map[string]string{
		"provider": "aws",
		"tier":     "gold",
		"flavour":  "large",
		"colour":   "blue",
	}

	// Map iteration order varies, the reported key must not
	for range 10 {
		_, err := Resolve(input, nil)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "colour", cfgErr.Field)
	}
}

func TestResolveNormalizesCase(t *testing.T) {
	cfg, err := Resolve(map[string]string{
		"provider":       " AWS ",
		"deploymentType": "Lambda",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, AWS, cfg.Provider)
	assert.Equal(t, "lambda", cfg.DeploymentType)
}

func TestResolveAppNameRules(t *testing.T) {
	cases := []struct {
		name    string
		appName string
	}{
		{"uppercase", "Orders-API"},
		{"underscore", "orders_api"},
		{"leading hyphen", "-orders"},
		{"trailing hyphen", "orders-"},
		{"space", "orders api"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(map[string]string{
				"provider": "aws",
				"appName":  tc.appName,
			}, nil)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "appName", cfgErr.Field)
			assert.Equal(t, tc.appName, cfgErr.Value)
		})
	}
}

func TestResolveAppNameLengthBoundPerProvider(t *testing.T) {
	name61 := strings.Repeat("a", 61)

	// 61 characters exceeds azure's bound of 60 but fits aws's 64
	_, err := Resolve(map[string]string{"provider": "azure", "appName": name61}, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "appName", cfgErr.Field)

	_, err = Resolve(map[string]string{"provider": "aws", "appName": name61}, nil)
	assert.NoError(t, err)
}

func TestResolveAppNameLengthBoundOverride(t *testing.T) {
	defaults := func(Provider) Defaults {
		return Defaults{NamingMaxLength: 10}
	}

	_, err := Resolve(map[string]string{
		"provider": "aws",
		"appName":  "a-name-longer-than-ten",
	}, defaults)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "appName", cfgErr.Field)
	assert.Contains(t, cfgErr.Expected, "10")
}

func TestResolveAppliesDefaults(t *testing.T) {
	cfg, err := Resolve(map[string]string{"provider": "aws"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, "lambda", cfg.DeploymentType)
	assert.Equal(t, "us-east-1", cfg.Region)

	cfg, err = Resolve(map[string]string{"provider": "azure"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "functions", cfg.DeploymentType)
	assert.Equal(t, "eastus", cfg.Location)

	cfg, err = Resolve(map[string]string{"provider": "gcp", "project": "acme-prod-123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "functions", cfg.DeploymentType)
	assert.Equal(t, "us-central1", cfg.Region)
	assert.Equal(t, "us-central1-a", cfg.Zone)
}

func TestResolvePrefersConfiguredDefaults(t *testing.T) {
	defaults := func(p Provider) Defaults {
		return Defaults{Region: "eu-west-1"}
	}

	cfg, err := Resolve(map[string]string{"provider": "aws"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	// Explicit input always wins over defaults
	cfg, err = Resolve(map[string]string{"provider": "aws", "region": "ap-south-1"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.Region)
}

func TestResolveRequiresGCPProject(t *testing.T) {
	_, err := Resolve(map[string]string{"provider": "gcp"}, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "project", cfgErr.Field)
}

func TestResolveGCPProjectFromDefaults(t *testing.T) {
	defaults := func(Provider) Defaults {
		return Defaults{Project: "acme-prod-123"}
	}

	cfg, err := Resolve(map[string]string{"provider": "gcp"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "acme-prod-123", cfg.Project)
}

func TestStackConfigPerProvider(t *testing.T) {
	cfg, err := Resolve(map[string]string{"provider": "aws", "appName": "orders-api"}, nil)
	require.NoError(t, err)
	vars := cfg.StackConfig()
	assert.Equal(t, "orders-api", vars["appName"])
	assert.Equal(t, "lambda", vars["deploymentType"])
	assert.Equal(t, "us-east-1", vars["aws:region"])

	cfg, err = Resolve(map[string]string{"provider": "gcp", "project": "acme-prod-123"}, nil)
	require.NoError(t, err)
	vars = cfg.StackConfig()
	assert.Equal(t, "acme-prod-123", vars["gcpProject"])
	assert.Equal(t, "acme-prod-123", vars["gcp:project"])
	assert.Equal(t, "us-central1", vars["region"])
	assert.Equal(t, "us-central1-a", vars["zone"])
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Field: "provider", Value: "ibm", Expected: "one of aws, azure, gcp"}
	assert.Contains(t, err.Error(), "provider")
	assert.Contains(t, err.Error(), `"ibm"`)

	missing := &ConfigurationError{Field: "project", Expected: "a GCP project ID"}
	assert.Contains(t, missing.Error(), "missing")
}

func TestAuthenticationErrorUnwrap(t *testing.T) {
	cause := errors.New("no credential providers")
	err := &AuthenticationError{Provider: AWS, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "aws")
}

func TestExternalToolErrorMessage(t *testing.T) {
	err := &ExternalToolError{
		Tool:     "pulumi",
		Args:     []string{"up", "--yes"},
		ExitCode: 255,
		Stderr:   "error: no stack selected\n",
	}
	assert.Contains(t, err.Error(), "pulumi up --yes")
	assert.Contains(t, err.Error(), "255")
	assert.Contains(t, err.Error(), "no stack selected")
}
