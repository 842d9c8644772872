package provision

// DeploymentConfig is the validated, immutable record describing a single
// deployment request. It is produced by Resolve, consumed once by the
// external tool invocation, and never mutated or persisted.
type DeploymentConfig struct {
	Provider       Provider `mapstructure:"provider"`
	DeploymentType string   `mapstructure:"deploymentType"`
	AppName        string   `mapstructure:"appName" validate:"required,resourcename"`

	// Provider-specific auxiliary fields. Region applies to aws and gcp,
	// Location to azure, Project and Zone to gcp only.
	Region   string `mapstructure:"region"`
	Location string `mapstructure:"location"`
	Project  string `mapstructure:"project"`
	Zone     string `mapstructure:"zone"`

	// Image overrides the container image applied to Kubernetes manifests.
	Image string `mapstructure:"image"`

	kind Kind
}

// Returns the provisioning kind resolved for this configuration.
func (c *DeploymentConfig) Kind() Kind {
	return c.kind
}

// Returns the configuration variables handed to the infrastructure tool.
// Key names match what the provider programs read from their stack config.
func (c *DeploymentConfig) StackConfig() map[string]string {
	vars := map[string]string{
		"deploymentType": c.DeploymentType,
		"appName":        c.AppName,
	}

	switch c.Provider {
	case AWS:
		vars["aws:region"] = c.Region
	case Azure:
		vars["location"] = c.Location
		vars["azure-native:location"] = c.Location
	case GCP:
		vars["gcpProject"] = c.Project
		vars["gcp:project"] = c.Project
		vars["region"] = c.Region
		vars["zone"] = c.Zone
	}

	return vars
}
