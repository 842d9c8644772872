package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags select the target cloud for an operation
	Provider      = "provider"
	ProviderShort = "p"

	// Type flags select the deployment strategy within a provider
	Type      = "type"
	TypeShort = "t"

	// AppName flags name the application; the name flows into every
	// provisioned resource
	AppName      = "app-name"
	AppNameShort = "n"

	// Region flags apply to aws and gcp targets
	Region      = "region"
	RegionShort = "r"

	// Location flags apply to azure targets
	Location      = "location"
	LocationShort = "l"

	// Project flags specify the GCP project ID
	Project = "project"

	// Zone flags specify the GCP compute zone
	Zone = "zone"

	// Image flags override the container image applied to cluster manifests
	Image      = "image"
	ImageShort = "i"

	// Bucket flags name the state backend bucket or container
	Bucket      = "bucket"
	BucketShort = "b"

	// Addr flags set the listen address of the local API server
	Addr = "addr"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
