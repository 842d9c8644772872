package provision

import "strings"

type Provider string

const (
	AWS   Provider = "aws"
	Azure Provider = "azure"
	GCP   Provider = "gcp"
)

// Kind classifies a deployment type by provisioning strategy. Kubernetes
// targets additionally receive the workload and service manifests after the
// infrastructure is up.
type Kind string

const (
	KindServerless Kind = "serverless"
	KindVM         Kind = "vm"
	KindKubernetes Kind = "kubernetes"
)

// The valid deployment types per provider, ordered serverless, vm, kubernetes.
// Cross-provider types (e.g. gke on azure) are never accepted.
var deploymentTypes = map[Provider][]struct {
	Name string
	Kind Kind
}{
	AWS: {
		{Name: "lambda", Kind: KindServerless},
		{Name: "ec2", Kind: KindVM},
		{Name: "eks", Kind: KindKubernetes},
	},
	Azure: {
		{Name: "functions", Kind: KindServerless},
		{Name: "vm", Kind: KindVM},
		{Name: "aks", Kind: KindKubernetes},
	},
	GCP: {
		{Name: "functions", Kind: KindServerless},
		{Name: "compute", Kind: KindVM},
		{Name: "gke", Kind: KindKubernetes},
	},
}

var defaultDeploymentType = map[Provider]string{
	AWS:   "lambda",
	Azure: "functions",
	GCP:   "functions",
}

// Returns the supported providers in stable order.
func Providers() []Provider {
	return []Provider{AWS, Azure, GCP}
}

// Returns the supported provider names in stable order.
func ProviderNames() []string {
	names := make([]string, 0, len(Providers()))
	for _, p := range Providers() {
		names = append(names, string(p))
	}
	return names
}

// Parses and normalizes a provider name.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case AWS, Azure, GCP:
		return p, nil
	}
	return "", &ConfigurationError{
		Field:    "provider",
		Value:    name,
		Expected: "one of " + strings.Join(ProviderNames(), ", "),
	}
}

// Returns the valid deployment type names for a provider, ordered serverless,
// vm, kubernetes.
func DeploymentTypes(p Provider) []string {
	entries := deploymentTypes[p]
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// Returns the provisioning kind for a (provider, deploymentType) pair, and
// whether the pair is valid.
func KindOf(p Provider, deploymentType string) (Kind, bool) {
	for _, e := range deploymentTypes[p] {
		if e.Name == deploymentType {
			return e.Kind, true
		}
	}
	return "", false
}

// Returns the deployment type used when none is requested.
func DefaultDeploymentType(p Provider) string {
	return defaultDeploymentType[p]
}
