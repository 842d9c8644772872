package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTemplateStableIdentifiers(t *testing.T) {
	expected := map[string]Kind{
		"aws/lambda":      KindServerless,
		"aws/ec2":         KindVM,
		"aws/eks":         KindKubernetes,
		"azure/functions": KindServerless,
		"azure/vm":        KindVM,
		"azure/aks":       KindKubernetes,
		"gcp/functions":   KindServerless,
		"gcp/compute":     KindVM,
		"gcp/gke":         KindKubernetes,
	}

	seen := map[string]bool{}
	for _, p := range Providers() {
		for _, dt := range DeploymentTypes(p) {
			input := map[string]string{
				"provider":       string(p),
				"deploymentType": dt,
			}
			if p == GCP {
				input["project"] = "acme-prod-123"
			}
			cfg, err := Resolve(input, nil)
			require.NoError(t, err)

			tmpl := SelectTemplate(cfg)
			assert.Equal(t, string(p)+"/"+dt, tmpl.ID)
			assert.Equal(t, expected[tmpl.ID], tmpl.Kind)
			assert.Equal(t, "infra/"+string(p), tmpl.WorkDir)
			seen[tmpl.ID] = true
		}
	}
	assert.Len(t, seen, 9)
}

func TestSelectTemplateIdempotent(t *testing.T) {
	cfg, err := Resolve(map[string]string{"provider": "aws", "deploymentType": "eks"}, nil)
	require.NoError(t, err)

	first := SelectTemplate(cfg)
	second := SelectTemplate(cfg)
	assert.Equal(t, first, second)
}

func TestTemplatesEnumeratesNine(t *testing.T) {
	all := Templates()
	require.Len(t, all, 9)

	// Stable order: providers alphabetical, types serverless, vm, kubernetes
	assert.Equal(t, "aws/lambda", all[0].ID)
	assert.Equal(t, "azure/functions", all[3].ID)
	assert.Equal(t, "gcp/gke", all[8].ID)
}
