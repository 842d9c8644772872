package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type workloadDoc struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name   string            `yaml:"name"`
		Labels map[string]string `yaml:"labels"`
	} `yaml:"metadata"`
	Spec struct {
		Replicas int `yaml:"replicas"`
		Selector struct {
			MatchLabels map[string]string `yaml:"matchLabels"`
		} `yaml:"selector"`
		Template struct {
			Metadata struct {
				Labels map[string]string `yaml:"labels"`
			} `yaml:"metadata"`
			Spec struct {
				Containers []struct {
					Name  string `yaml:"name"`
					Image string `yaml:"image"`
					Ports []struct {
						ContainerPort int `yaml:"containerPort"`
					} `yaml:"ports"`
				} `yaml:"containers"`
			} `yaml:"spec"`
		} `yaml:"template"`
	} `yaml:"spec"`
}

type serviceDoc struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name   string            `yaml:"name"`
		Labels map[string]string `yaml:"labels"`
	} `yaml:"metadata"`
	Spec struct {
		Type     string            `yaml:"type"`
		Selector map[string]string `yaml:"selector"`
		Ports    []struct {
			Port       int `yaml:"port"`
			TargetPort int `yaml:"targetPort"`
		} `yaml:"ports"`
	} `yaml:"spec"`
}

func TestWorkloadSubstitutesNameAndImage(t *testing.T) {
	out, err := Workload("orders-api", "ghcr.io/acme/orders-api:1.4.2")
	require.NoError(t, err)

	var doc workloadDoc
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, "Deployment", doc.Kind)
	assert.Equal(t, "orders-api", doc.Metadata.Name)
	assert.Equal(t, "orders-api", doc.Metadata.Labels["app"])
	assert.Equal(t, "orders-api", doc.Spec.Selector.MatchLabels["app"])
	assert.Equal(t, "orders-api", doc.Spec.Template.Metadata.Labels["app"])

	require.Len(t, doc.Spec.Template.Spec.Containers, 1)
	container := doc.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "orders-api", container.Name)
	assert.Equal(t, "ghcr.io/acme/orders-api:1.4.2", container.Image)
	require.Len(t, container.Ports, 1)
	assert.Equal(t, 8080, container.Ports[0].ContainerPort)
}

func TestWorkloadLeavesStructureIntact(t *testing.T) {
	out, err := Workload("orders-api", "orders-api:latest")
	require.NoError(t, err)

	var doc workloadDoc
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, 2, doc.Spec.Replicas)
}

func TestServiceSubstitutesNameOnly(t *testing.T) {
	out, err := Service("orders-api")
	require.NoError(t, err)

	var doc serviceDoc
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, "Service", doc.Kind)
	assert.Equal(t, "orders-api", doc.Metadata.Name)
	assert.Equal(t, "orders-api", doc.Metadata.Labels["app"])
	assert.Equal(t, "orders-api", doc.Spec.Selector["app"])
	assert.Equal(t, "LoadBalancer", doc.Spec.Type)

	require.Len(t, doc.Spec.Ports, 1)
	assert.Equal(t, 80, doc.Spec.Ports[0].Port)
	assert.Equal(t, 8080, doc.Spec.Ports[0].TargetPort)
}
