// Package manifest holds the two static Kubernetes descriptors applied to
// managed clusters after provisioning: a workload Deployment and a
// LoadBalancer Service. The only templating performed is substituting the
// application name and the container image reference.
package manifest

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templates embed.FS

// Workload renders the Deployment descriptor for the given application name
// and container image reference.
func Workload(appName, image string) ([]byte, error) {
	doc, err := load("templates/deployment.yaml")
	if err != nil {
		return nil, err
	}

	substitutions := []struct {
		value string
		path  []string
	}{
		{appName, []string{"metadata", "name"}},
		{appName, []string{"metadata", "labels", "app"}},
		{appName, []string{"spec", "selector", "matchLabels", "app"}},
		{appName, []string{"spec", "template", "metadata", "labels", "app"}},
	}
	for _, s := range substitutions {
		if err := setScalar(doc, s.value, s.path...); err != nil {
			return nil, err
		}
	}

	containers, err := lookup(doc, "spec", "template", "spec", "containers")
	if err != nil {
		return nil, err
	}
	if containers.Kind != yaml.SequenceNode || len(containers.Content) == 0 {
		return nil, fmt.Errorf("workload template has no containers")
	}
	container := containers.Content[0]
	if err := setScalar(container, appName, "name"); err != nil {
		return nil, err
	}
	if err := setScalar(container, image, "image"); err != nil {
		return nil, err
	}

	return render(doc)
}

// Service renders the network-exposing Service descriptor for the given
// application name.
func Service(appName string) ([]byte, error) {
	doc, err := load("templates/service.yaml")
	if err != nil {
		return nil, err
	}

	substitutions := [][]string{
		{"metadata", "name"},
		{"metadata", "labels", "app"},
		{"spec", "selector", "app"},
	}
	for _, path := range substitutions {
		if err := setScalar(doc, appName, path...); err != nil {
			return nil, err
		}
	}

	return render(doc)
}

func load(name string) (*yaml.Node, error) {
	data, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded manifest %s: %w", name, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing embedded manifest %s: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("embedded manifest %s is empty", name)
	}
	return doc.Content[0], nil
}

func render(doc *yaml.Node) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering manifest: %w", err)
	}
	return out, nil
}

// Returns the value node for a key in a mapping node.
func child(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func lookup(node *yaml.Node, path ...string) (*yaml.Node, error) {
	current := node
	for _, key := range path {
		current = child(current, key)
		if current == nil {
			return nil, fmt.Errorf("manifest template missing %v", path)
		}
	}
	return current, nil
}

func setScalar(node *yaml.Node, value string, path ...string) error {
	target, err := lookup(node, path...)
	if err != nil {
		return err
	}
	if target.Kind != yaml.ScalarNode {
		return fmt.Errorf("manifest field %v is not a scalar", path)
	}
	target.Value = value
	return nil
}
