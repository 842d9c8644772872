package provision

import "path"

// Template identifies one of the nine static infrastructure definitions
// (three providers times three deployment types). The definitions themselves
// live under the infra/ directory as per-provider programs for the
// infrastructure tool; WorkDir points at the program implementing this
// template.
type Template struct {
	ID             string
	Provider       Provider
	DeploymentType string
	Kind           Kind
	WorkDir        string
}

// SelectTemplate maps a valid DeploymentConfig to exactly one template. It is
// pure and total over the validated cross product: every configuration that
// passes Resolve maps to a stable identifier.
func SelectTemplate(cfg *DeploymentConfig) Template {
	return Template{
		ID:             string(cfg.Provider) + "/" + cfg.DeploymentType,
		Provider:       cfg.Provider,
		DeploymentType: cfg.DeploymentType,
		Kind:           cfg.kind,
		WorkDir:        path.Join("infra", string(cfg.Provider)),
	}
}

// Templates enumerates all nine templates in stable order, for display.
func Templates() []Template {
	var all []Template
	for _, p := range Providers() {
		for _, t := range DeploymentTypes(p) {
			kind, _ := KindOf(p, t)
			all = append(all, Template{
				ID:             string(p) + "/" + t,
				Provider:       p,
				DeploymentType: t,
				Kind:           kind,
				WorkDir:        path.Join("infra", string(p)),
			})
		}
	}
	return all
}
