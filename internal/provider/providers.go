package provider

// This file explicitly imports all provider implementation packages.
// The blank identifier (_) ensures that the init() function of each package runs,
// allowing them to register themselves with the central provider registry.
//
// To add a new provider, implement the platform logic in pkg/cloud/<name>
// ensuring it self-registers in its init() function, and then add the import here.

import (
	_ "multicloud/pkg/cloud/aws"
	_ "multicloud/pkg/cloud/azure"
	_ "multicloud/pkg/cloud/gcp"
)
