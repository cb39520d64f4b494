// pkg/manifest/manifest.go
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

func Load(path string) (*CapabilityManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m CapabilityManifest
	err = json.Unmarshal(data, &m)
	return &m, err
}

func Save(m *CapabilityManifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks structural integrity: unique names and required fields.
func (m *CapabilityManifest) Validate() error {
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("manifest contains no capabilities")
	}

	names := make(map[string]bool)
	for _, c := range m.Capabilities {
		if c.Name == "" {
			return fmt.Errorf("capability missing required field: name")
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate capability name: %s", c.Name)
		}
		names[c.Name] = true

		if c.DisplayName == "" {
			return fmt.Errorf("capability %s missing required field: displayName", c.Name)
		}
		if c.Category == "" {
			return fmt.Errorf("capability %s missing required field: category", c.Name)
		}
	}
	return nil
}
