// pkg/manifest/schema.go
package manifest

// CapabilityManifest is the published catalogue of assistant capabilities,
// consumed by deployment tooling and documentation builds.
type CapabilityManifest struct {
	Version      string       `json:"version"`
	LastUpdated  string       `json:"lastUpdated"`
	Capabilities []Capability `json:"capabilities"`
}

type Capability struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Version     string                 `json:"version"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Providers   []string               `json:"providers"`
	Degradable  bool                   `json:"degradable"`
	Timeout     string                 `json:"timeout"`
	Tags        []string               `json:"tags"`
}
