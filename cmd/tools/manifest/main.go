// cmd/tools/manifest/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"assistant-agents/pkg/manifest"
)

var manifestPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	nameAdd := addCmd.String("name", "", "Capability name (e.g., weather)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Weather Lookup)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., information, communication)")
	version := addCmd.String("version", "1.0.0", "Version")
	degradable := addCmd.Bool("degradable", true, "Whether the capability serves synthetic data when its provider is down")
	addCmd.StringVar(&manifestPath, "path", "configs/capability-manifest.json", "Path to manifest file")

	// Update command flags
	nameUpdate := updateCmd.String("name", "", "Capability name to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&manifestPath, "path", "configs/capability-manifest.json", "Path to manifest file")

	// Validate command flags
	validateCmd.StringVar(&manifestPath, "path", "configs/capability-manifest.json", "Path to manifest file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: name, displayName, description, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		capability := manifest.Capability{
			Name:        *nameAdd,
			DisplayName: *displayName,
			Description: *description,
			Category:    *category,
			Version:     *version,
			InputSchema: map[string]interface{}{},
			Providers:   []string{},
			Degradable:  *degradable,
			Timeout:     "15s",
			Tags:        []string{},
		}
		if err := addCapability(&capability); err != nil {
			fmt.Printf("Error adding capability: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added capability: %s\n", *nameAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateCapability(*nameUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating capability: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated capability %s, field %s to %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateManifest(); err != nil {
			fmt.Printf("Manifest validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Manifest validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addCapability(capability *manifest.Capability) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			m = &manifest.CapabilityManifest{
				Version:      "1.0.0",
				LastUpdated:  time.Now().Format(time.RFC3339),
				Capabilities: []manifest.Capability{},
			}
		} else {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	for _, existing := range m.Capabilities {
		if existing.Name == capability.Name {
			return fmt.Errorf("capability with name %s already exists", capability.Name)
		}
	}

	m.Capabilities = append(m.Capabilities, *capability)
	m.LastUpdated = time.Now().Format(time.RFC3339)

	return manifest.Save(m, manifestPath)
}

func updateCapability(name, field, value string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	found := false
	for i := range m.Capabilities {
		if m.Capabilities[i].Name == name {
			found = true
			switch field {
			case "version":
				m.Capabilities[i].Version = value
			case "displayName":
				m.Capabilities[i].DisplayName = value
			case "description":
				m.Capabilities[i].Description = value
			case "category":
				m.Capabilities[i].Category = value
			case "timeout":
				m.Capabilities[i].Timeout = value
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("capability with name %s not found", name)
	}

	m.LastUpdated = time.Now().Format(time.RFC3339)
	return manifest.Save(m, manifestPath)
}

func validateManifest() error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	fmt.Printf("Manifest validation passed. Found %d capabilities.\n", len(m.Capabilities))
	return nil
}

func help() {
	fmt.Println("Usage: manifest <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add       Add a capability to the manifest")
	fmt.Println("  update    Update a field on an existing capability")
	fmt.Println("  validate  Check manifest integrity")
}
