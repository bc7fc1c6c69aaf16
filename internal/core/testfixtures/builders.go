package testfixtures

import (
	"fmt"
	"math/rand"

	"modlist.dev/cli/internal/core/component"
)

// ComponentBuilder provides a builder pattern for creating host component entries
type ComponentBuilder struct {
	info component.Info
}

// NewComponentBuilder creates a new ComponentBuilder with sensible defaults
func NewComponentBuilder() *ComponentBuilder {
	return &ComponentBuilder{
		info: component.Info{
			ID:          "examplemod",
			DisplayName: "Example Mod",
			Version:     "1.0.0",
			Description: "An example mod.\n",
		},
	}
}

// WithID sets the component id
func (b *ComponentBuilder) WithID(id string) *ComponentBuilder {
	b.info.ID = id
	return b
}

// WithName sets the display name
func (b *ComponentBuilder) WithName(name string) *ComponentBuilder {
	b.info.DisplayName = name
	return b
}

// WithVersion sets the version string
func (b *ComponentBuilder) WithVersion(version string) *ComponentBuilder {
	b.info.Version = version
	return b
}

// WithDescription sets the raw (untrimmed) description
func (b *ComponentBuilder) WithDescription(description string) *ComponentBuilder {
	b.info.Description = description
	return b
}

// Build creates the component entry
func (b *ComponentBuilder) Build() component.Info {
	return b.info
}

// SampleComponents returns a small, unsorted host registry
func SampleComponents() []component.Info {
	return []component.Info{
		NewComponentBuilder().WithID("minecraft").WithName("Minecraft").WithVersion("1.21.1").WithDescription("").Build(),
		NewComponentBuilder().WithID("neoforge").WithName("NeoForge").WithVersion("21.1.77").WithDescription("NeoForge mod loader").Build(),
		NewComponentBuilder().WithID("jei").WithName("Just Enough Items").WithVersion("19.21.0.247").WithDescription("  JEI is an item and recipe viewing mod.\n").Build(),
		NewComponentBuilder().WithID("appleskin").WithName("AppleSkin").WithVersion("3.0.5").WithDescription("Food value tooltips").Build(),
		NewComponentBuilder().WithID("modlistexporter").WithName("Mod List Exporter").WithVersion("1.0.0").WithDescription("Exports the mod list\n").Build(),
	}
}

// RandomComponent creates a component with a random id and mixed-case name
func RandomComponent(rng *rand.Rand) component.Info {
	names := []string{"alpha", "Alpha", "beta", "Beta", "GAMMA", "delta", "Épée", "zeta", ""}
	id := fmt.Sprintf("mod%d", rng.Intn(1000))

	return component.Info{
		ID:          id,
		DisplayName: names[rng.Intn(len(names))],
		Version:     fmt.Sprintf("%d.%d.%d", rng.Intn(3), rng.Intn(10), rng.Intn(100)),
		Description: " description of " + id + "\n",
	}
}
