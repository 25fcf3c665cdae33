package bus

import (
	"errors"
	"fmt"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
	errs   []error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) add(name string, direction Direction, typ Type, arr vst3.SpeakerArrangement) *Builder {
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("%s bus %d has no name", direction, b.config.Count(direction)))
	}
	if arr == vst3.ArrEmpty {
		b.errs = append(b.errs, fmt.Errorf("%s bus %q has no speakers", direction, name))
	}
	for _, existing := range b.config.buses {
		if existing.Direction == direction && existing.Name == name {
			b.errs = append(b.errs, fmt.Errorf("duplicate %s bus %q", direction, name))
		}
	}
	b.config.buses = append(b.config.buses, Info{
		Name:        name,
		Direction:   direction,
		Type:        typ,
		Arrangement: arr,
		Active:      typ == Main, // aux buses start inactive
	})
	return b
}

// Input adds a main input bus
func (b *Builder) Input(name string, arr vst3.SpeakerArrangement) *Builder {
	return b.add(name, Input, Main, arr)
}

// Output adds a main output bus
func (b *Builder) Output(name string, arr vst3.SpeakerArrangement) *Builder {
	return b.add(name, Output, Main, arr)
}

// Sidechain adds an auxiliary input bus
func (b *Builder) Sidechain(name string, arr vst3.SpeakerArrangement) *Builder {
	return b.add(name, Input, Aux, arr)
}

// Rule sets the rule SetArrangements checks
func (b *Builder) Rule(rule Rule) *Builder {
	b.config.rule = rule
	return b
}

// Build validates and returns the configuration
func (b *Builder) Build() (*Configuration, error) {
	if b.config.Count(Output) == 0 {
		b.errs = append(b.errs, errors.New("configuration has no output bus"))
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("bus configuration: %w", errors.Join(b.errs...))
	}
	return b.config, nil
}

// MustBuild is Build for static layouts; it panics on error.
func (b *Builder) MustBuild() *Configuration {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
