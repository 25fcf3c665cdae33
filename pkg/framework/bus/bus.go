// Package bus describes a component's audio buses and negotiates the speaker
// arrangements a host asks for.
package bus

import (
	"fmt"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Direction represents the bus direction
type Direction int32

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Type represents the bus type
type Type int32

const (
	Main Type = iota
	Aux
)

// Info contains bus configuration
type Info struct {
	Name        string
	Direction   Direction
	Type        Type
	Arrangement vst3.SpeakerArrangement
	Active      bool
}

// Rule decides whether a complete set of arrangements is acceptable. It is
// called with one arrangement per bus, in bus order.
type Rule func(inputs, outputs []vst3.SpeakerArrangement) error

// Configuration manages the audio buses of a component
type Configuration struct {
	buses []Info
	rule  Rule
}

// Count returns the number of buses in direction
func (c *Configuration) Count(direction Direction) int32 {
	var n int32
	for _, b := range c.buses {
		if b.Direction == direction {
			n++
		}
	}
	return n
}

// Get returns the bus at index in direction, or nil
func (c *Configuration) Get(direction Direction, index int32) *Info {
	var i int32
	for k := range c.buses {
		if c.buses[k].Direction != direction {
			continue
		}
		if i == index {
			return &c.buses[k]
		}
		i++
	}
	return nil
}

// Arrangements returns the current arrangement of every bus in direction
func (c *Configuration) Arrangements(direction Direction) []vst3.SpeakerArrangement {
	out := make([]vst3.SpeakerArrangement, 0, c.Count(direction))
	for _, b := range c.buses {
		if b.Direction == direction {
			out = append(out, b.Arrangement)
		}
	}
	return out
}

// SetArrangements replaces the arrangement of every bus. Nothing changes
// unless the counts match the bus layout and the rule accepts the set.
func (c *Configuration) SetArrangements(inputs, outputs []vst3.SpeakerArrangement) error {
	if int32(len(inputs)) != c.Count(Input) || int32(len(outputs)) != c.Count(Output) {
		return fmt.Errorf("%w: want %d inputs and %d outputs, got %d and %d",
			vst3.ErrResultFalse, c.Count(Input), c.Count(Output), len(inputs), len(outputs))
	}
	for _, arr := range append(inputs[:len(inputs):len(inputs)], outputs...) {
		if arr == vst3.ArrEmpty {
			return fmt.Errorf("%w: empty arrangement", vst3.ErrResultFalse)
		}
	}
	if c.rule != nil {
		if err := c.rule(inputs, outputs); err != nil {
			return fmt.Errorf("%w: %v", vst3.ErrResultFalse, err)
		}
	}

	next := map[Direction][]vst3.SpeakerArrangement{Input: inputs, Output: outputs}
	idx := map[Direction]int{}
	for k := range c.buses {
		d := c.buses[k].Direction
		c.buses[k].Arrangement = next[d][idx[d]]
		idx[d]++
	}
	return nil
}

// SetActive activates or deactivates a bus
func (c *Configuration) SetActive(direction Direction, index int32, active bool) error {
	b := c.Get(direction, index)
	if b == nil {
		return fmt.Errorf("%w: no %s bus %d", vst3.ErrInvalidArgument, direction, index)
	}
	b.Active = active
	return nil
}
