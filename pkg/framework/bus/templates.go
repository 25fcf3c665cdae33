package bus

import (
	"fmt"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// NewEffect creates a one-in one-out effect layout
func NewEffect(arr vst3.SpeakerArrangement, rule Rule) *Configuration {
	return NewBuilder().
		Input(arr.String()+" In", arr).
		Output(arr.String()+" Out", arr).
		Rule(rule).
		MustBuild()
}

// SameChannels accepts arrangements whose input and output at each index
// carry the same number of channels, at most maxChannels.
func SameChannels(maxChannels int) Rule {
	return func(inputs, outputs []vst3.SpeakerArrangement) error {
		for i := range min(len(inputs), len(outputs)) {
			in, out := inputs[i].ChannelCount(), outputs[i].ChannelCount()
			if in != out {
				return fmt.Errorf("bus %d: %d input channels, %d output channels", i, in, out)
			}
			if in > maxChannels {
				return fmt.Errorf("bus %d: %d channels, at most %d supported", i, in, maxChannels)
			}
		}
		return nil
	}
}
