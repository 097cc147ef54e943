package client

import (
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

// Preset is a named sampling configuration with a matching timeout.
type Preset struct {
	Name    string
	Options models.SamplingOptions
	Timeout time.Duration
}

// fast favors short low-temperature answers, code allows a larger
// token budget at low temperature, normal sits in between.
var (
	PresetFast = Preset{
		Name: "fast",
		Options: models.SamplingOptions{
			Temperature:   0.1,
			NumPredict:    20,
			TopK:          10,
			TopP:          0.9,
			RepeatPenalty: 1.1,
		},
		Timeout: 10 * time.Second,
	}

	PresetNormal = Preset{
		Name: "normal",
		Options: models.SamplingOptions{
			Temperature:   0.7,
			NumPredict:    100,
			TopK:          40,
			TopP:          0.9,
			RepeatPenalty: 1.1,
		},
		Timeout: 30 * time.Second,
	}

	PresetCode = Preset{
		Name: "code",
		Options: models.SamplingOptions{
			Temperature:   0.2,
			NumPredict:    200,
			TopK:          40,
			TopP:          0.9,
			RepeatPenalty: 1.1,
		},
		Timeout: 30 * time.Second,
	}
)

// PresetByName returns the named preset, defaulting to normal.
func PresetByName(name string) Preset {
	switch name {
	case "fast":
		return PresetFast
	case "code":
		return PresetCode
	default:
		return PresetNormal
	}
}
