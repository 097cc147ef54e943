package config

import "github.com/ollo-ai/ollo/pkg/client"

// Preset resolves a named preset with any configured overrides applied.
func (c *Config) Preset(name string) client.Preset {
	p := client.PresetByName(name)

	var o PresetConfig
	switch p.Name {
	case "fast":
		o = c.Presets.Fast
	case "code":
		o = c.Presets.Code
	default:
		o = c.Presets.Normal
	}

	if o.Temperature != nil {
		p.Options.Temperature = *o.Temperature
	}
	if o.NumPredict != nil {
		p.Options.NumPredict = *o.NumPredict
	}
	if o.TopK != nil {
		p.Options.TopK = *o.TopK
	}
	if o.TopP != nil {
		p.Options.TopP = *o.TopP
	}
	if o.RepeatPenalty != nil {
		p.Options.RepeatPenalty = *o.RepeatPenalty
	}
	if o.Timeout != nil {
		p.Timeout = *o.Timeout
	}

	return p
}
