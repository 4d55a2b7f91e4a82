package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Load the run-time-tunable pieces of a badge's
 *		configuration.
 *
 * Description:	The FIR anti-alias kernel and IIR resonator shape are
 *		fixed at compile time by dsp.go's init() and have no
 *		override here. FrequencyTicks is the one exception, and it
 *		exists purely for test benches: setting it regenerates the
 *		IIR resonator bank against non-hardware-compatible channel
 *		frequencies, which a real badge never needs.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loaded, run-time-tunable subset of a badge's
// settings.
type Config struct {
	MyFrequency int    `yaml:"myFrequency"`
	IgnoreSelf  bool   `yaml:"ignoreSelf"`
	FudgeFactor uint32 `yaml:"fudgeFactor"`

	IgnoreFrequencies []int `yaml:"ignoreFrequencies"`

	TransmitterPin int `yaml:"transmitterPin"`
	HitLedPin      int `yaml:"hitLedPin"`
	TriggerPin     int `yaml:"triggerPin"`

	StartingShots int `yaml:"startingShots"`

	// FrequencyTicks overrides the full-period tick count for each
	// channel's carrier, for test benches only. Empty leaves the
	// hardware-compatible default table in place; if set it must
	// supply exactly NumChannels entries.
	FrequencyTicks []int `yaml:"frequencyTicks,omitempty"`
}

// DefaultConfig returns the settings a freshly-flashed badge boots
// with.
func DefaultConfig() Config {
	return Config{
		MyFrequency:    0,
		IgnoreSelf:     true,
		FudgeFactor:    DefaultFudgeFactor,
		TransmitterPin: TransmitterPin,
		HitLedPin:      HitLedPin,
		TriggerPin:     TriggerPin,
		StartingShots:  StartingShots,
	}
}

// LoadConfig reads and parses a YAML config file, starting from
// DefaultConfig so a partial file only overrides what it sets.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.MyFrequency < 0 || cfg.MyFrequency >= NumChannels {
		return cfg, fmt.Errorf("myFrequency %d out of range [0, %d)", cfg.MyFrequency, NumChannels)
	}
	if len(cfg.FrequencyTicks) > 0 {
		if len(cfg.FrequencyTicks) != NumChannels {
			return cfg, fmt.Errorf("frequencyTicks must have exactly %d entries, got %d", NumChannels, len(cfg.FrequencyTicks))
		}
		var table [NumChannels]int
		copy(table[:], cfg.FrequencyTicks)
		SetFrequencyTickTable(table)
	}
	return cfg, nil
}

// IgnoreMask expands IgnoreFrequencies into the [NumChannels]bool form
// Detector.Init expects.
func (c Config) IgnoreMask() [NumChannels]bool {
	var mask [NumChannels]bool
	for _, f := range c.IgnoreFrequencies {
		if f >= 0 && f < NumChannels {
			mask[f] = true
		}
	}
	return mask
}
