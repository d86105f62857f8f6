package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Values holds the animatable channels of a transition, keyed by name
// (e.g. "opacity", "x"). All interpolation happens over these numbers.
type Values map[string]float64

// Clone returns a shallow copy. A nil receiver yields nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Target is the raw result of a target producer. It may mix animatable
// channels with reserved control keys ("delay", "config", "done").
// SplitTarget separates the two.
type Target map[string]any

// ExpiresNever disables dismissal of leaving transitions: once their leave
// animation finishes they stay tracked until some other pass drops them.
const ExpiresNever time.Duration = math.MaxInt64

// Config tunes the spring interpolation of a controller.
type Config struct {
	Tension   float64 `json:"tension" yaml:"tension" mapstructure:"tension"`
	Friction  float64 `json:"friction" yaml:"friction" mapstructure:"friction"`
	Mass      float64 `json:"mass" yaml:"mass" mapstructure:"mass"`
	Precision float64 `json:"precision" yaml:"precision" mapstructure:"precision"`
}

// DefaultConfig returns the stock spring tuning.
func DefaultConfig() Config {
	return Config{Tension: 170, Friction: 26, Mass: 1, Precision: 0.005}
}

// Extras carries the reserved control fields split out of a composite Target.
type Extras struct {
	// Delay is added on top of the trail-accumulated delay for this update.
	// Accepts a time.Duration value or a duration string (e.g. "150ms").
	Delay time.Duration `mapstructure:"delay"`

	// Config overrides the per-item spring configuration for this update.
	Config *Config `mapstructure:"config"`

	// Done is the caller's completion callback for this update. It runs
	// before the engine's own bookkeeping.
	Done func(finished bool)
}

// reserved keys recognised by SplitTarget.
const (
	keyDelay  = "delay"
	keyConfig = "config"
	keyDone   = "done"
)

// SplitTarget separates the reserved control fields of a composite target
// from the pass-through animatable values.
//
// Values are weakly converted to float64, so integer literals in a Target
// work as expected. A nil target yields nil values and zero extras.
func SplitTarget(t Target) (Values, Extras, error) {
	var extras Extras
	if t == nil {
		return nil, extras, nil
	}

	// Functions cannot round-trip through mapstructure; pop them first.
	raw := make(map[string]any, len(t))
	for k, v := range t {
		raw[k] = v
	}
	if d, ok := raw[keyDone]; ok {
		fn, ok := d.(func(bool))
		if !ok {
			return nil, extras, fmt.Errorf("target key %q must be func(bool), got %T", keyDone, d)
		}
		extras.Done = fn
		delete(raw, keyDone)
	}

	var decoded struct {
		Delay  time.Duration `mapstructure:"delay"`
		Config *Config       `mapstructure:"config"`
		Rest   Values        `mapstructure:",remain"`
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return nil, extras, fmt.Errorf("failed to build target decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, extras, fmt.Errorf("failed to split target: %w", err)
	}

	extras.Delay = decoded.Delay
	extras.Config = decoded.Config
	return decoded.Rest, extras, nil
}
