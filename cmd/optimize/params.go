package main

import (
	"github.com/pthm-cable/lark/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Config key
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters:
// the mutation strategy and how strongly brains can steer.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "ga_mut_chance", Min: 0.001, Max: 0.2, Default: 0.01},
			{Name: "ga_mut_coeff", Min: 0.01, Max: 1.0, Default: 0.3},
			{Name: "sim_speed_accel", Min: 0.05, Max: 1.0, Default: 0.2},
			{Name: "sim_rotation_accel", Min: 0.2, Max: 3.14, Default: 1.5707964},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig returns a copy of base with the clamped values applied.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(base *config.Config, values []float64) *config.Config {
	clamped := pv.Clamp(values)

	cfg := *base
	cfg.GAMutChance = float32(clamped[0])
	cfg.GAMutCoeff = float32(clamped[1])
	cfg.SimSpeedAccel = float32(clamped[2])
	cfg.SimRotationAccel = float32(clamped[3])
	return &cfg
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.GAMutChance),
		float64(cfg.GAMutCoeff),
		float64(cfg.SimSpeedAccel),
		float64(cfg.SimRotationAccel),
	}
}
