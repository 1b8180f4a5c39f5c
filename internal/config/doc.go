// Package config defines the simulation settings and provides helpers to
// load, validate and save them in YAML format.
//
// Durations are written as Go duration strings ("4s", "1ms"). Missing
// values are filled with defaults by Validate.
package config
