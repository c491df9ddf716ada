package config

import (
	"os"

	"github.com/saturncloud/examplecheck/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue describes the winning source of one config key.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource

	// Shadowed lists lower-precedence sources that also set the key.
	Shadowed []ConfigSource
}

// Resolve reports, for every key, which source supplied its value.
func (l *Loader) Resolve() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(Keys))
	for _, key := range Keys {
		values = append(values, l.resolve(key))
	}
	return values
}

func (l *Loader) resolve(key string) ResolvedValue {
	var present []ConfigSource
	if f, ok := l.flags[key]; (ok && f.Changed) || l.overrides[key] {
		present = append(present, SourceFlag)
	}
	if _, ok := os.LookupEnv(envName(key)); ok {
		present = append(present, SourceEnv)
	}
	if l.v.InConfig(key) {
		present = append(present, SourceConfig)
	}

	rv := ResolvedValue{Key: key, Value: l.v.Get(key), Source: SourceDefault}
	if len(present) > 0 {
		rv.Source = present[0]
		rv.Shadowed = present[1:]
	}
	return rv
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for _, source := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
			)
		}
	}
}
