package task

import (
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
)

// Configuration keys understood by the output layer.
const (
	// ConfTrailingSegments is the number of trailing input-path directories mirrored
	// into destination names. 0 disables input-aware naming.
	ConfTrailingSegments = "multiout.input.trailing-segments"
	// ConfOutputBaseName is the base of the per-attempt leaf name ("part" → "part-m-00000").
	ConfOutputBaseName = "multiout.output.basename"
	// ConfTextSeparator separates key and value in text output.
	ConfTextSeparator = "multiout.text.separator"
	// ConfCompressOutput enables gzip compression of text output.
	ConfCompressOutput = "multiout.output.compress"
)

// DefaultOutputBaseName is used when ConfOutputBaseName is not set.
const DefaultOutputBaseName = "part"

// Configuration is a string keyed lookup with typed accessors.
type Configuration interface {
	// Get returns the raw value stored under key.
	Get(key string) optional.Option[string]
	// GetString returns the value under key or def when unset.
	GetString(key string, def string) string
	// GetInt returns the value under key parsed as an integer, or def when unset or unparsable.
	GetInt(key string, def int) int
	// GetBool returns the value under key parsed as a boolean, or def when unset or unparsable.
	GetBool(key string, def bool) bool
}

// MapConfiguration is a Configuration backed by a plain map.
type MapConfiguration map[string]string

var _ Configuration = MapConfiguration(nil)

// Get implements Configuration.
func (c MapConfiguration) Get(key string) optional.Option[string] {
	value, ok := c[key]
	if !ok {
		return optional.None[string]()
	}

	return optional.Some(value)
}

// GetString implements Configuration.
func (c MapConfiguration) GetString(key string, def string) string {
	return c.Get(key).TakeOr(def)
}

// GetInt implements Configuration.
func (c MapConfiguration) GetInt(key string, def int) int {
	value, ok := c[key]
	if !ok {
		return def
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}

	return parsed
}

// GetBool implements Configuration.
func (c MapConfiguration) GetBool(key string, def bool) bool {
	value, ok := c[key]
	if !ok {
		return def
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}

	return parsed
}
