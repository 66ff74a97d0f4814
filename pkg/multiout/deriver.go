package multiout

import (
	"fmt"
	"path"
)

// Deriver computes what is written for a record and where it goes.
// A nil field behaves as the identity. All functions must be deterministic and
// free of side effects: the multiplexer may call them any number of times.
type Deriver[K, V any] struct {
	// ActualKey derives the key that is persisted.
	ActualKey func(key K, value V) K
	// ActualValue derives the value that is persisted.
	ActualValue func(key K, value V) V
	// DestinationLeaf derives the record's destination from the attempt's base leaf name.
	DestinationLeaf func(key K, value V, baseLeaf string) string
	// BaseLeafName adjusts the attempt's base leaf name once, when the writer is created.
	BaseLeafName func(baseLeaf string) string
}

// DefaultDeriver returns a Deriver that leaves records untouched and sends all
// of them to the base leaf name.
func DefaultDeriver[K, V any]() Deriver[K, V] {
	return Deriver[K, V]{}
}

func (d Deriver[K, V]) actualKey(key K, value V) K {
	if d.ActualKey == nil {
		return key
	}

	return d.ActualKey(key, value)
}

func (d Deriver[K, V]) actualValue(key K, value V) V {
	if d.ActualValue == nil {
		return value
	}

	return d.ActualValue(key, value)
}

func (d Deriver[K, V]) destinationLeaf(key K, value V, baseLeaf string) string {
	if d.DestinationLeaf == nil {
		return baseLeaf
	}

	return d.DestinationLeaf(key, value, baseLeaf)
}

func (d Deriver[K, V]) baseLeafName(baseLeaf string) string {
	if d.BaseLeafName == nil {
		return baseLeaf
	}

	return d.BaseLeafName(baseLeaf)
}

// KeyAsDirectory routes a record to <key>/<baseLeaf>.
// Records whose key renders empty stay in baseLeaf.
func KeyAsDirectory[K, V any](key K, _ V, baseLeaf string) string {
	name := renderKey(key)
	if name == "" {
		return baseLeaf
	}

	return path.Join(name, baseLeaf)
}

// KeyAsPrefix routes a record to <key>-<baseLeaf>.
// Records whose key renders empty stay in baseLeaf.
func KeyAsPrefix[K, V any](key K, _ V, baseLeaf string) string {
	name := renderKey(key)
	if name == "" {
		return baseLeaf
	}

	return name + "-" + baseLeaf
}

func renderKey(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case []byte:
		return string(k)
	default:
		return fmt.Sprint(k)
	}
}
