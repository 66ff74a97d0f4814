package types

// Record is one key/value pair emitted by a task.
type Record[K, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// NewRecord creates a Record.
func NewRecord[K, V any](key K, value V) Record[K, V] {
	return Record[K, V]{Key: key, Value: value}
}
