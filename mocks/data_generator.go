package mocks

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/multiout/internal/types"
)

// DataGenerator generates keyed text records for tests and benchmarks.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how records are generated.
type GeneratorConfig struct {
	// KeyPrefix prefixes every generated key (e.g. "region" → "region-03")
	KeyPrefix string
	// Keys is the number of distinct keys
	Keys int
	// Skew concentrates records on low key indexes (0 = uniform)
	Skew float64
	// StartTime is the timestamp of the first record
	StartTime time.Time
	// Interval is the duration between records
	Interval time.Duration
	// Count is the number of records to generate
	Count int
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		KeyPrefix: "key",
		Keys:      16,
		Skew:      0,
		StartTime: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:  time.Second,
		Count:     10000,
	}
}

// Generate creates records whose values are "<timestamp>,<sequence>,<amount>".
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Record[string, string] {
	keys := config.Keys
	if keys <= 0 {
		keys = 1
	}

	records := make([]types.Record[string, string], config.Count)
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		// u^(1+skew) pushes samples toward 0 as skew grows
		u := math.Pow(g.rng.Float64(), 1+config.Skew)
		keyIndex := int(u * float64(keys))
		if keyIndex >= keys {
			keyIndex = keys - 1
		}

		amount := roundToDecimals(g.rng.Float64()*1000, 2)

		records[i] = types.NewRecord(
			fmt.Sprintf("%s-%02d", config.KeyPrefix, keyIndex),
			fmt.Sprintf("%s,%d,%.2f", currentTime.Format(time.RFC3339), i, amount),
		)

		currentTime = currentTime.Add(config.Interval)
	}

	return records
}

// DistinctKeys returns the distinct keys of records in first-seen order.
func DistinctKeys[V any](records []types.Record[string, V]) []string {
	seen := make(map[string]struct{})

	var keys []string

	for _, r := range records {
		if _, ok := seen[r.Key]; ok {
			continue
		}

		seen[r.Key] = struct{}{}
		keys = append(keys, r.Key)
	}

	return keys
}

// Generate10K is a convenience function to generate 10,000 records over
// 16 keys with default settings for benchmarking.
func Generate10K() []types.Record[string, string] {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility

	return gen.Generate(DefaultConfig())
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
