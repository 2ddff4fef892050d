package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/lark/genetic"
)

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	Generation    int     `csv:"generation"`
	MinFitness    float32 `csv:"min_fitness"`
	MaxFitness    float32 `csv:"max_fitness"`
	AvgFitness    float32 `csv:"avg_fitness"`
	MedianFitness float32 `csv:"median_fitness"`
	DurationMS    int64   `csv:"duration_ms"`
}

// NewGenerationRecord flattens the statistics of a finished generation.
// elapsed is the wall time spent simulating it.
func NewGenerationRecord(generation int, stats genetic.Statistics, elapsed time.Duration) GenerationRecord {
	return GenerationRecord{
		Generation:    generation,
		MinFitness:    stats.MinFitness,
		MaxFitness:    stats.MaxFitness,
		AvgFitness:    stats.AvgFitness,
		MedianFitness: stats.MedianFitness,
		DurationMS:    elapsed.Milliseconds(),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Float64("min_fitness", float64(r.MinFitness)),
		slog.Float64("max_fitness", float64(r.MaxFitness)),
		slog.Float64("avg_fitness", float64(r.AvgFitness)),
		slog.Float64("median_fitness", float64(r.MedianFitness)),
		slog.Int64("duration_ms", r.DurationMS),
	)
}
