package genetic

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the fitness of one population.
type Statistics struct {
	MinFitness    float32 `csv:"min_fitness"`
	MaxFitness    float32 `csv:"max_fitness"`
	AvgFitness    float32 `csv:"avg_fitness"`
	MedianFitness float32 `csv:"median_fitness"`
}

// NewStatistics panics if the population is empty.
func NewStatistics(population []Individual) Statistics {
	if len(population) == 0 {
		panic("genetic: statistics of an empty population")
	}

	fitness := make([]float64, len(population))
	for i, ind := range population {
		fitness[i] = float64(ind.Fitness())
	}

	return Statistics{
		MinFitness:    float32(floats.Min(fitness)),
		MaxFitness:    float32(floats.Max(fitness)),
		AvgFitness:    float32(stat.Mean(fitness, nil)),
		MedianFitness: float32(median(fitness)),
	}
}

// median sorts values in place. Even-sized inputs average the middle pair.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}

// LogValue implements slog.LogValuer for structured logging.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min_fitness", float64(s.MinFitness)),
		slog.Float64("max_fitness", float64(s.MaxFitness)),
		slog.Float64("avg_fitness", float64(s.AvgFitness)),
		slog.Float64("median_fitness", float64(s.MedianFitness)),
	)
}
