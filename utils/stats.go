package utils

import (
	"log/slog"
	"time"

	"github.com/sheikhrachel/golife/model"
)

// Stats summarizes the population over a run
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	InitialPopulation    int
	FinalPopulation      int
	PeakPopulation       int
	PeakGeneration       int
	TotalGenerations     int
	BoundingBoxSize      int
	StartTime            time.Time
	Elapsed              time.Duration
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records the population of one generation. Generations must be fed in order starting at 0.
func (s *Stats) Update(generation int, population int) {
	if generation == 0 {
		s.InitialPopulation = population
	}
	s.TotalGenerations = generation
	s.FinalPopulation = population
	if population > s.PeakPopulation || generation == 0 {
		s.PeakPopulation = population
		s.PeakGeneration = generation
	}

	// Running mean over generations 0..generation
	s.AveragePopulation += (float64(population) - s.AveragePopulation) / float64(generation+1)
}

// Finish stamps the elapsed time and derives the throughput
func (s *Stats) Finish(elapsed time.Duration) {
	s.Elapsed = elapsed
	if elapsed > 0 {
		s.GenerationsPerSecond = float64(s.TotalGenerations) / elapsed.Seconds()
	}
}

// SummarizeHistory builds Stats from a full generation history
func SummarizeHistory(history []*model.Grid, elapsed time.Duration) *Stats {
	s := NewStats()
	for gen, g := range history {
		s.Update(gen, g.CountLivingCells())
	}
	if n := len(history); n > 0 {
		s.BoundingBoxSize = history[n-1].GetBoundingBoxSize()
	}
	s.Finish(elapsed)
	return s
}

// LogValue implements slog.LogValuer
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.TotalGenerations),
		slog.Int("initial_population", s.InitialPopulation),
		slog.Int("final_population", s.FinalPopulation),
		slog.Int("peak_population", s.PeakPopulation),
		slog.Int("peak_generation", s.PeakGeneration),
		slog.Float64("average_population", s.AveragePopulation),
		slog.Int("bounding_box", s.BoundingBoxSize),
		slog.Duration("elapsed", s.Elapsed),
		slog.Float64("gen_per_sec", s.GenerationsPerSecond),
	)
}
