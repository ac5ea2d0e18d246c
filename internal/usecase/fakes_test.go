package usecase

import (
	"context"
	"sync"

	"RetailPrice/internal/domain/models"
)

type fakePreprocessor struct {
	features []float64
	err      error
	panicMsg string
	got      models.Record
}

func (f *fakePreprocessor) Transform(rec models.Record) ([]float64, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.got = rec
	return f.features, f.err
}

type fakeModel struct {
	value float64
	err   error
	got   []float64
}

func (f *fakeModel) Predict(x []float64) (float64, error) {
	f.got = x
	return f.value, f.err
}

type stubPredictor struct {
	mu    sync.Mutex
	calls int
	res   models.PricePrediction
	err   error
}

func (s *stubPredictor) PredictPrice(_ context.Context, _ models.PriceQuery) (models.PricePrediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.res, s.err
}

type fakeMetrics struct {
	mu          sync.Mutex
	predictions map[string]int
	errors      map[string]int
	lastPrice   float64
	latencies   int
	hits        int
	misses      int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{predictions: map[string]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordPrediction(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions[outcome]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLastPrice(price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPrice = price
}

func (m *fakeMetrics) RecordLatency(_ string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies++
}

func (m *fakeMetrics) RecordCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}
