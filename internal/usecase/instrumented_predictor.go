package usecase

import (
	"context"
	"errors"
	"time"

	"RetailPrice/internal/domain/models"
	domrepo "RetailPrice/internal/domain/repository"
	domsvc "RetailPrice/internal/domain/service"
)

// InstrumentedPredictor records outcome, latency and failing stage around another
// predictor.
type InstrumentedPredictor struct {
	next    domsvc.PricePredictor
	metrics domrepo.Metrics
}

func NewInstrumentedPredictor(next domsvc.PricePredictor, metrics domrepo.Metrics) *InstrumentedPredictor {
	return &InstrumentedPredictor{next: next, metrics: metrics}
}

func (p *InstrumentedPredictor) PredictPrice(ctx context.Context, q models.PriceQuery) (models.PricePrediction, error) {
	start := time.Now()
	res, err := p.next.PredictPrice(ctx, q)
	p.metrics.RecordLatency("predict_price", time.Since(start).Seconds())

	if err != nil {
		p.metrics.RecordPrediction("failure")
		var ie *models.InferenceError
		if errors.As(err, &ie) {
			p.metrics.RecordError(string(ie.Stage))
		} else {
			p.metrics.RecordError("internal")
		}
		return res, err
	}

	p.metrics.RecordPrediction("success")
	p.metrics.RecordLastPrice(res.PredictedPrice)
	return res, nil
}

var _ domsvc.PricePredictor = (*InstrumentedPredictor)(nil)
