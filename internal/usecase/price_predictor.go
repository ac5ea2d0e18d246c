package usecase

import (
	"context"
	"fmt"
	"math"

	"RetailPrice/internal/domain/models"
	domsvc "RetailPrice/internal/domain/service"

	"github.com/shopspring/decimal"
)

// PriceInvoker runs adapt -> transform -> predict -> round for a single query.
// It holds the loaded artifacts read-only and is safe for concurrent use as long
// as they are.
type PriceInvoker struct {
	pre   domsvc.Preprocessor
	model domsvc.Model
}

func NewPriceInvoker(pre domsvc.Preprocessor, model domsvc.Model) *PriceInvoker {
	return &PriceInvoker{pre: pre, model: model}
}

// PredictPrice returns the rounded prediction, or an *models.InferenceError for
// any failure inside the chain, panics included.
func (p *PriceInvoker) PredictPrice(_ context.Context, q models.PriceQuery) (res models.PricePrediction, err error) {
	stage := models.StageAdapt
	defer func() {
		if r := recover(); r != nil {
			res = models.PricePrediction{}
			err = models.NewInferenceError(stage, fmt.Errorf("%v", r))
		}
	}()

	rec := AdaptQuery(q)

	stage = models.StageTransform
	features, err := p.pre.Transform(rec)
	if err != nil {
		return models.PricePrediction{}, models.NewInferenceError(stage, err)
	}

	stage = models.StagePredict
	value, err := p.model.Predict(features)
	if err != nil {
		return models.PricePrediction{}, models.NewInferenceError(stage, err)
	}

	price, err := RoundPrice(value)
	if err != nil {
		return models.PricePrediction{}, models.NewInferenceError(stage, err)
	}
	return models.PricePrediction{PredictedPrice: price}, nil
}

// RoundPrice rounds v to two decimal places (half away from zero on the decimal
// representation). Non-finite values are rejected.
func RoundPrice(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("model returned a non-finite value: %v", v)
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64(), nil
}

var _ domsvc.PricePredictor = (*PriceInvoker)(nil)
