package service

import (
	"context"

	"RetailPrice/internal/domain/models"
)

// Preprocessor turns an adapted record into the model's feature vector.
type Preprocessor interface {
	Transform(record models.Record) ([]float64, error)
}

// Model maps a feature vector to a single predicted value.
type Model interface {
	Predict(features []float64) (float64, error)
}

// PricePredictor runs the full inference chain for one query.
type PricePredictor interface {
	PredictPrice(ctx context.Context, q models.PriceQuery) (models.PricePrediction, error)
}
