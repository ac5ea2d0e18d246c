package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"RetailPrice/internal/domain/models"
	domrepo "RetailPrice/internal/domain/repository"
	domsvc "RetailPrice/internal/domain/service"
	"RetailPrice/pkg/cache"
	applogger "RetailPrice/pkg/logger"
)

// CachedPredictor serves repeated queries from a response cache. Keys are scoped
// by the artifact fingerprint so a new model never sees stale entries. Only
// successful predictions are stored; cache failures degrade to a miss.
type CachedPredictor struct {
	next      domsvc.PricePredictor
	cache     cache.Service
	ttl       time.Duration
	namespace string
	metrics   domrepo.Metrics
	logger    *applogger.Logger
}

func NewCachedPredictor(
	next domsvc.PricePredictor,
	c cache.Service,
	ttl time.Duration,
	fingerprint string,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *CachedPredictor {
	return &CachedPredictor{
		next:      next,
		cache:     c,
		ttl:       ttl,
		namespace: fingerprint,
		metrics:   metrics,
		logger:    logger,
	}
}

func (p *CachedPredictor) PredictPrice(ctx context.Context, q models.PriceQuery) (models.PricePrediction, error) {
	key, err := p.key(q)
	if err != nil {
		p.logger.Warn("prediction cache key", applogger.Error(err))
		return p.next.PredictPrice(ctx, q)
	}

	var cached models.PricePrediction
	switch err := p.cache.Get(ctx, key, &cached); {
	case err == nil:
		p.metrics.RecordCacheLookup(true)
		return cached, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		p.logger.Warn("prediction cache get", applogger.String("key", key), applogger.Error(err))
	}
	p.metrics.RecordCacheLookup(false)

	res, err := p.next.PredictPrice(ctx, q)
	if err != nil {
		return res, err
	}

	if err := p.cache.Set(ctx, key, res, p.ttl); err != nil {
		p.logger.Warn("prediction cache set", applogger.String("key", key), applogger.Error(err))
	}
	return res, nil
}

func (p *CachedPredictor) key(q models.PriceQuery) (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return cache.GenerateKeyWithParams("predict", p.namespace, cache.HashKey(string(b))), nil
}

var _ domsvc.PricePredictor = (*CachedPredictor)(nil)
