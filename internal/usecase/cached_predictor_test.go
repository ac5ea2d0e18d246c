package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"RetailPrice/internal/domain/models"
	"RetailPrice/pkg/cache"
	applogger "RetailPrice/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedPredictorServesRepeatFromMemory(t *testing.T) {
	stub := &stubPredictor{res: models.PricePrediction{PredictedPrice: 33.46}}
	m := newFakeMetrics()
	p := NewCachedPredictor(stub, cache.NewMemoryCache(), time.Minute, "fp1", m, applogger.Nop())

	first, err := p.PredictPrice(context.Background(), sampleQuery())
	require.NoError(t, err)
	second, err := p.PredictPrice(context.Background(), sampleQuery())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)
}

func TestCachedPredictorKeysOnQuery(t *testing.T) {
	stub := &stubPredictor{res: models.PricePrediction{PredictedPrice: 1}}
	p := NewCachedPredictor(stub, cache.NewMemoryCache(), time.Minute, "fp1", newFakeMetrics(), applogger.Nop())

	q := sampleQuery()
	_, err := p.PredictPrice(context.Background(), q)
	require.NoError(t, err)

	q.HolidayPromotion = 1
	_, err = p.PredictPrice(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls)
}

func TestCachedPredictorDoesNotCacheFailures(t *testing.T) {
	stub := &stubPredictor{err: models.NewInferenceError(models.StagePredict, errors.New("boom"))}
	p := NewCachedPredictor(stub, cache.NewMemoryCache(), time.Minute, "fp1", newFakeMetrics(), applogger.Nop())

	for i := 0; i < 2; i++ {
		_, err := p.PredictPrice(context.Background(), sampleQuery())
		require.Error(t, err)
	}
	assert.Equal(t, 2, stub.calls)
}

func TestCachedPredictorWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	rc, err := cache.NewRedisCache(cache.WithRedisHost(mr.Host()), cache.WithRedisPort(port))
	require.NoError(t, err)
	defer rc.Close()

	stub := &stubPredictor{res: models.PricePrediction{PredictedPrice: 12.34}}
	p := NewCachedPredictor(stub, rc, time.Minute, "fp2", newFakeMetrics(), applogger.Nop())

	_, err = p.PredictPrice(context.Background(), sampleQuery())
	require.NoError(t, err)
	res, err := p.PredictPrice(context.Background(), sampleQuery())
	require.NoError(t, err)

	assert.Equal(t, 12.34, res.PredictedPrice)
	assert.Equal(t, 1, stub.calls)
	assert.Len(t, mr.Keys(), 1)
}

func TestCachedPredictorDegradesWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	rc, err := cache.NewRedisCache(cache.WithRedisHost(mr.Host()), cache.WithRedisPort(port))
	require.NoError(t, err)
	defer rc.Close()
	mr.Close()

	stub := &stubPredictor{res: models.PricePrediction{PredictedPrice: 5}}
	m := newFakeMetrics()
	p := NewCachedPredictor(stub, rc, time.Minute, "fp3", m, applogger.Nop())

	res, err := p.PredictPrice(context.Background(), sampleQuery())
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.PredictedPrice)
	assert.Equal(t, 1, m.misses)
}
