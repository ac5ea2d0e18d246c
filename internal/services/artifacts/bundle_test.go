package artifacts

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"RetailPrice/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	samplePreprocessor = "../../../artifacts/preprocessor.yaml"
	sampleModel        = "../../../artifacts/best_model.yaml"
)

func TestLoadBundleSampleArtifacts(t *testing.T) {
	b, err := LoadBundle(samplePreprocessor, sampleModel)
	require.NoError(t, err)

	assert.Equal(t, ModelLinear, b.Info.ModelType)
	assert.Equal(t, 26, b.Info.FeatureCount)
	assert.Len(t, b.Info.Fingerprint, 64)
	assert.Contains(t, b.Info.Columns, "Holiday/Promotion")

	x, err := b.Preprocessor.Transform(models.Record{
		"Date":               "2024-01-01",
		"Category":           "Electronics",
		"Region":             "North",
		"Inventory Level":    int64(100),
		"Units Sold":         int64(20),
		"Units Ordered":      int64(30),
		"Demand Forecast":    25.5,
		"Discount":           0.1,
		"Weather Condition":  "Sunny",
		"Holiday/Promotion":  int64(0),
		"Seasonality":        "Winter",
		"Competitor Pricing": 19.99,
	})
	require.NoError(t, err)

	price, err := b.Model.Predict(x)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(price))
	assert.Greater(t, price, 0.0)
}

func TestLoadBundleWidthMismatch(t *testing.T) {
	dir := t.TempDir()
	pre := filepath.Join(dir, "pre.yaml")
	model := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(pre, []byte("transformers:\n  - kind: passthrough\n    columns: [a, b]\n"), 0o600))
	require.NoError(t, os.WriteFile(model, []byte(`{"type": "linear", "n_features": 3, "coefficients": [1, 2, 3]}`), 0o600))

	_, err := LoadBundle(pre, model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produces 2 features, model expects 3")
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "nope.yaml"), sampleModel)
	assert.Error(t, err)
}

func TestBundleFingerprintTracksContent(t *testing.T) {
	pre := []byte("transformers:\n  - kind: passthrough\n    columns: [a]\n")
	a, err := NewBundle(pre, []byte("type: linear\nn_features: 1\ncoefficients: [1]\n"))
	require.NoError(t, err)
	b, err := NewBundle(pre, []byte("type: linear\nn_features: 1\ncoefficients: [2]\n"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Info.Fingerprint, b.Info.Fingerprint)
}

func TestBundleRequireColumns(t *testing.T) {
	b, err := NewBundle(
		[]byte("transformers:\n  - kind: passthrough\n    columns: [a, b]\n"),
		[]byte("type: linear\nn_features: 2\ncoefficients: [1, 1]\n"),
	)
	require.NoError(t, err)

	assert.NoError(t, b.RequireColumns([]string{"a", "b", "c"}))
	assert.Error(t, b.RequireColumns([]string{"a"}))
}
