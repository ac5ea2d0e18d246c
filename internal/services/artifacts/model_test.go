package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// x[0] <= 0.5 ? (x[1] <= 2 ? 10 : 20) : 30
const stumpTree = `
      nodes:
        - {feature: 0, threshold: 0.5, left: 1, right: 4}
        - {feature: 1, threshold: 2, left: 2, right: 3}
        - {leaf: true, value: 10}
        - {leaf: true, value: 20}
        - {leaf: true, value: 30}
`

func TestLinearModel(t *testing.T) {
	m, err := ParseModel([]byte(`{"type": "linear", "n_features": 2, "coefficients": [2, -1], "intercept": 0.5}`))
	require.NoError(t, err)
	assert.Equal(t, ModelLinear, m.Type())

	got, err := m.Predict([]float64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 5.5, got)
}

func TestModelWidthMismatch(t *testing.T) {
	m, err := ParseModel([]byte("type: linear\nn_features: 3\ncoefficients: [1, 1, 1]\n"))
	require.NoError(t, err)

	_, err = m.Predict([]float64{1})
	require.Error(t, err)
	assert.Equal(t, "X has 1 features, but model is expecting 3 features as input", err.Error())
}

func TestDecisionTree(t *testing.T) {
	m, err := ParseModel([]byte("type: decision_tree\nn_features: 2\ntree:" + stumpTree))
	require.NoError(t, err)

	tests := []struct {
		x    []float64
		want float64
	}{
		{[]float64{0.5, 2}, 10},
		{[]float64{0, 3}, 20},
		{[]float64{0.6, 0}, 30},
	}
	for _, tt := range tests {
		got, err := m.Predict(tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}
}

func TestRandomForestAverages(t *testing.T) {
	doc := "type: random_forest\nn_features: 2\ntrees:\n  -" + stumpTree + "  - nodes:\n      - {leaf: true, value: 40}\n"
	m, err := ParseModel([]byte(doc))
	require.NoError(t, err)

	got, err := m.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 25.0, got)
}

func TestGradientBoostingSums(t *testing.T) {
	doc := "type: gradient_boosting\nn_features: 2\ninit: 100\nlearning_rate: 0.5\ntrees:\n  -" + stumpTree + "  - nodes:\n      - {leaf: true, value: -4}\n"
	m, err := ParseModel([]byte(doc))
	require.NoError(t, err)

	got, err := m.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 113.0, got)
}

func TestParseModelRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", "type: svm\nn_features: 1\n"},
		{"no features", "type: linear\ncoefficients: []\n"},
		{"coefficient count", "type: linear\nn_features: 2\ncoefficients: [1]\n"},
		{"missing tree", "type: decision_tree\nn_features: 1\n"},
		{"backwards child", "type: decision_tree\nn_features: 1\ntree:\n  nodes:\n    - {feature: 0, threshold: 1, left: 0, right: 1}\n    - {leaf: true}\n"},
		{"feature out of range", "type: decision_tree\nn_features: 1\ntree:\n  nodes:\n    - {feature: 3, threshold: 1, left: 1, right: 2}\n    - {leaf: true}\n    - {leaf: true}\n"},
		{"no learning rate", "type: gradient_boosting\nn_features: 1\ntrees:\n  - nodes: [{leaf: true}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
