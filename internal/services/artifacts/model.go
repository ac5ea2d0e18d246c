package artifacts

import (
	"fmt"
	"math"
)

const (
	ModelLinear           = "linear"
	ModelDecisionTree     = "decision_tree"
	ModelRandomForest     = "random_forest"
	ModelGradientBoosting = "gradient_boosting"
)

// ModelSpec is the on-disk form of a trained regressor.
type ModelSpec struct {
	Type         string     `yaml:"type"`
	Version      string     `yaml:"version"`
	NFeatures    int        `yaml:"n_features"`
	Coefficients []float64  `yaml:"coefficients,omitempty"`
	Intercept    float64    `yaml:"intercept,omitempty"`
	Tree         *TreeSpec  `yaml:"tree,omitempty"`
	Trees        []TreeSpec `yaml:"trees,omitempty"`
	Init         float64    `yaml:"init,omitempty"`
	LearningRate float64    `yaml:"learning_rate,omitempty"`
}

type TreeSpec struct {
	Nodes []TreeNode `yaml:"nodes"`
}

// TreeNode is a split or a leaf. Internal nodes send x[Feature] <= Threshold left.
type TreeNode struct {
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Value     float64 `yaml:"value"`
	Leaf      bool    `yaml:"leaf"`
}

// Model is a loaded regressor.
type Model interface {
	Predict(features []float64) (float64, error)
	Type() string
	Version() string
	NFeatures() int
}

type meta struct {
	kind      string
	version   string
	nFeatures int
}

func (m meta) Type() string    { return m.kind }
func (m meta) Version() string { return m.version }
func (m meta) NFeatures() int  { return m.nFeatures }

// NewModel validates spec and returns the matching regressor.
func NewModel(spec ModelSpec) (Model, error) {
	if spec.NFeatures <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", spec.NFeatures)
	}

	md := meta{kind: spec.Type, version: spec.Version, nFeatures: spec.NFeatures}
	switch spec.Type {
	case ModelLinear:
		if len(spec.Coefficients) != spec.NFeatures {
			return nil, fmt.Errorf("linear: %d coefficients for %d features", len(spec.Coefficients), spec.NFeatures)
		}
		return &LinearModel{meta: md, coef: spec.Coefficients, intercept: spec.Intercept}, nil
	case ModelDecisionTree:
		if spec.Tree == nil {
			return nil, fmt.Errorf("decision_tree: missing tree")
		}
		t, err := newTree(*spec.Tree, spec.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("decision_tree: %w", err)
		}
		return &DecisionTree{meta: md, tree: t}, nil
	case ModelRandomForest:
		trees, err := newTrees(spec.Trees, spec.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("random_forest: %w", err)
		}
		return &RandomForest{meta: md, trees: trees}, nil
	case ModelGradientBoosting:
		if spec.LearningRate <= 0 {
			return nil, fmt.Errorf("gradient_boosting: learning_rate must be positive")
		}
		trees, err := newTrees(spec.Trees, spec.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("gradient_boosting: %w", err)
		}
		return &GradientBoosting{meta: md, init: spec.Init, rate: spec.LearningRate, trees: trees}, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", spec.Type)
	}
}

func checkWidth(x []float64, n int) error {
	if len(x) != n {
		return fmt.Errorf("X has %d features, but model is expecting %d features as input", len(x), n)
	}
	return nil
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("model produced a non-finite value: %v", v)
	}
	return v, nil
}

// LinearModel predicts intercept + coef·x.
type LinearModel struct {
	meta
	coef      []float64
	intercept float64
}

func (m *LinearModel) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	sum := m.intercept
	for i, c := range m.coef {
		sum += c * x[i]
	}
	return finite(sum)
}

type tree struct {
	nodes []TreeNode
}

// newTree checks that every split points at later nodes, so evaluation always
// reaches a leaf.
func newTree(spec TreeSpec, nFeatures int) (*tree, error) {
	if len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	for i, n := range spec.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return nil, fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(spec.Nodes) || n.Right <= i || n.Right >= len(spec.Nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return &tree{nodes: spec.Nodes}, nil
}

func newTrees(specs []TreeSpec, nFeatures int) ([]*tree, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no trees")
	}
	trees := make([]*tree, 0, len(specs))
	for i, s := range specs {
		t, err := newTree(s, nFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func (t *tree) eval(x []float64) float64 {
	idx := 0
	for {
		node := t.nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

type DecisionTree struct {
	meta
	tree *tree
}

func (m *DecisionTree) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	return finite(m.tree.eval(x))
}

// RandomForest averages its trees.
type RandomForest struct {
	meta
	trees []*tree
}

func (m *RandomForest) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.eval(x)
	}
	return finite(sum / float64(len(m.trees)))
}

// GradientBoosting predicts init + rate * sum of tree outputs.
type GradientBoosting struct {
	meta
	init  float64
	rate  float64
	trees []*tree
}

func (m *GradientBoosting) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.eval(x)
	}
	return finite(m.init + m.rate*sum)
}
