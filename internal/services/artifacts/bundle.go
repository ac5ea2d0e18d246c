package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"RetailPrice/internal/domain/models"
)

// Bundle is the read-only pair of artifacts a process serves with. It is built
// once at startup and never mutated.
type Bundle struct {
	Preprocessor *Preprocessor
	Model        Model
	Info         models.ArtifactInfo
}

// LoadBundle loads both artifacts and checks they agree on feature width.
func LoadBundle(preprocessorPath, modelPath string) (*Bundle, error) {
	preData, err := os.ReadFile(preprocessorPath)
	if err != nil {
		return nil, fmt.Errorf("read preprocessor: %w", err)
	}
	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return NewBundle(preData, modelData)
}

// NewBundle builds a bundle from in-memory artifact documents.
func NewBundle(preData, modelData []byte) (*Bundle, error) {
	pre, err := ParsePreprocessor(preData)
	if err != nil {
		return nil, err
	}
	model, err := ParseModel(modelData)
	if err != nil {
		return nil, err
	}

	if pre.Width() != model.NFeatures() {
		return nil, fmt.Errorf("preprocessor produces %d features, model expects %d", pre.Width(), model.NFeatures())
	}

	h := sha256.New()
	h.Write(preData)
	h.Write(modelData)

	return &Bundle{
		Preprocessor: pre,
		Model:        model,
		Info: models.ArtifactInfo{
			ModelType:           model.Type(),
			FeatureCount:        model.NFeatures(),
			PreprocessorVersion: pre.Version(),
			ModelVersion:        model.Version(),
			Columns:             pre.Columns(),
			Fingerprint:         hex.EncodeToString(h.Sum(nil)),
		},
	}, nil
}

// RequireColumns fails if the preprocessor reads a column not in available.
func (b *Bundle) RequireColumns(available []string) error {
	have := make(map[string]struct{}, len(available))
	for _, c := range available {
		have[c] = struct{}{}
	}
	for _, c := range b.Info.Columns {
		if _, ok := have[c]; !ok {
			return fmt.Errorf("preprocessor reads column %q which requests never provide", c)
		}
	}
	return nil
}
