package models

// ArtifactInfo describes the loaded preprocessor and model.
type ArtifactInfo struct {
	ModelType           string   `json:"model_type"`
	FeatureCount        int      `json:"feature_count"`
	PreprocessorVersion string   `json:"preprocessor_version,omitempty"`
	ModelVersion        string   `json:"model_version,omitempty"`
	Columns             []string `json:"columns"`
	Fingerprint         string   `json:"fingerprint"`
}
