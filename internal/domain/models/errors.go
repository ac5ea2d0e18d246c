package models

import "fmt"

// InferenceStage names the step of the inference chain that failed.
type InferenceStage string

const (
	StageAdapt     InferenceStage = "adapt"
	StageTransform InferenceStage = "transform"
	StagePredict   InferenceStage = "predict"
)

// InferenceError is the single failure kind of the inference chain. Its message is
// the client-facing diagnostic.
type InferenceError struct {
	Stage InferenceStage
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("Prediction failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// NewInferenceError wraps err raised at stage.
func NewInferenceError(stage InferenceStage, err error) *InferenceError {
	return &InferenceError{Stage: stage, Err: err}
}
