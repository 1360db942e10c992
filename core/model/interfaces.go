// Package model provides additional interfaces and types for estimators.
// This file complements the Transformer interface in transformer.go
package model

// ParameterGetter is the interface for estimators that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the estimator's hyperparameters.
	GetParams() map[string]interface{}
}

// Persistable is the interface for estimators that can be saved and loaded.
type Persistable interface {
	// Save saves the estimator to a file.
	Save(path string) error

	// Load loads the estimator from a file.
	Load(path string) error
}

// FeatureSampler combines the interfaces implemented by every kernel
// approximation sampler.
type FeatureSampler interface {
	Transformer
	ParameterGetter
}
