// Package log defines standard attribute keys for kernel approximation operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in kernelapprox. Using these standard keys enables
// better log analysis, monitoring, and debugging of feature-map workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Performance Metrics
//   - Error Context
//   - Hyperparameters and Configuration
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the sampler type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of feature-map sampler.
	// Examples: "RBFSampler", "SkewedChi2Sampler", "AdditiveChi2Sampler"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific sampler instance.
	// This is useful for tracking multiple instances of the same sampler type.
	// Examples: "rbf-001", "chi2-abc123", UUID strings
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "kernelapprox", "randstate", "model"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	// This is crucial for understanding the scale of data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of input features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// OutputDimKey indicates the output dimensionality of a feature map.
	// Equals n_components for the Monte Carlo maps and
	// n_features * (2*sample_steps - 1) for the additive map.
	OutputDimKey = "data.output_dim"
)

// Performance Metrics
// These attributes capture timing and resource usage information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	// This is essential for performance monitoring and optimization.
	DurationMsKey = "perf.duration_ms"

	// MemoryUsageKey records memory usage in bytes during the operation.
	// Important for memory optimization and resource planning.
	MemoryUsageKey = "perf.memory_bytes"
)

// Error and Warning Context
// These attributes provide additional context for error messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "INVALID_INPUT"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "ValueError", "NotFittedError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check input data shape", "Call Fit() before Transform()"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
// These attributes capture sampler configuration and hyperparameters.
const (
	// HyperParamsKey contains sampler hyperparameters as a structured object.
	// Useful for tracking configuration and reproducibility.
	HyperParamsKey = "model.hyperparams"

	// GammaKey records the RBF kernel bandwidth parameter.
	GammaKey = "hyperparams.gamma"

	// SkewednessKey records the skewedness offset of the skewed chi-squared map.
	SkewednessKey = "hyperparams.skewedness"

	// ComponentsKey records the number of Monte Carlo components drawn at fit time.
	ComponentsKey = "hyperparams.n_components"

	// SampleStepsKey records the number of Fourier sampling steps of the additive map.
	SampleStepsKey = "hyperparams.sample_steps"

	// SampleIntervalKey records the sampling interval of the additive map.
	SampleIntervalKey = "hyperparams.sample_interval"

	// RandomSeedKey records the random seed for reproducibility.
	// Essential for debugging and ensuring reproducible results.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"

	// Standard error codes
	ErrorNotFitted            = "NOT_FITTED"
	ErrorDimensionMismatch    = "DIMENSION_MISMATCH"
	ErrorEmptyData            = "EMPTY_DATA"
	ErrorInvalidInput         = "INVALID_INPUT"
	ErrorInvalidConfig        = "INVALID_CONFIG"
	ErrorNumericalInstability = "NUMERICAL_INSTABILITY"
)
