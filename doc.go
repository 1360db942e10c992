// Package kernelapprox provides explicit feature maps that approximate popular
// kernel functions, so linear models over the mapped features can stand in for
// kernel methods without ever materializing a Gram matrix.
//
// The API follows scikit-learn's kernel_approximation module, which makes the
// samplers familiar to anyone coming from Python's ecosystem.
//
// # Features
//
// - RBFSampler: random Fourier features for the Gaussian (RBF) kernel
// - SkewedChi2Sampler: Monte Carlo feature map for the skewed chi-squared kernel
// - AdditiveChi2Sampler: deterministic sampled feature map for the additive chi-squared kernel
// - scikit-learn-like API: Fit / Transform / FitTransform with functional options
// - Robust Error Handling: typed errors with stack traces
// - CPU-parallel transforms for large inputs
//
// # Installation
//
// Install kernelapprox using go get:
//
//	go get github.com/forkloop/kernelapprox
//
// # Quick Start
//
// Here's a simple example of approximating the RBF kernel:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/forkloop/kernelapprox"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Create input data
//	    X := mat.NewDense(4, 2, []float64{
//	        1, 2,
//	        3, 4,
//	        5, 6,
//	        7, 8,
//	    })
//
//	    // Create and fit the sampler
//	    sampler := kernelapprox.NewRBFSampler(
//	        kernelapprox.WithRBFGamma(0.5),
//	        kernelapprox.WithRBFNComponents(200),
//	        kernelapprox.WithRBFRandomState(42),
//	    )
//
//	    features, err := sampler.FitTransform(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    rows, cols := features.Dims()
//	    fmt.Printf("Mapped 4x2 input into a %dx%d feature space\n", rows, cols)
//	}
//
// Inner products of the mapped rows approximate the Gaussian kernel
// exp(-gamma/2 * ||x-y||^2), and the approximation tightens as n_components
// grows.
//
// # Packages
//
// The library is organized into several packages:
//
//   - kernelapprox: The three feature map samplers
//   - randstate: Seeded random generation for the Monte Carlo maps
//   - core/model: Estimator interfaces, state tracking, persistence
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Structured error types
//   - pkg/log: Structured logging helpers for applications
//
// # scikit-learn Compatibility
//
// Samplers expose their hyperparameters with scikit-learn naming:
//
//	sampler := kernelapprox.NewSkewedChi2Sampler(
//	    kernelapprox.WithSkewedChi2Skewedness(1.0),
//	    kernelapprox.WithSkewedChi2NComponents(100),
//	)
//	params := sampler.GetParams() // {"skewedness": 1, "n_components": 100, ...}
//
// Fitted samplers round-trip through gob for persistence, and import/export a
// JSON format shared with scikit-learn for cross-language workflows.
//
// # Performance
//
// Transforms parallelize across row chunks automatically:
//
//   - Automatic parallelization for inputs with >1000 rows
//   - CPU core detection and optimal worker allocation
//   - Identical output whether run sequentially or in parallel
//
// # License
//
// kernelapprox is released under the MIT License.
package kernelapprox
