package kernelapprox

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/forkloop/kernelapprox/core/model"
	"github.com/forkloop/kernelapprox/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TestRBFSampler_SaveLoadRoundTrip は学習済み状態の完全な再現性をテスト
func TestRBFSampler_SaveLoadRoundTrip(t *testing.T) {
	// テストデータを作成
	X := mat.NewDense(8, 3, nil)
	for i := 0; i < 8; i++ {
		for j := 0; j < 3; j++ {
			X.Set(i, j, math.Cos(float64(i*3+j)/5.0))
		}
	}

	// サンプラーを学習
	original := NewRBFSampler(
		WithRBFGamma(0.7),
		WithRBFNComponents(32),
		WithRBFRandomState(21),
	)
	if err := original.Fit(X); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	before, err := original.Transform(X)
	if err != nil {
		t.Fatalf("Failed to transform: %v", err)
	}

	// ファイルに保存して読み込む
	path := filepath.Join(t.TempDir(), "rbf_sampler.gob")
	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded := NewRBFSampler()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	// ハイパーパラメータと学習状態が一致することを確認
	if loaded.Gamma != original.Gamma {
		t.Errorf("Gamma mismatch: %v vs %v", loaded.Gamma, original.Gamma)
	}
	if loaded.NComponents != original.NComponents {
		t.Errorf("NComponents mismatch: %d vs %d", loaded.NComponents, original.NComponents)
	}
	if !loaded.State.IsFitted() {
		t.Fatal("Loaded sampler must be fitted")
	}
	if !mat.Equal(loaded.RandomWeights, original.RandomWeights) {
		t.Error("Random weights differ after round trip")
	}

	// 変換結果が完全に一致することを確認
	after, err := loaded.Transform(X)
	if err != nil {
		t.Fatalf("Failed to transform with loaded sampler: %v", err)
	}
	if !mat.Equal(before, after) {
		t.Error("Transform output differs after round trip")
	}
}

// TestSkewedChi2Sampler_SaveLoadRoundTrip は学習済み状態の完全な再現性をテスト
func TestSkewedChi2Sampler_SaveLoadRoundTrip(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		0.5, 1.0,
		1.5, 2.0,
		2.5, 3.0,
		3.5, 4.0,
		4.5, 5.0,
	})

	original := NewSkewedChi2Sampler(
		WithSkewedChi2Skewedness(0.5),
		WithSkewedChi2NComponents(24),
		WithSkewedChi2RandomState(33),
	)
	before, err := original.FitTransform(X)
	if err != nil {
		t.Fatalf("Failed to fit-transform: %v", err)
	}

	path := filepath.Join(t.TempDir(), "skewed_chi2_sampler.gob")
	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded := NewSkewedChi2Sampler()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if loaded.Skewedness != original.Skewedness {
		t.Errorf("Skewedness mismatch: %v vs %v", loaded.Skewedness, original.Skewedness)
	}

	after, err := loaded.Transform(X)
	if err != nil {
		t.Fatalf("Failed to transform with loaded sampler: %v", err)
	}
	if !mat.Equal(before, after) {
		t.Error("Transform output differs after round trip")
	}
}

// TestAdditiveChi2Sampler_SaveLoadRoundTrip は導出済み間隔を含む状態の再現性をテスト
func TestAdditiveChi2Sampler_SaveLoadRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.0, 2.0,
		3.0, 4.0,
		5.0, 6.0,
	})

	original := NewAdditiveChi2Sampler(WithAdditiveChi2SampleSteps(3))
	before, err := original.FitTransform(X)
	if err != nil {
		t.Fatalf("Failed to fit-transform: %v", err)
	}

	path := filepath.Join(t.TempDir(), "additive_chi2_sampler.gob")
	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded := NewAdditiveChi2Sampler()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	// 導出された間隔も復元されることを確認
	if loaded.FittedInterval != 0.4 {
		t.Errorf("Expected fitted interval 0.4, got %v", loaded.FittedInterval)
	}
	if loaded.SampleSteps != 3 {
		t.Errorf("Expected sample_steps 3, got %d", loaded.SampleSteps)
	}

	after, err := loaded.Transform(X)
	if err != nil {
		t.Fatalf("Failed to transform with loaded sampler: %v", err)
	}
	if !mat.Equal(before, after) {
		t.Error("Transform output differs after round trip")
	}
}

// TestUnfittedSampler_SaveLoad は未学習サンプラーの保存と読み込みをテスト
func TestUnfittedSampler_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unfitted.gob")

	original := NewRBFSampler(WithRBFGamma(2.0))
	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save unfitted sampler: %v", err)
	}

	loaded := NewRBFSampler()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Failed to load unfitted sampler: %v", err)
	}

	// 未学習のまま復元され、Transformは拒否される
	if loaded.State.IsFitted() {
		t.Error("Loaded sampler must not be fitted")
	}
	if loaded.Gamma != 2.0 {
		t.Errorf("Expected gamma 2.0, got %v", loaded.Gamma)
	}

	X := mat.NewDense(1, 2, []float64{1, 2})
	_, err := loaded.Transform(X)
	if err == nil {
		t.Fatal("Expected error when transforming with a loaded unfitted sampler")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("Expected NotFittedError, got %T: %v", err, err)
	}
}

// TestSampler_WriterReaderRoundTrip はio.Writer/io.Reader経由の保存と読み込みをテスト
func TestSampler_WriterReaderRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0.1, 0.2,
		0.3, 0.4,
		0.5, 0.6,
		0.7, 0.8,
	})

	original := NewRBFSampler(WithRBFNComponents(16), WithRBFRandomState(3))
	before, err := original.FitTransform(X)
	if err != nil {
		t.Fatalf("Failed to fit-transform: %v", err)
	}

	var buf bytes.Buffer
	if err := model.SaveModelToWriter(original, &buf); err != nil {
		t.Fatalf("Failed to save to writer: %v", err)
	}

	loaded := NewRBFSampler()
	if err := model.LoadModelFromReader(loaded, &buf); err != nil {
		t.Fatalf("Failed to load from reader: %v", err)
	}

	after, err := loaded.Transform(X)
	if err != nil {
		t.Fatalf("Failed to transform with loaded sampler: %v", err)
	}
	if !mat.Equal(before, after) {
		t.Error("Transform output differs after writer/reader round trip")
	}
}

// TestSampler_LoadMissingFile は存在しないファイルの読み込みをテスト
func TestSampler_LoadMissingFile(t *testing.T) {
	sampler := NewRBFSampler()
	err := sampler.Load(filepath.Join(t.TempDir(), "does_not_exist.gob"))
	if err == nil {
		t.Fatal("Expected error for a missing file")
	}
}
