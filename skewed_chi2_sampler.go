package kernelapprox

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"github.com/forkloop/kernelapprox/core/model"
	"github.com/forkloop/kernelapprox/core/parallel"
	"github.com/forkloop/kernelapprox/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SkewedChi2Sampler はscikit-learn互換のskewed chi-squaredカーネル近似サンプラー
// RBFSamplerと同じランダムフーリエ特徴の機構を使うが、重みはカーネルの
// フーリエ変換に対応するsech型分布から逆CDF法でサンプリングする
type SkewedChi2Sampler struct {
	// State は学習状態の管理（gobエンコードのため公開、埋め込みではなくコンポジション）
	State *model.StateManager

	// Skewedness は対数変換の前に加算されるオフセット (デフォルト: 1.0)
	// 交差検証で選ぶことが想定されており、ここでは検証されない
	Skewedness float64

	// NComponents は特徴マップの次元数 (デフォルト: 100)
	NComponents int

	// RandomState は乱数シード（負の値で時刻シード、デフォルト: -1）
	RandomState int64

	// RandomWeights は学習済みの射影行列 (n_features × n_components)
	RandomWeights *mat.Dense

	// RandomOffset は学習済みの位相オフセット、各値は [0, 2π)
	RandomOffset []float64

	// NFeaturesIn は学習時の特徴量の数
	NFeaturesIn int

	// src は明示的に指定された乱数ソース（RandomStateより優先）
	src rand.Source
}

// Interface compliance checks
var (
	_ model.FeatureSampler = (*SkewedChi2Sampler)(nil)
	_ model.Persistable    = (*SkewedChi2Sampler)(nil)
)

// SkewedChi2SamplerOption は設定オプション
type SkewedChi2SamplerOption func(*SkewedChi2Sampler)

// WithSkewedChi2Skewedness はカーネルのskewednessパラメータを設定
func WithSkewedChi2Skewedness(skewedness float64) SkewedChi2SamplerOption {
	return func(s *SkewedChi2Sampler) {
		s.Skewedness = skewedness
	}
}

// WithSkewedChi2NComponents は特徴マップの次元数を設定
func WithSkewedChi2NComponents(n int) SkewedChi2SamplerOption {
	return func(s *SkewedChi2Sampler) {
		s.NComponents = n
	}
}

// WithSkewedChi2RandomState は乱数シードを設定（負の値で時刻シード）
func WithSkewedChi2RandomState(seed int64) SkewedChi2SamplerOption {
	return func(s *SkewedChi2Sampler) {
		s.RandomState = seed
	}
}

// WithSkewedChi2RandomSource は乱数ソースを直接指定（RandomStateより優先）
func WithSkewedChi2RandomSource(src rand.Source) SkewedChi2SamplerOption {
	return func(s *SkewedChi2Sampler) {
		s.src = src
	}
}

// NewSkewedChi2Sampler は新しいSkewedChi2Samplerを作成する
//
// デフォルト: skewedness=1.0, n_components=100, random_state=-1（時刻シード）
//
// 使用例:
//
//	sampler := kernelapprox.NewSkewedChi2Sampler(
//	    kernelapprox.WithSkewedChi2Skewedness(1.0),
//	    kernelapprox.WithSkewedChi2RandomState(42),
//	)
//	features, err := sampler.FitTransform(X)
func NewSkewedChi2Sampler(options ...SkewedChi2SamplerOption) *SkewedChi2Sampler {
	s := &SkewedChi2Sampler{
		State:       model.NewStateManager(),
		Skewedness:  1.0,
		NComponents: 100,
		RandomState: -1,
	}

	// Apply options
	for _, opt := range options {
		opt(s)
	}

	return s
}

// Fit は入力の特徴量数に合わせてランダム射影をサンプリングする
// Xの内容は形状（列数）の決定にのみ使用される
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: 設定が不正な場合、またはXが空の場合のエラー
func (s *SkewedChi2Sampler) Fit(X mat.Matrix) error {
	if s.NComponents < 1 {
		return errors.NewValidationError("n_components", "must be a positive integer", s.NComponents)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SkewedChi2Sampler.Fit", "empty data", errors.ErrEmptyData)
	}

	rng := newSamplerState(s.src, s.RandomState)

	// 一様乱数をsech分布の逆CDF (1/π)·ln(tan(π/2·u)) で変換して重みを得る
	uniform := rng.UniformMatrix(c, s.NComponents, 0, 1)
	weights := mat.NewDense(c, s.NComponents, nil)
	for i := 0; i < c; i++ {
		for j := 0; j < s.NComponents; j++ {
			u := uniform.At(i, j)
			weights.Set(i, j, (1.0/math.Pi)*math.Log(math.Tan(math.Pi/2.0*u)))
		}
	}

	// 位相オフセットはRBFSamplerと同じく [0, 2π) の一様乱数
	s.RandomWeights = weights
	s.RandomOffset = rng.UniformSlice(s.NComponents, 0, 2*math.Pi)
	s.NFeaturesIn = c

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform は学習済みの射影で入力を近似特徴空間へ写像する
//
// 前提条件: Xのすべての要素が非負であること。違反がある場合は計算を行わず
// ValueErrorを返し、学習済み状態は変更されない
//
// パラメータ:
//   - X: 変換するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 変換されたデータ (n_samples × n_components)
//   - error: 未学習、次元不一致、負の要素、または非有限値が含まれる場合のエラー
func (s *SkewedChi2Sampler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "SkewedChi2Sampler.Transform")

	if !s.State.IsFitted() {
		return nil, errors.NewNotFittedError("SkewedChi2Sampler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeaturesIn {
		return nil, errors.NewDimensionError("SkewedChi2Sampler.Transform", s.NFeaturesIn, c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError("SkewedChi2Sampler.Transform", "empty data", errors.ErrEmptyData)
	}

	if err := errors.CheckMatrix("SkewedChi2Sampler.Transform", X, r, c); err != nil {
		return nil, err
	}

	// ドメイン前提条件の全走査（計算に入る前に行い、部分的な出力を作らない）
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if X.At(i, j) < 0 {
				return nil, errors.NewValueError("SkewedChi2Sampler.Transform",
					"X may not contain entries smaller than zero")
			}
		}
	}

	// projection = log(X + skewedness) · random_weights
	logX := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				logX.Set(i, j, math.Log(X.At(i, j)+s.Skewedness))
			}
		}
	})

	var projection mat.Dense
	projection.Mul(logX, s.RandomWeights)

	return cosineFeatures(&projection, s.RandomOffset), nil
}

// FitTransform は学習と変換を連続して実行する
func (s *SkewedChi2Sampler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams はサンプラーのハイパーパラメータを取得する (scikit-learn互換)
func (s *SkewedChi2Sampler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"skewedness":   s.Skewedness,
		"n_components": s.NComponents,
		"random_state": s.RandomState,
	}
}

// String はサンプラーの文字列表現を返す
func (s *SkewedChi2Sampler) String() string {
	if !s.State.IsFitted() {
		return fmt.Sprintf("SkewedChi2Sampler(skewedness=%g, n_components=%d, random_state=%d)",
			s.Skewedness, s.NComponents, s.RandomState)
	}
	return fmt.Sprintf("SkewedChi2Sampler(skewedness=%g, n_components=%d, n_features_in=%d, fitted=true)",
		s.Skewedness, s.NComponents, s.NFeaturesIn)
}

// Save はサンプラーを学習済み状態ごとgob形式でファイルに保存する
func (s *SkewedChi2Sampler) Save(path string) error {
	return model.SaveModel(s, path)
}

// Load はSaveで保存されたサンプラーを読み込む
func (s *SkewedChi2Sampler) Load(path string) error {
	return model.LoadModel(s, path)
}

// SKLearnSkewedChi2SamplerParams はscikit-learn互換JSONのSkewedChi2Samplerパラメータ
type SKLearnSkewedChi2SamplerParams struct {
	Skewedness    float64     `json:"skewedness"`
	NComponents   int         `json:"n_components"`
	NFeaturesIn   int         `json:"n_features_in"`
	RandomWeights [][]float64 `json:"random_weights"`
	RandomOffset  []float64   `json:"random_offset"`
}

// LoadFromSKLearn はscikit-learnからエクスポートされたJSONファイルから
// 学習済みサンプラーを読み込む
func (s *SkewedChi2Sampler) LoadFromSKLearn(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader はReaderからscikit-learn形式のサンプラーを読み込む
func (s *SkewedChi2Sampler) LoadFromSKLearnReader(r io.Reader) error {
	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to load sklearn model: %w", err)
	}

	if skModel.ModelSpec.Name != "SkewedChi2Sampler" {
		return fmt.Errorf("model type mismatch: expected SkewedChi2Sampler, got %s", skModel.ModelSpec.Name)
	}

	var params SKLearnSkewedChi2SamplerParams
	if err := json.Unmarshal(skModel.Params, &params); err != nil {
		return fmt.Errorf("failed to unmarshal params: %w", err)
	}

	weights, err := rowsToDense(params.RandomWeights)
	if err != nil {
		return fmt.Errorf("invalid random_weights: %w", err)
	}

	wr, wc := weights.Dims()
	if len(params.RandomOffset) != wc {
		return fmt.Errorf("random_offset length %d does not match n_components %d",
			len(params.RandomOffset), wc)
	}

	s.Skewedness = params.Skewedness
	s.NComponents = wc
	s.RandomWeights = weights
	s.RandomOffset = params.RandomOffset
	s.NFeaturesIn = wr

	s.State.SetFitted()
	s.State.SetDimensions(wr, 0)
	return nil
}

// ExportToSKLearn は学習済みサンプラーをscikit-learn互換のJSON形式でエクスポートする
func (s *SkewedChi2Sampler) ExportToSKLearn(filename string) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("SkewedChi2Sampler", "ExportToSKLearn")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return s.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter は学習済みサンプラーをWriterにscikit-learn互換形式で書き出す
func (s *SkewedChi2Sampler) ExportToSKLearnWriter(w io.Writer) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("SkewedChi2Sampler", "ExportToSKLearnWriter")
	}

	params := SKLearnSkewedChi2SamplerParams{
		Skewedness:    s.Skewedness,
		NComponents:   s.NComponents,
		NFeaturesIn:   s.NFeaturesIn,
		RandomWeights: denseToRows(s.RandomWeights),
		RandomOffset:  s.RandomOffset,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	skModel := model.SKLearnModel{
		ModelSpec: model.SKLearnModelSpec{
			Name:          "SkewedChi2Sampler",
			FormatVersion: "1.0",
		},
		Params: paramsJSON,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&skModel); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	return nil
}
