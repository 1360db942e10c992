package kernelapprox

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"github.com/forkloop/kernelapprox/core/model"
	"github.com/forkloop/kernelapprox/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RBFSampler はscikit-learn互換のRBFカーネル近似サンプラー
// ランダムフーリエ特徴（Bochnerの定理のモンテカルロ積分）でガウスカーネルの
// 特徴マップを近似する。変換後の内積は exp(-gamma/2 * ||x-y||^2) に収束する
type RBFSampler struct {
	// State は学習状態の管理（gobエンコードのため公開、埋め込みではなくコンポジション）
	State *model.StateManager

	// Gamma はRBFカーネルのバンド幅パラメータ (デフォルト: 1.0)
	Gamma float64

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
	_ model.FeatureSampler = (*RBFSampler)(nil)
	_ model.Persistable    = (*RBFSampler)(nil)
)

// RBFSamplerOption は設定オプション
type RBFSamplerOption func(*RBFSampler)

// WithRBFGamma はカーネルのバンド幅gammaを設定
func WithRBFGamma(gamma float64) RBFSamplerOption {
	return func(s *RBFSampler) {
		s.Gamma = gamma
	}
}

// WithRBFNComponents は特徴マップの次元数を設定
func WithRBFNComponents(n int) RBFSamplerOption {
	return func(s *RBFSampler) {
		s.NComponents = n
	}
}

// WithRBFRandomState は乱数シードを設定（負の値で時刻シード）
func WithRBFRandomState(seed int64) RBFSamplerOption {
	return func(s *RBFSampler) {
		s.RandomState = seed
	}
}

// WithRBFRandomSource は乱数ソースを直接指定（RandomStateより優先）
func WithRBFRandomSource(src rand.Source) RBFSamplerOption {
	return func(s *RBFSampler) {
		s.src = src
	}
}

// NewRBFSampler は新しいRBFSamplerを作成する
//
// デフォルト: gamma=1.0, n_components=100, random_state=-1（時刻シード）
//
// 使用例:
//
//	sampler := kernelapprox.NewRBFSampler(
//	    kernelapprox.WithRBFGamma(0.5),
//	    kernelapprox.WithRBFRandomState(42),
//	)
//	err := sampler.Fit(X)
//	features, err := sampler.Transform(X)
func NewRBFSampler(options ...RBFSamplerOption) *RBFSampler {
	s := &RBFSampler{
		State:       model.NewStateManager(),
		Gamma:       1.0,
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
func (s *RBFSampler) Fit(X mat.Matrix) error {
	// ハイパーパラメータの検証（データに依存する処理より前に行う）
	if s.NComponents < 1 {
		return errors.NewValidationError("n_components", "must be a positive integer", s.NComponents)
	}
	if s.Gamma <= 0 {
		return errors.NewValidationError("gamma", "must be positive", s.Gamma)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("RBFSampler.Fit", "empty data", errors.ErrEmptyData)
	}

	rng := newSamplerState(s.src, s.RandomState)

	// 標準正規乱数を√gammaでスケールして射影行列を生成
	weights := rng.NormalMatrix(c, s.NComponents)
	weights.Scale(math.Sqrt(s.Gamma), weights)

	// 位相オフセットは [0, 2π) の一様乱数
	s.RandomWeights = weights
	s.RandomOffset = rng.UniformSlice(s.NComponents, 0, 2*math.Pi)
	s.NFeaturesIn = c

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform は学習済みの射影で入力を近似特徴空間へ写像する
// 学習済み状態は変更されない
//
// パラメータ:
//   - X: 変換するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 変換されたデータ (n_samples × n_components)
//   - error: 未学習、次元不一致、または非有限値が含まれる場合のエラー
func (s *RBFSampler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "RBFSampler.Transform")

	if !s.State.IsFitted() {
		return nil, errors.NewNotFittedError("RBFSampler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeaturesIn {
		return nil, errors.NewDimensionError("RBFSampler.Transform", s.NFeaturesIn, c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError("RBFSampler.Transform", "empty data", errors.ErrEmptyData)
	}

	if err := errors.CheckMatrix("RBFSampler.Transform", X, r, c); err != nil {
		return nil, err
	}

	// projection = X · random_weights（Xは疎・密どちらのmat.Matrix実装でもよい）
	var projection mat.Dense
	projection.Mul(X, s.RandomWeights)

	return cosineFeatures(&projection, s.RandomOffset), nil
}

// FitTransform は学習と変換を連続して実行する
func (s *RBFSampler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams はサンプラーのハイパーパラメータを取得する (scikit-learn互換)
func (s *RBFSampler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"gamma":        s.Gamma,
		"n_components": s.NComponents,
		"random_state": s.RandomState,
	}
}

// String はサンプラーの文字列表現を返す
func (s *RBFSampler) String() string {
	if !s.State.IsFitted() {
		return fmt.Sprintf("RBFSampler(gamma=%g, n_components=%d, random_state=%d)",
			s.Gamma, s.NComponents, s.RandomState)
	}
	return fmt.Sprintf("RBFSampler(gamma=%g, n_components=%d, n_features_in=%d, fitted=true)",
		s.Gamma, s.NComponents, s.NFeaturesIn)
}

// Save はサンプラーを学習済み状態ごとgob形式でファイルに保存する
func (s *RBFSampler) Save(path string) error {
	return model.SaveModel(s, path)
}

// Load はSaveで保存されたサンプラーを読み込む
func (s *RBFSampler) Load(path string) error {
	return model.LoadModel(s, path)
}

// SKLearnRBFSamplerParams はscikit-learn互換JSONのRBFSamplerパラメータ
type SKLearnRBFSamplerParams struct {
	Gamma         float64     `json:"gamma"`
	NComponents   int         `json:"n_components"`
	NFeaturesIn   int         `json:"n_features_in"`
	RandomWeights [][]float64 `json:"random_weights"`
	RandomOffset  []float64   `json:"random_offset"`
}

// LoadFromSKLearn はscikit-learnからエクスポートされたJSONファイルから
// 学習済みサンプラーを読み込む
//
// 使用例:
//
//	sampler := kernelapprox.NewRBFSampler()
//	err := sampler.LoadFromSKLearn("rbf_sampler.json")
func (s *RBFSampler) LoadFromSKLearn(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader はReaderからscikit-learn形式のサンプラーを読み込む
func (s *RBFSampler) LoadFromSKLearnReader(r io.Reader) error {
	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to load sklearn model: %w", err)
	}

	if skModel.ModelSpec.Name != "RBFSampler" {
		return fmt.Errorf("model type mismatch: expected RBFSampler, got %s", skModel.ModelSpec.Name)
	}

	var params SKLearnRBFSamplerParams
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

	s.Gamma = params.Gamma
	s.NComponents = wc
	s.RandomWeights = weights
	s.RandomOffset = params.RandomOffset
	s.NFeaturesIn = wr

	s.State.SetFitted()
	s.State.SetDimensions(wr, 0)
	return nil
}

// ExportToSKLearn は学習済みサンプラーをscikit-learn互換のJSON形式でエクスポートする
func (s *RBFSampler) ExportToSKLearn(filename string) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("RBFSampler", "ExportToSKLearn")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return s.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter は学習済みサンプラーをWriterにscikit-learn互換形式で書き出す
func (s *RBFSampler) ExportToSKLearnWriter(w io.Writer) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("RBFSampler", "ExportToSKLearnWriter")
	}

	params := SKLearnRBFSamplerParams{
		Gamma:         s.Gamma,
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
			Name:          "RBFSampler",
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
