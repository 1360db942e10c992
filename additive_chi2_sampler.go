package kernelapprox

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/forkloop/kernelapprox/core/model"
	"github.com/forkloop/kernelapprox/core/parallel"
	"github.com/forkloop/kernelapprox/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// AdditiveChi2Sampler はscikit-learn互換のadditive chi-squaredカーネル近似サンプラー
// カーネルのフーリエ変換を等間隔に標本化する決定的な特徴マップで、乱数を使わない
// カーネルが入力次元ごとに加法分解できるため、各特徴量は独立に
// 2·sample_steps−1 個の出力特徴量へ展開される
type AdditiveChi2Sampler struct {
	// State は学習状態の管理（gobエンコードのため公開、埋め込みではなくコンポジション）
	State *model.StateManager

	// SampleSteps は標本化ステップ数 (デフォルト: 2、通常は1〜3)
	SampleSteps int

	// SampleInterval は標本化間隔 (デフォルト: 0 = 未設定、Fit時にSampleStepsから導出)
	// 明示的に設定する場合は正の値でなければならない
	SampleInterval float64

	// FittedInterval はTransformが実際に使用する標本化間隔
	// Fitで導出された値、または明示的に設定された値がそのまま入る
	FittedInterval float64
}

// Interface compliance checks
var (
	_ model.FeatureSampler = (*AdditiveChi2Sampler)(nil)
	_ model.Persistable    = (*AdditiveChi2Sampler)(nil)
)

// AdditiveChi2SamplerOption は設定オプション
type AdditiveChi2SamplerOption func(*AdditiveChi2Sampler)

// WithAdditiveChi2SampleSteps は標本化ステップ数を設定
func WithAdditiveChi2SampleSteps(steps int) AdditiveChi2SamplerOption {
	return func(s *AdditiveChi2Sampler) {
		s.SampleSteps = steps
	}
}

// WithAdditiveChi2SampleInterval は標本化間隔を明示的に設定
func WithAdditiveChi2SampleInterval(interval float64) AdditiveChi2SamplerOption {
	return func(s *AdditiveChi2Sampler) {
		s.SampleInterval = interval
	}
}

// NewAdditiveChi2Sampler は新しいAdditiveChi2Samplerを作成する
//
// デフォルト: sample_steps=2, sample_interval=未設定（Fit時に導出）
//
// 使用例:
//
//	sampler := kernelapprox.NewAdditiveChi2Sampler(
//	    kernelapprox.WithAdditiveChi2SampleSteps(2),
//	)
//	features, err := sampler.FitTransform(X)
func NewAdditiveChi2Sampler(options ...AdditiveChi2SamplerOption) *AdditiveChi2Sampler {
	s := &AdditiveChi2Sampler{
		State:       model.NewStateManager(),
		SampleSteps: 2,
	}

	// Apply options
	for _, opt := range options {
		opt(s)
	}

	return s
}

// Fit は設定を検証し、必要なら標本化間隔を導出する
// マップはデータに依存しないため、Xの内容は使用されない（nilも許容される）
//
// sample_intervalが未設定の場合、sample_steps 1/2/3 に対してそれぞれ
// 0.8/0.5/0.4 の参照定数を使う。それ以外のステップ数では明示的な
// sample_intervalが必須となる（安全なデフォルトが存在しない）
//
// パラメータ:
//   - X: 訓練データ（形状の記録にのみ使用、nil可）
//
// 戻り値:
//   - error: 設定が解決できない場合のValidationError
func (s *AdditiveChi2Sampler) Fit(X mat.Matrix) error {
	if s.SampleSteps < 1 {
		return errors.NewValidationError("sample_steps", "must be a positive integer", s.SampleSteps)
	}

	if s.SampleInterval != 0 {
		if s.SampleInterval < 0 {
			return errors.NewValidationError("sample_interval", "must be positive", s.SampleInterval)
		}
		// 明示的に設定された間隔はそのまま使う（任意の正のsample_stepsを許容）
		s.FittedInterval = s.SampleInterval
	} else {
		switch s.SampleSteps {
		case 1:
			s.FittedInterval = 0.8
		case 2:
			s.FittedInterval = 0.5
		case 3:
			s.FittedInterval = 0.4
		default:
			return errors.NewValidationError("sample_interval",
				"must be set explicitly when sample_steps is not in {1, 2, 3}", s.SampleSteps)
		}
	}

	if X != nil {
		r, c := X.Dims()
		s.State.SetDimensions(c, r)
	}

	s.State.SetFitted()
	return nil
}

// Transform は各特徴量を独立にフーリエ級数標本へ展開する
//
// 設定に明示的な正のsample_intervalがある場合はFitを呼ばずに使用できる
// それ以外では先にFitが必要
//
// 前提条件: Xのすべての要素が厳密に正であること（対数を取るため）。違反がある
// 場合は計算を行わずValueErrorを返す
//
// パラメータ:
//   - X: 変換するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 変換されたデータ (n_samples × n_features·(2·sample_steps−1))
//   - error: 未学習、非正の要素、または非有限値が含まれる場合のエラー
func (s *AdditiveChi2Sampler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "AdditiveChi2Sampler.Transform")

	interval := s.FittedInterval
	if !s.State.IsFitted() {
		// 明示的な標本化間隔が設定で与えられていればFitなしで変換できる
		if s.SampleInterval > 0 && s.SampleSteps >= 1 {
			interval = s.SampleInterval
		} else {
			return nil, errors.NewNotFittedError("AdditiveChi2Sampler", "Transform")
		}
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("AdditiveChi2Sampler.Transform", "empty data", errors.ErrEmptyData)
	}

	if err := errors.CheckMatrix("AdditiveChi2Sampler.Transform", X, r, c); err != nil {
		return nil, err
	}

	// ドメイン前提条件の全走査（計算に入る前に行い、部分的な出力を作らない）
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if X.At(i, j) <= 0 {
				return nil, errors.NewValueError("AdditiveChi2Sampler.Transform",
					"Entries of X must be strictly positive")
			}
		}
	}

	// 各特徴量 x は入力順に width = 2·sample_steps−1 列へ展開される:
	//   零次項 √(x·L)、続いてステップ j ごとに
	//   √(2x·L / cosh(πjL))·cos(jL·ln x) と √(2x·L / cosh(πjL))·sin(jL·ln x)
	steps := s.SampleSteps
	width := 2*steps - 1
	result := mat.NewDense(r, c*width, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				x := X.At(i, j)
				base := j * width

				result.Set(i, base, math.Sqrt(x*interval))

				logX := math.Log(x)
				for k := 1; k < steps; k++ {
					factor := math.Sqrt(2 * x * interval / math.Cosh(math.Pi*float64(k)*interval))
					angle := float64(k) * interval * logX
					result.Set(i, base+2*k-1, factor*math.Cos(angle))
					result.Set(i, base+2*k, factor*math.Sin(angle))
				}
			}
		}
	})

	return result, nil
}

// FitTransform は学習と変換を連続して実行する
func (s *AdditiveChi2Sampler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams はサンプラーのハイパーパラメータを取得する (scikit-learn互換)
func (s *AdditiveChi2Sampler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"sample_steps":    s.SampleSteps,
		"sample_interval": s.SampleInterval,
	}
}

// String はサンプラーの文字列表現を返す
func (s *AdditiveChi2Sampler) String() string {
	if !s.State.IsFitted() {
		return fmt.Sprintf("AdditiveChi2Sampler(sample_steps=%d, sample_interval=%g)",
			s.SampleSteps, s.SampleInterval)
	}
	return fmt.Sprintf("AdditiveChi2Sampler(sample_steps=%d, sample_interval=%g, fitted=true)",
		s.SampleSteps, s.FittedInterval)
}

// Save はサンプラーを学習済み状態ごとgob形式でファイルに保存する
func (s *AdditiveChi2Sampler) Save(path string) error {
	return model.SaveModel(s, path)
}

// Load はSaveで保存されたサンプラーを読み込む
func (s *AdditiveChi2Sampler) Load(path string) error {
	return model.LoadModel(s, path)
}

// SKLearnAdditiveChi2SamplerParams はscikit-learn互換JSONのAdditiveChi2Samplerパラメータ
type SKLearnAdditiveChi2SamplerParams struct {
	SampleSteps    int     `json:"sample_steps"`
	SampleInterval float64 `json:"sample_interval"`
}

// LoadFromSKLearn はscikit-learnからエクスポートされたJSONファイルから
// 学習済みサンプラーを読み込む
func (s *AdditiveChi2Sampler) LoadFromSKLearn(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader はReaderからscikit-learn形式のサンプラーを読み込む
func (s *AdditiveChi2Sampler) LoadFromSKLearnReader(r io.Reader) error {
	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to load sklearn model: %w", err)
	}

	if skModel.ModelSpec.Name != "AdditiveChi2Sampler" {
		return fmt.Errorf("model type mismatch: expected AdditiveChi2Sampler, got %s", skModel.ModelSpec.Name)
	}

	var params SKLearnAdditiveChi2SamplerParams
	if err := json.Unmarshal(skModel.Params, &params); err != nil {
		return fmt.Errorf("failed to unmarshal params: %w", err)
	}

	if params.SampleSteps < 1 {
		return fmt.Errorf("sample_steps must be a positive integer, got %d", params.SampleSteps)
	}
	if params.SampleInterval <= 0 {
		return fmt.Errorf("sample_interval must be positive, got %g", params.SampleInterval)
	}

	s.SampleSteps = params.SampleSteps
	s.FittedInterval = params.SampleInterval

	s.State.SetFitted()
	return nil
}

// ExportToSKLearn は学習済みサンプラーをscikit-learn互換のJSON形式でエクスポートする
func (s *AdditiveChi2Sampler) ExportToSKLearn(filename string) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("AdditiveChi2Sampler", "ExportToSKLearn")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return s.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter は学習済みサンプラーをWriterにscikit-learn互換形式で書き出す
func (s *AdditiveChi2Sampler) ExportToSKLearnWriter(w io.Writer) error {
	if !s.State.IsFitted() {
		return errors.NewNotFittedError("AdditiveChi2Sampler", "ExportToSKLearnWriter")
	}

	params := SKLearnAdditiveChi2SamplerParams{
		SampleSteps:    s.SampleSteps,
		SampleInterval: s.FittedInterval,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	skModel := model.SKLearnModel{
		ModelSpec: model.SKLearnModelSpec{
			Name:          "AdditiveChi2Sampler",
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
