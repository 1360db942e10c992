package model

import "gonum.org/v1/gonum/mat"

// Transformer は特徴変換のインターフェース
// カーネル近似サンプラーはすべてこのインターフェースを実装する
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform は学習済みのパラメータでデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを連続して実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
