package kernelapprox

import (
	"math"
	"math/rand/v2"

	"github.com/forkloop/kernelapprox/core/parallel"
	"github.com/forkloop/kernelapprox/pkg/errors"
	"github.com/forkloop/kernelapprox/randstate"
	"gonum.org/v1/gonum/mat"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

var (
	errNoWeightRows     = errors.New("random_weights must have at least one row and one column")
	errRaggedWeightRows = errors.New("random_weights rows must all have the same length")
)

// newSamplerState は乱数ソースまたはシードからrandstate.Stateを作成する
// 明示的なソースが指定されている場合はシードより優先される
func newSamplerState(src rand.Source, seed int64) *randstate.State {
	if src != nil {
		return randstate.FromSource(src)
	}
	return randstate.New(seed)
}

// cosineFeatures は2つのモンテカルロ法マップが共有する出力規約
// √(2/n_components)·cos(projection + offset) を適用する
// オフセットは行方向にブロードキャストされる
func cosineFeatures(projection *mat.Dense, offset []float64) *mat.Dense {
	r, c := projection.Dims()
	scale := math.Sqrt(2.0 / float64(c))

	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, j, scale*math.Cos(projection.At(i, j)+offset[j]))
			}
		}
	})

	return result
}

// denseToRows は行列を行スライスに変換する（JSONエクスポート用）
func denseToRows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// rowsToDense は行スライスを行列に変換する（JSONインポート用）
func rowsToDense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errNoWeightRows
	}

	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, errRaggedWeightRows
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), c, data), nil
}
