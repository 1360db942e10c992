package model

import (
	"encoding/json"
	"fmt"
	"io"
)

// SKLearnModelSpec はエクスポートされたscikit-learnモデルの識別情報
type SKLearnModelSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// SKLearnModel はscikit-learn相互運用のためのJSONエンベロープ
// Paramsは各エスティメータが自身のスキーマでデコードできるよう未解釈のまま保持する
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// LoadSKLearnModelFromReader はReaderからscikit-learn形式のJSONモデルを読み込む
//
// パラメータ:
//   - r: JSONデータを含むReader
//
// 戻り値:
//   - *SKLearnModel: 読み込まれたエンベロープ
//   - error: デコードに失敗した場合のエラー
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var skModel SKLearnModel
	if err := json.NewDecoder(r).Decode(&skModel); err != nil {
		return nil, fmt.Errorf("failed to decode sklearn model: %w", err)
	}

	if skModel.ModelSpec.Name == "" {
		return nil, fmt.Errorf("sklearn model is missing model_spec.name")
	}

	return &skModel, nil
}
