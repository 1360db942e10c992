package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// SaveModelToWriter はサンプラーをgob形式でio.Writerに書き込む
//
// パラメータ:
//   - model: 保存するサンプラー（StateManagerを保持する構造体）
//   - w: 書き込み先のWriter
//
// 戻り値:
//   - error: エンコードに失敗した場合のエラー
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// LoadModelFromReader はio.Readerからgob形式のサンプラーを読み込む
// modelにはコンストラクタで生成した構造体のポインタを渡す
//
// パラメータ:
//   - model: 読み込み先のサンプラー（ポインタ）
//   - r: 読み込み元のReader
//
// 戻り値:
//   - error: デコードに失敗した場合のエラー
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}

// SaveModel は学習済みサンプラーをファイルに保存する
// 書き込みとクローズのどちらが失敗してもエラーを返す
//
// 使用例:
//
//	sampler := kernelapprox.NewRBFSampler()
//	// ... サンプラーの学習 ...
//	err := model.SaveModel(sampler, "sampler.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := SaveModelToWriter(model, file); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// LoadModel はファイルからサンプラーを読み込む
//
// 使用例:
//
//	sampler := kernelapprox.NewRBFSampler()
//	err := model.LoadModel(sampler, "sampler.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}
