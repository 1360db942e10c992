package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "RBFSampler.Fit",
			kind:     "empty data",
			err:      ErrEmptyData,
			wantMsg:  "kernelapprox: RBFSampler.Fit: empty data: empty data",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "SkewedChi2Sampler.Fit",
			kind:     "invalid input",
			err:      nil,
			wantMsg:  "kernelapprox: SkewedChi2Sampler.Fit: invalid input",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("RBFSampler.Transform", 3, 5, 1)

	// 基本的なエラーメッセージの確認
	want := "kernelapprox: RBFSampler.Transform: dimension mismatch on axis 1 (features). Expected 3, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}

	if dimErr.Expected != 3 || dimErr.Got != 5 || dimErr.Axis != 1 {
		t.Errorf("DimensionError fields = (%d, %d, %d), want (3, 5, 1)",
			dimErr.Expected, dimErr.Got, dimErr.Axis)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("RBFSampler", "Transform")

	// 基本的なエラーメッセージの確認
	want := "kernelapprox: RBFSampler: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		reason  string
		value   interface{}
		wantMsg string
	}{
		{
			name:    "non-positive components",
			param:   "n_components",
			reason:  "must be a positive integer",
			value:   0,
			wantMsg: "kernelapprox: validation failed for parameter 'n_components': must be a positive integer (got: 0)",
		},
		{
			name:    "underivable interval",
			param:   "sample_interval",
			reason:  "no default interval for sample_steps outside [1, 3]",
			value:   nil,
			wantMsg: "kernelapprox: validation failed for parameter 'sample_interval': no default interval for sample_steps outside [1, 3] (got: <nil>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.param, tt.reason, tt.value)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// ValidationError型にキャスト可能か確認
			var valErr *ValidationError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValidationError")
			}
		})
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		message string
		wantMsg string
	}{
		{
			name:    "negative entries",
			op:      "SkewedChi2Sampler.Transform",
			message: "X may not contain negative entries",
			wantMsg: "kernelapprox: SkewedChi2Sampler.Transform: X may not contain negative entries",
		},
		{
			name:    "non-positive entries",
			op:      "AdditiveChi2Sampler.Transform",
			message: "entries of X must be strictly positive",
			wantMsg: "kernelapprox: AdditiveChi2Sampler.Transform: entries of X must be strictly positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValueError(tt.op, tt.message)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// ValueError型にキャスト可能か確認
			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
		})
	}
}

func TestNewNumericalInstabilityError(t *testing.T) {
	err := NewNumericalInstabilityError("RBFSampler.Fit", []float64{math.NaN(), math.Inf(1)})

	msg := err.Error()
	if !strings.Contains(msg, "RBFSampler.Fit") {
		t.Errorf("Error message should contain the operation name: %s", msg)
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Error("Error should be castable to *NumericalInstabilityError")
	}

	if len(numErr.Values) != 2 {
		t.Errorf("Expected 2 recorded values, got %d", len(numErr.Values))
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// ラップ
	wrapped := Wrap(baseErr, "in RBFSampler.Fit")

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in RBFSampler.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: expected %d features, got %d", "Transform", 3, 5)

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	expectedMsg := "in Transform: expected 3 features, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
