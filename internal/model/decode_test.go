package model

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestDecodeUniform(t *testing.T) {
	d, err := Decode(make([]float32, NumClasses))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if d.Digit != 0 {
		t.Errorf("Digit = %d, want 0 on ties", d.Digit)
	}
	if math.Abs(d.Confidence-10) > 1e-9 {
		t.Errorf("Confidence = %v, want 10", d.Confidence)
	}
	for i, p := range d.Probs {
		if p != 0.1 {
			t.Errorf("Probs[%d] = %v, want 0.1", i, p)
		}
	}
}

func TestDecodeDominant(t *testing.T) {
	logits := make([]float32, NumClasses)
	logits[9] = 20

	d, err := Decode(logits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Digit != 9 {
		t.Errorf("Digit = %d, want 9", d.Digit)
	}
	if d.Confidence < 99.99 || d.Confidence > 100 {
		t.Errorf("Confidence = %v, want close to 100", d.Confidence)
	}
}

func TestDecodeKeepsClassOrder(t *testing.T) {
	logits := []float32{3, 1, 2, 0, 0, 0, 0, 0, 0, 5}

	d, err := Decode(logits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Digit != 9 {
		t.Errorf("Digit = %d, want 9", d.Digit)
	}
	if !(d.Probs[0] > d.Probs[2] && d.Probs[2] > d.Probs[1] && d.Probs[1] > d.Probs[3]) {
		t.Errorf("Probs not in class order: %v", d.Probs)
	}
}

func TestDecodeSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		logits := make([]float32, NumClasses)
		for i := range logits {
			logits[i] = float32(rng.NormFloat64() * 50)
		}

		d, err := Decode(logits)
		if err != nil {
			t.Fatalf("Decode(%v) failed: %v", logits, err)
		}
		sum := 0.0
		for _, p := range d.Probs {
			sum += p
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("Probs of %v sum to %v", logits, sum)
		}
	}
}

func TestDecodeLargeLogits(t *testing.T) {
	logits := []float32{1e30, 1e30, 0, 0, 0, 0, 0, 0, 0, -1e30}

	d, err := Decode(logits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Digit != 0 || math.Abs(d.Confidence-50) > 1e-9 {
		t.Errorf("Decision = %+v, want digit 0 at 50%%", d)
	}
}

func TestDecodeDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		logits []float32
	}{
		{"nan", []float32{float32(math.NaN()), 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"all -inf", fill(float32(math.Inf(-1)))},
		{"all +inf", fill(float32(math.Inf(1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(tt.logits)
			if !errors.Is(err, ErrDegenerateSoftmax) {
				t.Errorf("err = %v, want ErrDegenerateSoftmax", err)
			}
			if d.Digit != NoDigit {
				t.Errorf("Digit = %d, want NoDigit", d.Digit)
			}
		})
	}
}

func TestDecodeWrongLength(t *testing.T) {
	_, err := Decode([]float32{1, 2, 3})

	if !errors.Is(err, ErrInvalidOutputShape) {
		t.Fatalf("err = %v, want ErrInvalidOutputShape", err)
	}
	var se *ShapeError
	if !errors.As(err, &se) || se.Expected != NumClasses || se.Actual != 3 {
		t.Errorf("ShapeError = %+v, want expected %d actual 3", se, NumClasses)
	}
}

func fill(v float32) []float32 {
	out := make([]float32, NumClasses)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestDecodeDividesBySum(t *testing.T) {
	logits := []float32{0.3, -1.7, 2.9, 0.01, 4.4, -3, 1.1, 0.7, 2.2, -0.4}

	d, err := Decode(logits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	exps := make([]float64, len(logits))
	for i, v := range logits {
		exps[i] = math.Exp(float64(v) - float64(logits[4]))
	}
	sum := floats.Sum(exps)
	for i := range exps {
		if want := exps[i] / sum; d.Probs[i] != want {
			t.Errorf("Probs[%d] = %v, want %v", i, d.Probs[i], want)
		}
	}
}
