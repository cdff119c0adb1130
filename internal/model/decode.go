package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Decode turns raw logits into a Decision using a max-shifted softmax. The
// first class wins exact ties.
func Decode(logits []float32) (Decision, error) {
	if err := checkLen(ErrInvalidOutputShape, NumClasses, len(logits)); err != nil {
		return Decision{Digit: NoDigit}, err
	}

	probs := make([]float64, len(logits))
	for i, v := range logits {
		probs[i] = float64(v)
	}

	floats.AddConst(-floats.Max(probs), probs)
	for i, v := range probs {
		probs[i] = math.Exp(v)
	}

	sum := floats.Sum(probs)
	if sum == 0 || math.IsNaN(sum) {
		return Decision{Digit: NoDigit}, ErrDegenerateSoftmax
	}
	for i := range probs {
		probs[i] /= sum
	}

	digit := floats.MaxIdx(probs)
	return Decision{
		Digit:      digit,
		Confidence: probs[digit] * 100,
		Probs:      probs,
	}, nil
}
