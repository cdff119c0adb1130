package model

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// InputLen is the flattened (1, 1, 28, 28) input size.
	InputLen = 784
	// NumClasses is the number of digit classes.
	NumClasses = 10
	// NoDigit is the digit of a Decision that was never made.
	NoDigit = -1
)

type Metadata struct {
	InputName   string   `json:"input_name"`
	OutputName  string   `json:"output_name"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
}

// DefaultMetadata describes the stock MNIST export.
func DefaultMetadata() Metadata {
	classes := make([]string, NumClasses)
	for i := range classes {
		classes[i] = fmt.Sprint(i)
	}
	return Metadata{
		InputName:   "input",
		OutputName:  "output",
		InputShape:  []int64{1, 1, 28, 28},
		OutputShape: []int64{1, NumClasses},
		Classes:     classes,
	}
}

// LoadMetadata reads a metadata file over the defaults. An empty path
// returns the defaults.
func LoadMetadata(path string) (Metadata, error) {
	meta := DefaultMetadata()
	if path == "" {
		return meta, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// Validate checks the shapes against the digit classifier contract.
func (m Metadata) Validate() error {
	if err := checkLen(ErrInvalidInputShape, InputLen, shapeLen(m.InputShape)); err != nil {
		return err
	}
	if err := checkLen(ErrInvalidOutputShape, NumClasses, shapeLen(m.OutputShape)); err != nil {
		return err
	}
	if len(m.Classes) != NumClasses {
		return fmt.Errorf("expected %d classes, got %d", NumClasses, len(m.Classes))
	}
	return nil
}

func shapeLen(shape []int64) int {
	if len(shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return int(n)
}

type PredictionRequest struct {
	Image []float32 `json:"image"`
}

// Decision is the outcome of one prediction. Probs keeps class order 0-9.
type Decision struct {
	Digit      int       `json:"digit"`
	Confidence float64   `json:"confidence"`
	Probs      []float64 `json:"probs"`
}
