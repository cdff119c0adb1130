package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Options configure a Server.
type Options struct {
	ModelPath string
	// SharedLibraryPath points at the onnxruntime library. Empty uses the
	// runtime's platform default.
	SharedLibraryPath string
	Metadata          Metadata
}

// Server owns an ONNX Runtime session for the digit classifier. Calls are
// serialized because the session is bound to a single pair of tensors.
type Server struct {
	Metadata Metadata

	opts         Options
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewServer returns an unloaded server.
func NewServer(opts Options) *Server {
	return &Server{Metadata: opts.Metadata, opts: opts}
}

// Load initializes the runtime and creates the session. Calling Load on a
// loaded server is a no-op.
func (s *Server) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil
	}
	if err := s.Metadata.Validate(); err != nil {
		return err
	}

	if !ort.IsInitialized() {
		if s.opts.SharedLibraryPath != "" {
			ort.SetSharedLibraryPath(s.opts.SharedLibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(s.Metadata.InputShape...))
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(s.Metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(s.opts.ModelPath,
		[]string{s.Metadata.InputName}, []string{s.Metadata.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("failed to create ONNX session: %w", err)
	}

	s.session = session
	s.inputTensor = inputTensor
	s.outputTensor = outputTensor
	return nil
}

// Loaded reports whether a session is ready.
func (s *Server) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// RunInference feeds a 784-value tensor through the model and returns a
// copy of the 10 raw logits.
func (s *Server) RunInference(input []float32) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNotLoaded
	}
	if err := checkLen(ErrInvalidInputShape, InputLen, len(input)); err != nil {
		return nil, err
	}

	copy(s.inputTensor.GetData(), input)
	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := s.outputTensor.GetData()
	if err := checkLen(ErrInvalidOutputShape, NumClasses, len(out)); err != nil {
		return nil, err
	}
	logits := make([]float32, len(out))
	copy(logits, out)
	return logits, nil
}

// Predict runs inference and decodes the logits.
func (s *Server) Predict(input []float32) (Decision, error) {
	logits, err := s.RunInference(input)
	if err != nil {
		return Decision{Digit: NoDigit}, err
	}
	return Decode(logits)
}

// Unload releases the session and the runtime environment. It is safe to
// call more than once.
func (s *Server) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.inputTensor.Destroy()
	s.outputTensor.Destroy()
	s.session.Destroy()
	s.session, s.inputTensor, s.outputTensor = nil, nil, nil
	ort.DestroyEnvironment()
}
