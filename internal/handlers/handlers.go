package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/Brownie44l1/digit-api/internal/model"
	"github.com/Brownie44l1/digit-api/internal/preprocess"
)

// Predictor runs a prepared tensor through the classifier.
type Predictor interface {
	Predict(input []float32) (model.Decision, error)
	Loaded() bool
}

type Handler struct {
	predictor      Predictor
	pipeline       *preprocess.Pipeline
	maxUploadBytes int64
	debug          bool
}

func NewHandler(predictor Predictor, pipeline *preprocess.Pipeline, maxUploadBytes int64, debug bool) *Handler {
	return &Handler{
		predictor:      predictor,
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
		debug:          debug,
	}
}

// ImageResponse is a decision for an uploaded drawing.
type ImageResponse struct {
	model.Decision
	Empty   bool      `json:"empty"`
	Preview []float32 `json:"preview,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":       "healthy",
		"model_loaded": h.predictor.Loaded(),
	})
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req model.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if len(req.Image) != model.InputLen {
		http.Error(w, fmt.Sprintf("Expected %d values, got %d", model.InputLen, len(req.Image)),
			http.StatusBadRequest)
		return
	}

	result, err := h.predictor.Predict(req.Image)
	if err != nil {
		h.predictionError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *Handler) PredictFromImage(w http.ResponseWriter, r *http.Request) {
	img, ok := h.readImage(w, r)
	if !ok {
		return
	}

	res := h.pipeline.Process(img)
	h.logResult(res)

	result, err := h.predictor.Predict(res.Tensor)
	if err != nil {
		h.predictionError(w, err)
		return
	}

	resp := ImageResponse{Decision: result, Empty: res.Empty()}
	if r.URL.Query().Get("debug") == "true" {
		resp.Preview = preprocess.Preview(res.Tensor)
	}
	writeJSON(w, resp)
}

// Preprocess returns the model input of an uploaded drawing as a PNG.
func (h *Handler) Preprocess(w http.ResponseWriter, r *http.Request) {
	img, ok := h.readImage(w, r)
	if !ok {
		return
	}

	res := h.pipeline.Process(img)
	h.logResult(res)

	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, preprocess.Visualize(res.Tensor), imaging.PNG); err != nil {
		log.Printf("Failed to encode preview: %v", err)
	}
}

// readImage decodes the "image" form field into a straight-alpha raster.
// It writes the error response itself and reports false on failure.
func (h *Handler) readImage(w http.ResponseWriter, r *http.Request) (*image.NRGBA, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No image file provided. Use 'image' as the form field name", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	log.Printf("Received file: %s, size: %d bytes", header.Filename, header.Size)

	img, format, err := image.Decode(file)
	if err != nil {
		http.Error(w, "Invalid image format. Supported: PNG, JPEG, WebP", http.StatusBadRequest)
		return nil, false
	}
	if img.Bounds().Empty() {
		http.Error(w, "Image has no pixels", http.StatusBadRequest)
		return nil, false
	}

	log.Printf("Image format: %s, dimensions: %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())

	return imaging.Clone(img), true
}

func (h *Handler) logResult(res preprocess.Result) {
	if !h.debug {
		return
	}
	if res.Empty() {
		log.Printf("Empty canvas, using blank tensor")
		return
	}
	log.Printf("Content bounds: (%d,%d)-(%d,%d), crop side: %d, non-zero cells: %d",
		res.Bounds.MinX, res.Bounds.MinY, res.Bounds.MaxX, res.Bounds.MaxY,
		res.CropSide, preprocess.NonZero(preprocess.Preview(res.Tensor)))
}

func (h *Handler) predictionError(w http.ResponseWriter, err error) {
	log.Printf("Prediction error: %v", err)

	switch {
	case errors.Is(err, model.ErrInvalidInputShape):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrNotLoaded):
		http.Error(w, "Model not loaded", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Prediction failed", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
