package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"productdesc/app/usecase"
	"productdesc/internal/domain/entity"
	"productdesc/internal/infrastructure/metrics"
)

const maxBodyBytes = 1 << 20

var errNoData = errors.New("no JSON data provided")

type DescriptionHandler struct {
	descriptions usecase.DescriptionUsecase
	evaluations  usecase.EvaluationUsecase
	configured   bool
	logger       zerolog.Logger
	now          func() time.Time
}

func NewDescriptionHandler(
	descriptions usecase.DescriptionUsecase,
	evaluations usecase.EvaluationUsecase,
	configured bool,
	logger zerolog.Logger,
) *DescriptionHandler {
	return &DescriptionHandler{
		descriptions: descriptions,
		evaluations:  evaluations,
		configured:   configured,
		logger:       logger,
		now:          time.Now,
	}
}

// withMetrics records request count, latency and errors per route template.
func (h *DescriptionHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		metrics.ObserveHTTPRequest(r.Method, path, rw.status, time.Since(start))
	}
}

func (h *DescriptionHandler) RegisterRoutes(r *mux.Router) {
	r.Use(RequestID, RequestLogger(h.logger), Recover)

	r.HandleFunc("/generate-description", h.withMetrics(h.handleGenerate)).Methods(http.MethodPost)
	r.HandleFunc("/validate-input", h.withMetrics(h.handleValidate)).Methods(http.MethodPost)
	r.HandleFunc("/evaluate", h.withMetrics(h.handleEvaluate)).Methods(http.MethodPost)
	r.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	// Prometheus
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// readPayload decodes the body as a JSON object. Empty bodies, null and {}
// all count as missing data.
func readPayload(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errNoData
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errNoData
	}
	return payload, nil
}

func writePayloadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoData) {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
}

// POST /generate-description
func (h *DescriptionHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		writePayloadError(w, err)
		return
	}

	desc, err := h.descriptions.GenerateDescription(r.Context(), payload)
	if err != nil {
		h.writeGenerateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

func (h *DescriptionHandler) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid *usecase.InvalidInputError
		genErr  *usecase.GenerationError
		format  *usecase.OutputFormatError
	)
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, invalid.Input.Render(entity.InvalidMarker))
	case errors.As(err, &genErr):
		writeError(w, http.StatusInternalServerError, genErr.Error())
	case errors.As(err, &format):
		writeError(w, http.StatusInternalServerError, "Invalid output format: "+format.Reason.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("generate description failed")
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

type validateResponse struct {
	InputValidation map[string]interface{} `json:"input_validation"`
	IsValid         bool                   `json:"is_valid"`
	Message         string                 `json:"message"`
}

// POST /validate-input
func (h *DescriptionHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		writePayloadError(w, err)
		return
	}

	in := h.descriptions.ValidateInput(r.Context(), payload)
	resp := validateResponse{
		InputValidation: in.Render(entity.InvalidMarker),
		IsValid:         in.IsValid(),
		Message:         "All required fields are valid",
	}
	status := http.StatusOK
	if !resp.IsValid {
		resp.Message = "Some required fields contain invalid input"
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

// POST /evaluate
func (h *DescriptionHandler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil && !errors.Is(err, errNoData) {
		writePayloadError(w, err)
		return
	}
	rawInput, hasInput := payload["input_data"]
	rawOutput, hasOutput := payload["generated_output"]
	if !hasInput || !hasOutput {
		writeError(w, http.StatusBadRequest, "Missing input_data or generated_output")
		return
	}

	var input entity.EvaluationInput
	if err := json.Unmarshal(rawInput, &input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Evaluation failed: input_data: %v", err))
		return
	}
	var output entity.GeneratedDescription
	if err := json.Unmarshal(rawOutput, &output); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Evaluation failed: generated_output: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, h.evaluations.Evaluate(r.Context(), input, output))
}

// GET /health
func (h *DescriptionHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	gen := h.descriptions.Generator()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"timestamp":         float64(h.now().UnixNano()) / float64(time.Second),
		"gemini_configured": h.configured,
		"provider":          gen.Provider(),
		"model":             gen.Model(),
	})
}
