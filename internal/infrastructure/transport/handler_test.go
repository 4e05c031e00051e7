package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productdesc/app/usecase"
	"productdesc/internal/domain/entity"
	"productdesc/internal/domain/repository"
	"productdesc/internal/infrastructure/validator"
)

type stubGenerator struct{}

func (stubGenerator) GenerateText(context.Context, string) (string, error) { return "", nil }
func (stubGenerator) Provider() string                                     { return "gemini" }
func (stubGenerator) Model() string                                        { return "gemini-1.5-flash" }

type stubDescriptions struct {
	desc  entity.GeneratedDescription
	err   error
	panic bool
}

func (s *stubDescriptions) ValidateInput(_ context.Context, payload map[string]json.RawMessage) entity.ProductInput {
	return validator.NewProductValidator().Validate(payload)
}

func (s *stubDescriptions) GenerateDescription(ctx context.Context, payload map[string]json.RawMessage) (entity.GeneratedDescription, error) {
	if s.panic {
		panic("kaboom")
	}
	in := s.ValidateInput(ctx, payload)
	if !in.IsValid() {
		return entity.GeneratedDescription{}, &usecase.InvalidInputError{Input: in}
	}
	return s.desc, s.err
}

func (s *stubDescriptions) Generator() repository.TextGenerator { return stubGenerator{} }

func newRouter(descriptions usecase.DescriptionUsecase) *mux.Router {
	h := NewDescriptionHandler(descriptions, usecase.NewEvaluationService(), true, zerolog.Nop())
	h.now = func() time.Time { return time.Unix(1700000000, 500_000_000) }
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const validBody = `{"product_name":"Yoga Mat","category":"Sports","key_features":["non-slip"],"price":1299}`

func TestGenerateDescriptionOK(t *testing.T) {
	r := newRouter(&stubDescriptions{desc: entity.GeneratedDescription{
		ShortDescription:    "short",
		DetailedDescription: "long",
		BulletPoints:        []string{"a"},
		SEOKeywords:         []string{"k"},
		CallToAction:        "Buy now",
	}})

	rec := do(t, r, http.MethodPost, "/generate-description", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	body := rec.Body.String()
	keys := []string{`"short_description"`, `"detailed_description"`, `"bullet_points"`, `"seo_keywords"`, `"call_to_action"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(body, k)
		require.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
}

func TestGenerateDescriptionBadRequests(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "No JSON data provided"},
		{"empty object", "{}", "No JSON data provided"},
		{"null", "null", "No JSON data provided"},
		{"malformed", `{"product_name":`, "Invalid JSON format: "},
		{"array", `[1,2]`, "Invalid JSON format: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/generate-description", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["error"], tt.want)
		})
	}
}

func TestGenerateDescriptionInvalidInputEchoesMarkers(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	rec := do(t, r, http.MethodPost, "/generate-description",
		`{"product_name":"Yoga Mat","category":"Sports","key_features":"non-slip","extra":42}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Yoga Mat", body["product_name"])
	assert.Equal(t, entity.InvalidMarker, body["key_features"])
	assert.Equal(t, entity.InvalidMarker, body["price"])
	assert.Equal(t, float64(42), body["extra"])
	assert.Equal(t, "general", body["target_audience"])
}

func TestGenerateDescriptionServerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "generation",
			err:  &usecase.GenerationError{Attempts: 3, Err: errors.New("quota exceeded")},
			want: "AI generation failed after 3 attempts: quota exceeded",
		},
		{
			name: "output format",
			err:  &usecase.OutputFormatError{Reason: errors.New("missing required field: seo_keywords")},
			want: "Invalid output format: missing required field: seo_keywords",
		},
		{
			name: "other",
			err:  errors.New("disk on fire"),
			want: "Internal server error: disk on fire",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&stubDescriptions{err: tt.err})
			rec := do(t, r, http.MethodPost, "/generate-description", validBody)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
		})
	}
}

func TestPanicBecomesJSON500(t *testing.T) {
	r := newRouter(&stubDescriptions{panic: true})

	rec := do(t, r, http.MethodPost, "/generate-description", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error: kaboom", decode(t, rec)["error"])
}

func TestValidateInput(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	rec := do(t, r, http.MethodPost, "/validate-input", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["is_valid"])
	assert.Equal(t, "All required fields are valid", body["message"])

	rec = do(t, r, http.MethodPost, "/validate-input", `{"product_name":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["is_valid"])
	assert.Equal(t, "Some required fields contain invalid input", body["message"])
	validated := body["input_validation"].(map[string]any)
	assert.Equal(t, entity.InvalidMarker, validated["product_name"])
}

func TestEvaluate(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	rec := do(t, r, http.MethodPost, "/evaluate", `{"input_data":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing input_data or generated_output", decode(t, rec)["error"])

	rec = do(t, r, http.MethodPost, "/evaluate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/evaluate",
		`{"input_data":{"key_features":[]},"generated_output":{"call_to_action":"Shop the collection now"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(15), body["total_score"])
	assert.Len(t, body["breakdown"], 5)
	assert.Len(t, body["issues"], 3)
}

func TestHealth(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	rec := do(t, r, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.InDelta(t, 1700000000.5, body["timestamp"], 0.001)
	assert.Equal(t, true, body["gemini_configured"])
	assert.Equal(t, "gemini", body["provider"])
	assert.Equal(t, "gemini-1.5-flash", body["model"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter(&stubDescriptions{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestUnknownRoutesAreJSON(t *testing.T) {
	r := newRouter(&stubDescriptions{})

	rec := do(t, r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode(t, rec)["error"])

	rec = do(t, r, http.MethodGet, "/generate-description", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decode(t, rec)["error"])
}
