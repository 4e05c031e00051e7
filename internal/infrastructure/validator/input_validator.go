package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"productdesc/internal/domain/entity"
	"productdesc/internal/infrastructure/metrics"
)

var (
	errMissing    = errors.New("missing")
	errNotString  = errors.New("must be a string")
	errBlank      = errors.New("must not be blank")
	errNotArray   = errors.New("must be an array")
	errNotNumber  = errors.New("must be a number")
	errNegative   = errors.New("must not be negative")
	errBadFeature = errors.New("every feature must be a non-blank string")
)

// ProductValidator checks a raw request payload field by field. It never
// rejects the payload as a whole: each field gets its own verdict.
type ProductValidator struct{}

func NewProductValidator() *ProductValidator {
	return &ProductValidator{}
}

func (v *ProductValidator) Validate(payload map[string]json.RawMessage) entity.ProductInput {
	in := entity.NewProductInput(payload)

	in.ProductName = requiredString(payload, entity.FieldProductName)
	in.Category = category(payload)
	in.KeyFeatures = features(payload)
	in.Price = price(payload)
	in.TargetAudience = optionalString(payload, entity.FieldTargetAudience, entity.DefaultTargetAudience)
	in.Tone = optionalString(payload, entity.FieldTone, entity.DefaultTone)

	result := "pass"
	if !in.IsValid() {
		result = "fail"
	}
	metrics.IncValidationRun("input", result)

	return in
}

func requiredString(payload map[string]json.RawMessage, key string) entity.Field[string] {
	raw, ok := payload[key]
	if !ok {
		return entity.Invalid[string](errMissing.Error())
	}
	return nonBlankString(raw)
}

func optionalString(payload map[string]json.RawMessage, key, fallback string) entity.Field[string] {
	raw, ok := payload[key]
	if !ok {
		return entity.Valid(fallback)
	}
	return nonBlankString(raw)
}

func nonBlankString(raw json.RawMessage) entity.Field[string] {
	s, err := decodeString(raw)
	if err != nil {
		return entity.Invalid[string](err.Error())
	}
	if strings.TrimSpace(s) == "" {
		return entity.Invalid[string](errBlank.Error())
	}
	return entity.Valid(s)
}

func category(payload map[string]json.RawMessage) entity.Field[string] {
	f := requiredString(payload, entity.FieldCategory)
	value, ok := f.Get()
	if !ok {
		return f
	}
	if !entity.IsKnownCategory(value) {
		return entity.Invalid[string](fmt.Sprintf("unknown category %q", value))
	}
	return entity.Valid(strings.TrimSpace(value))
}

func features(payload map[string]json.RawMessage) entity.Field[[]string] {
	raw, ok := payload[entity.FieldKeyFeatures]
	if !ok {
		return entity.Invalid[[]string](errMissing.Error())
	}
	if isNull(raw) {
		return entity.Invalid[[]string](errNotArray.Error())
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return entity.Invalid[[]string](errNotArray.Error())
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := decodeString(item)
		if err != nil || strings.TrimSpace(s) == "" {
			return entity.Invalid[[]string](errBadFeature.Error())
		}
		out = append(out, s)
	}
	return entity.Valid(out)
}

func price(payload map[string]json.RawMessage) entity.Field[float64] {
	raw, ok := payload[entity.FieldPrice]
	if !ok {
		return entity.Invalid[float64](errMissing.Error())
	}
	if isNull(raw) {
		return entity.Invalid[float64](errNotNumber.Error())
	}
	var p float64
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.Invalid[float64](errNotNumber.Error())
	}
	if p < 0 {
		return entity.Invalid[float64](errNegative.Error())
	}
	return entity.Valid(p)
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errNotString
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errNotString
	}
	return s, nil
}

// null decodes into any Go value without error, so it is checked explicitly.
func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
