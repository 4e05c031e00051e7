package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"productdesc/internal/domain/entity"
	"productdesc/internal/infrastructure/metrics"
)

// DescriptionValidator checks a sanitized model reply against the output
// schema. Bullet count and keyword content are only requested in the prompt
// and are not enforced here.
type DescriptionValidator struct{}

func NewDescriptionValidator() *DescriptionValidator {
	return &DescriptionValidator{}
}

// Validate runs the schema checks in order and stops at the first failure.
func (v *DescriptionValidator) Validate(obj map[string]any) (entity.GeneratedDescription, error) {
	desc, err := v.validate(obj)
	if err != nil {
		metrics.IncValidationRun("output", "fail")
		return entity.GeneratedDescription{}, err
	}
	metrics.IncValidationRun("output", "pass")
	return desc, nil
}

func (v *DescriptionValidator) validate(obj map[string]any) (entity.GeneratedDescription, error) {
	for _, field := range entity.DescriptionFields {
		if _, ok := obj[field]; !ok {
			return entity.GeneratedDescription{}, fmt.Errorf("missing required field: %s", field)
		}
	}

	bullets, ok := obj[entity.FieldBulletPoints].([]any)
	if !ok {
		return entity.GeneratedDescription{}, fmt.Errorf("%s must be an array", entity.FieldBulletPoints)
	}
	keywords, ok := obj[entity.FieldSEOKeywords].([]any)
	if !ok {
		return entity.GeneratedDescription{}, fmt.Errorf("%s must be an array", entity.FieldSEOKeywords)
	}

	short, err := wordRange(obj, entity.FieldShortDescription, entity.ShortDescriptionMinWords, entity.ShortDescriptionMaxWords)
	if err != nil {
		return entity.GeneratedDescription{}, err
	}
	detailed, err := wordRange(obj, entity.FieldDetailedDescription, entity.DetailedDescriptionMinWords, entity.DetailedDescriptionMaxWords)
	if err != nil {
		return entity.GeneratedDescription{}, err
	}

	bulletTexts, err := stringItems(entity.FieldBulletPoints, bullets)
	if err != nil {
		return entity.GeneratedDescription{}, err
	}
	keywordTexts, err := stringItems(entity.FieldSEOKeywords, keywords)
	if err != nil {
		return entity.GeneratedDescription{}, err
	}
	cta, ok := obj[entity.FieldCallToAction].(string)
	if !ok {
		return entity.GeneratedDescription{}, fmt.Errorf("%s must be a string, got %s", entity.FieldCallToAction, jsonKind(obj[entity.FieldCallToAction]))
	}

	return entity.GeneratedDescription{
		ShortDescription:    short,
		DetailedDescription: detailed,
		BulletPoints:        bulletTexts,
		SEOKeywords:         keywordTexts,
		CallToAction:        cta,
	}, nil
}

func wordRange(obj map[string]any, field string, lo, hi int) (string, error) {
	text, ok := obj[field].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", field)
	}
	n := WordCount(text)
	if n < lo || n > hi {
		return "", fmt.Errorf("%s must be %d-%d words, got %d", field, lo, hi, n)
	}
	return text, nil
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

func stringItems(field string, items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for i, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string, got %s", field, i, jsonKind(item))
		}
		out = append(out, text)
	}
	return out, nil
}

// jsonKind names the JSON type of a decoded value.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
