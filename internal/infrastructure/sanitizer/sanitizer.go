// Package sanitizer turns free-form model replies into JSON objects.
package sanitizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"productdesc/internal/infrastructure/metrics"
)

// ErrUnparseable is returned when neither the direct nor the repaired pass
// yields a JSON object.
var ErrUnparseable = errors.New("could not parse JSON response")

var (
	objectPattern        = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseObject extracts a JSON object from raw model output.
//
// The first pass strips a surrounding code fence and keeps everything from the
// first '{' to the last '}'. If that does not decode, trailing commas before
// '}' or ']' are removed and decoding is tried once more.
func ParseObject(raw string) (map[string]any, error) {
	text := stripFence(raw)
	if m := objectPattern.FindString(text); m != "" {
		text = m
	}

	obj, err := decodeObject(text)
	if err == nil {
		metrics.IncSanitizeResult("direct")
		return obj, nil
	}

	repaired := trailingCommaPattern.ReplaceAllString(strings.TrimSpace(text), "$1")
	obj, err = decodeObject(repaired)
	if err != nil {
		metrics.IncSanitizeResult("failed")
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	metrics.IncSanitizeResult("repaired")
	return obj, nil
}

// stripFence removes a ``` or ```lang opening marker and the closing ```.
// Text that does not start with a fence is returned unchanged.
func stripFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	body := strings.TrimPrefix(trimmed, "```")
	body = strings.TrimLeftFunc(body, isFenceTagRune)
	body = strings.TrimSpace(body)
	return strings.TrimSuffix(body, "```")
}

func isFenceTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '+' || r == '_'
}

func decodeObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not a JSON object")
	}
	return obj, nil
}
