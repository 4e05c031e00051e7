package entity

import (
	"encoding/json"
	"strings"
)

// InvalidMarker replaces the value of every field that failed validation
// when a validated payload is rendered back to the caller.
const InvalidMarker = "Invalid input"

const (
	FieldProductName    = "product_name"
	FieldCategory       = "category"
	FieldKeyFeatures    = "key_features"
	FieldPrice          = "price"
	FieldTargetAudience = "target_audience"
	FieldTone           = "tone"
)

const (
	DefaultTargetAudience = "general"
	DefaultTone           = "professional"
)

// Categories lists the accepted product categories in their canonical form.
var Categories = []string{
	"Electronics",
	"Wearables",
	"Smartphone",
	"Clothing",
	"Home",
	"Beauty",
	"Sports",
}

// NormalizeCategory upper-cases the first letter and lower-cases the rest,
// so "sPORTS" becomes "Sports".
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	lower := []rune(strings.ToLower(category))
	return strings.ToUpper(string(lower[0])) + string(lower[1:])
}

func IsKnownCategory(category string) bool {
	normalized := NormalizeCategory(category)
	for _, c := range Categories {
		if c == normalized {
			return true
		}
	}
	return false
}

// ProductRequest is a fully validated product payload, ready for prompting.
type ProductRequest struct {
	ProductName    string   `json:"product_name"`
	Category       string   `json:"category"`
	KeyFeatures    []string `json:"key_features"`
	Price          float64  `json:"price"`
	TargetAudience string   `json:"target_audience"`
	Tone           string   `json:"tone"`
}

// ProductInput is the outcome of validating an arbitrary request payload.
// Every known field carries its own verdict; unknown keys are kept verbatim.
type ProductInput struct {
	ProductName    Field[string]
	Category       Field[string]
	KeyFeatures    Field[[]string]
	Price          Field[float64]
	TargetAudience Field[string]
	Tone           Field[string]

	raw map[string]json.RawMessage
}

func NewProductInput(raw map[string]json.RawMessage) ProductInput {
	copied := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		copied[k] = v
	}
	return ProductInput{raw: copied}
}

// IsValid reports whether all required fields passed. Optional fields never
// make the input invalid.
func (p ProductInput) IsValid() bool {
	return p.ProductName.IsValid() &&
		p.Category.IsValid() &&
		p.KeyFeatures.IsValid() &&
		p.Price.IsValid()
}

// InvalidFields returns the names of the fields that failed validation.
func (p ProductInput) InvalidFields() []string {
	var out []string
	for _, f := range p.verdicts() {
		if !f.valid {
			out = append(out, f.name)
		}
	}
	return out
}

// Request converts a valid input into a ProductRequest. Optional fields that
// were present but invalid fall back to their defaults.
func (p ProductInput) Request() (ProductRequest, bool) {
	if !p.IsValid() {
		return ProductRequest{}, false
	}
	name, _ := p.ProductName.Get()
	category, _ := p.Category.Get()
	features, _ := p.KeyFeatures.Get()
	price, _ := p.Price.Get()
	return ProductRequest{
		ProductName:    name,
		Category:       category,
		KeyFeatures:    features,
		Price:          price,
		TargetAudience: p.TargetAudience.Or(DefaultTargetAudience),
		Tone:           p.Tone.Or(DefaultTone),
	}, true
}

// Render returns the payload as the caller sent it, with invalid fields
// replaced by marker and absent optional fields filled with their defaults.
func (p ProductInput) Render(marker string) map[string]any {
	out := make(map[string]any, len(p.raw)+2)
	for k, v := range p.raw {
		out[k] = v
	}
	for _, f := range p.verdicts() {
		switch {
		case !f.valid:
			out[f.name] = marker
		case !p.has(f.name):
			out[f.name] = f.value
		}
	}
	return out
}

func (p ProductInput) has(key string) bool {
	_, ok := p.raw[key]
	return ok
}

type verdict struct {
	name  string
	valid bool
	value any
}

func (p ProductInput) verdicts() []verdict {
	v := func(name string, valid bool, value any) verdict {
		return verdict{name: name, valid: valid, value: value}
	}
	name, nameOK := p.ProductName.Get()
	category, categoryOK := p.Category.Get()
	features, featuresOK := p.KeyFeatures.Get()
	price, priceOK := p.Price.Get()
	audience, audienceOK := p.TargetAudience.Get()
	tone, toneOK := p.Tone.Get()
	return []verdict{
		v(FieldProductName, nameOK, name),
		v(FieldCategory, categoryOK, category),
		v(FieldKeyFeatures, featuresOK, features),
		v(FieldPrice, priceOK, price),
		v(FieldTargetAudience, audienceOK, audience),
		v(FieldTone, toneOK, tone),
	}
}
