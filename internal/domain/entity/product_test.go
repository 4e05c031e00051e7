package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Sports", NormalizeCategory("  sPORTS "))
	assert.Equal(t, "Home", NormalizeCategory("home"))
	assert.Equal(t, "", NormalizeCategory("   "))

	assert.True(t, IsKnownCategory("smartphone"))
	assert.True(t, IsKnownCategory(" WEARABLES"))
	assert.False(t, IsKnownCategory("Garden"))
	assert.False(t, IsKnownCategory("Smart phone"))
}

func TestFieldAccessors(t *testing.T) {
	ok := Valid(3)
	v, valid := ok.Get()
	assert.True(t, valid)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, ok.Or(7))

	bad := Invalid[int]("must be a number")
	assert.False(t, bad.IsValid())
	assert.Equal(t, 7, bad.Or(7))
	assert.Equal(t, "must be a number", bad.Reason())

	var zero Field[string]
	assert.False(t, zero.IsValid())
}

func validInput() ProductInput {
	in := NewProductInput(map[string]json.RawMessage{
		FieldProductName: json.RawMessage(`"Yoga Mat"`),
		FieldCategory:    json.RawMessage(`"Sports"`),
		FieldKeyFeatures: json.RawMessage(`["non-slip"]`),
		FieldPrice:       json.RawMessage(`1299`),
		FieldTone:        json.RawMessage(`42`),
		"sku":            json.RawMessage(`"YM-1"`),
	})
	in.ProductName = Valid("Yoga Mat")
	in.Category = Valid("Sports")
	in.KeyFeatures = Valid([]string{"non-slip"})
	in.Price = Valid(1299.0)
	in.TargetAudience = Valid(DefaultTargetAudience)
	in.Tone = Invalid[string]("must be a string")
	return in
}

func TestProductInputRequest(t *testing.T) {
	in := validInput()
	require.True(t, in.IsValid())

	req, ok := in.Request()
	require.True(t, ok)
	assert.Equal(t, ProductRequest{
		ProductName:    "Yoga Mat",
		Category:       "Sports",
		KeyFeatures:    []string{"non-slip"},
		Price:          1299,
		TargetAudience: DefaultTargetAudience,
		Tone:           DefaultTone,
	}, req)

	in.Price = Invalid[float64]("missing")
	_, ok = in.Request()
	assert.False(t, ok)
	assert.Equal(t, []string{FieldPrice, FieldTone}, in.InvalidFields())
}

func TestProductInputRender(t *testing.T) {
	out := validInput().Render(InvalidMarker)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"product_name": "Yoga Mat",
		"category": "Sports",
		"key_features": ["non-slip"],
		"price": 1299,
		"tone": "Invalid input",
		"target_audience": "general",
		"sku": "YM-1"
	}`, string(b))
}
