package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productdesc/internal/domain/entity"
)

// words builds a description of exactly n words that starts with lead.
func words(lead string, n int) string {
	parts := strings.Fields(lead)
	for len(parts) < n {
		parts = append(parts, "filler")
	}
	return strings.Join(parts[:n], " ")
}

func TestEvaluateFeaturesLengthAndPrice(t *testing.T) {
	input := entity.EvaluationInput{
		ProductName: "Yoga Mat",
		KeyFeatures: []string{"Non-slip surface", "eco-friendly"},
	}
	output := entity.GeneratedDescription{
		DetailedDescription: words("A premium mat with a non-slip surface that is eco-friendly", 80),
	}

	report := Evaluate(input, output)

	assert.Equal(t, 25, report.TotalScore)
	assert.Equal(t, map[string]int{
		ItemFeaturesMentioned: 10,
		ItemAppropriateLength: 10,
		ItemPricePositioning:  5,
		ItemAudienceTargeting: 0,
		ItemCallToAction:      0,
	}, report.Breakdown)
	assert.Len(t, report.Issues, 2)
}

func TestEvaluatePerfectScore(t *testing.T) {
	input := entity.EvaluationInput{
		KeyFeatures:    []string{"48MP camera"},
		TargetAudience: "Professionals",
	}
	output := entity.GeneratedDescription{
		DetailedDescription: words("Built for professionals, the 48MP camera is a luxury investment", 60),
		CallToAction:        "Order yours today and save!",
	}

	report := Evaluate(input, output)

	assert.Equal(t, MaxScore, report.TotalScore)
	assert.Empty(t, report.Issues)
}

func TestEvaluateReportsIssues(t *testing.T) {
	input := entity.EvaluationInput{
		KeyFeatures:    []string{"titanium design", "A17 Pro chip"},
		TargetAudience: "gamers",
	}
	output := entity.GeneratedDescription{
		DetailedDescription: "Titanium design in a phone.",
		CallToAction:        "Buy now",
	}

	report := Evaluate(input, output)

	assert.Equal(t, 0, report.TotalScore)
	require.Len(t, report.Issues, 5)
	assert.Contains(t, report.Issues[0], "A17 Pro chip")
	assert.NotContains(t, report.Issues[0], "titanium design")
	assert.Equal(t, "Description length 5 words (should be 50-200)", report.Issues[1])
	assert.Contains(t, report.Issues[3], `"gamers"`)
}

func TestEvaluateNoFeaturesCountsAsCovered(t *testing.T) {
	report := Evaluate(entity.EvaluationInput{}, entity.GeneratedDescription{})
	assert.Equal(t, 10, report.Breakdown[ItemFeaturesMentioned])
	assert.Equal(t, 0, report.Breakdown[ItemAudienceTargeting])
}
