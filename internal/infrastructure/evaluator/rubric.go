// Package evaluator grades generated product copy with a fixed rubric.
package evaluator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"productdesc/internal/domain/entity"
	"productdesc/internal/infrastructure/validator"
)

const (
	ItemFeaturesMentioned = "features_mentioned"
	ItemAppropriateLength = "appropriate_length"
	ItemPricePositioning  = "price_positioning"
	ItemAudienceTargeting = "audience_targeting"
	ItemCallToAction      = "call_to_action"
)

const (
	featuresPoints = 10
	lengthPoints   = 10
	pricePoints    = 5
	audiencePoints = 10
	ctaPoints      = 5

	// MaxScore is the best possible total.
	MaxScore = featuresPoints + lengthPoints + pricePoints + audiencePoints + ctaPoints

	minCallToActionLength = 10
)

var priceTerms = []string{"premium", "luxury", "budget", "affordable", "value", "investment"}

// Evaluate scores output against the product it was generated for. Every
// rubric item appears in the breakdown, with 0 when it failed.
func Evaluate(input entity.EvaluationInput, output entity.GeneratedDescription) entity.EvaluationReport {
	detailed := strings.ToLower(output.DetailedDescription)
	report := entity.EvaluationReport{
		Breakdown: make(map[string]int, 5),
		Issues:    []string{},
	}
	award := func(item string, points int, ok bool, issue func() string) {
		if ok {
			report.Breakdown[item] = points
			report.TotalScore += points
			return
		}
		report.Breakdown[item] = 0
		report.Issues = append(report.Issues, issue())
	}

	missing := missingFeatures(input.KeyFeatures, detailed)
	award(ItemFeaturesMentioned, featuresPoints, len(missing) == 0, func() string {
		return "Not all features mentioned in description: " + strings.Join(missing, ", ")
	})

	words := validator.WordCount(output.DetailedDescription)
	award(ItemAppropriateLength, lengthPoints,
		words >= entity.DetailedDescriptionMinWords && words <= entity.DetailedDescriptionMaxWords,
		func() string {
			return fmt.Sprintf("Description length %d words (should be %d-%d)",
				words, entity.DetailedDescriptionMinWords, entity.DetailedDescriptionMaxWords)
		})

	award(ItemPricePositioning, pricePoints, containsAny(detailed, priceTerms), func() string {
		return "Description does not use price positioning language"
	})

	audience := strings.ToLower(strings.TrimSpace(input.TargetAudience))
	award(ItemAudienceTargeting, audiencePoints, audience != "" && strings.Contains(detailed, audience), func() string {
		if audience == "" {
			return "No target audience provided"
		}
		return fmt.Sprintf("Target audience %q not addressed in description", input.TargetAudience)
	})

	award(ItemCallToAction, ctaPoints, utf8.RuneCountInString(output.CallToAction) > minCallToActionLength, func() string {
		return fmt.Sprintf("Call to action missing or shorter than %d characters", minCallToActionLength+1)
	})

	return report
}

func missingFeatures(features []string, text string) []string {
	var missing []string
	for _, f := range features {
		if !strings.Contains(text, strings.ToLower(f)) {
			missing = append(missing, f)
		}
	}
	return missing
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
