package entity

import (
	"fmt"
	"strconv"
	"strings"
)

type Prompt struct {
	ID   string
	Text string
}

const ProductDescriptionPromptID = "product_description"

type PriceTier string

const (
	PriceTierBudget   PriceTier = "budget-friendly"
	PriceTierMidRange PriceTier = "mid-range"
	PriceTierPremium  PriceTier = "premium"
	PriceTierLuxury   PriceTier = "luxury"
)

// PriceTierFor maps a price onto its positioning tier. Each bound is
// exclusive, so 1000 is already mid-range.
func PriceTierFor(price float64) PriceTier {
	switch {
	case price < 1000:
		return PriceTierBudget
	case price < 10000:
		return PriceTierMidRange
	case price < 50000:
		return PriceTierPremium
	default:
		return PriceTierLuxury
	}
}

const defaultCategoryContext = "quality and value"

var categoryContexts = map[string]string{
	"smartphone":  "cutting-edge technology and connectivity",
	"electronics": "innovative features and performance",
	"clothing":    "style, comfort, and quality",
	"home":        "functionality and aesthetic appeal",
	"beauty":      "enhancement and self-care",
	"sports":      "performance and durability",
}

// CategoryContext returns the selling angle for a category.
func CategoryContext(category string) string {
	if ctx, ok := categoryContexts[strings.ToLower(category)]; ok {
		return ctx
	}
	return defaultCategoryContext
}

const exampleDescription = `{
  "short_description": "Samsung Galaxy S24 - Premium smartphone with 256GB storage and 50MP camera",
  "detailed_description": "Experience cutting-edge technology with the Samsung Galaxy S24. This premium smartphone delivers exceptional performance with its advanced processor and stunning camera system. Perfect for tech enthusiasts who demand the best.",
  "bullet_points": [
    "256GB storage - Never run out of space for your digital life",
    "50MP camera - Capture professional-quality photos and videos",
    "6.2 inch display - Immersive viewing experience for all your content"
  ],
  "seo_keywords": [
    "Samsung Galaxy S24",
    "smartphone",
    "256GB",
    "50MP camera",
    "premium phone"
  ],
  "call_to_action": "Upgrade to premium technology - Order your Galaxy S24 today!"
}`

// NewProductDescriptionPrompt renders the copywriting instruction for req.
// The output is a pure function of req.
func NewProductDescriptionPrompt(req ProductRequest) Prompt {
	tier := PriceTierFor(req.Price)
	focus := CategoryContext(req.Category)
	features := strings.Join(req.KeyFeatures, ", ")
	price := strconv.FormatFloat(req.Price, 'f', -1, 64)

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an expert e-commerce copywriter specializing in %s.\n", req.Category)
	sb.WriteString("Your task is to create compelling, conversion-focused product descriptions that drive sales.\n\n")

	sb.WriteString("PRODUCT DETAILS:\n")
	fmt.Fprintf(sb, "- Product Name: %s\n", req.ProductName)
	fmt.Fprintf(sb, "- Category: %s\n", req.Category)
	fmt.Fprintf(sb, "- Key Features: %s\n", features)
	fmt.Fprintf(sb, "- Price: ₹%s (%s)\n", price, tier)
	fmt.Fprintf(sb, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(sb, "- Tone: %s\n\n", req.Tone)

	sb.WriteString("WRITING GUIDELINES:\n")
	fmt.Fprintf(sb, "- Focus on %s\n", focus)
	fmt.Fprintf(sb, "- Highlight value proposition for %s segment\n", tier)
	fmt.Fprintf(sb, "- Use %s tone throughout\n", req.Tone)
	fmt.Fprintf(sb, "- Appeal to %s specifically\n", req.TargetAudience)
	sb.WriteString("- Include emotional triggers and benefits, not just features\n\n")

	sb.WriteString("EXAMPLE OUTPUT FORMAT:\n")
	sb.WriteString(exampleDescription)
	sb.WriteString("\n\n")

	sb.WriteString("CRITICAL REQUIREMENTS:\n")
	fmt.Fprintf(sb, "- Mention ALL key features: %s\n", features)
	fmt.Fprintf(sb, "- Short description: EXACTLY %d-%d words\n", ShortDescriptionMinWords, ShortDescriptionMaxWords)
	fmt.Fprintf(sb, "- Detailed description: EXACTLY %d-%d words\n", DetailedDescriptionMinWords, DetailedDescriptionMaxWords)
	fmt.Fprintf(sb, "- Bullet points: EXACTLY %d-%d items, each explaining the benefit of the feature\n", MinBulletPoints, MaxBulletPoints)
	sb.WriteString("- SEO keywords: Include product name and key features\n")
	sb.WriteString("- Call to action: Create urgency and encourage purchase\n")
	fmt.Fprintf(sb, "- Consider the %s price point in positioning\n", tier)
	fmt.Fprintf(sb, "- Adapt language for %s audience\n", req.TargetAudience)
	fmt.Fprintf(sb, "- Use %s tone consistently\n\n", req.Tone)

	fmt.Fprintf(sb, "Return ONLY a valid JSON object with exactly these keys, in this order: %s. ", strings.Join(DescriptionFields, ", "))
	sb.WriteString("No additional text before or after the JSON.")

	return Prompt{
		ID:   ProductDescriptionPromptID,
		Text: sb.String(),
	}
}
