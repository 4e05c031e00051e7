package entity

// GeneratedDescription is the product copy returned to the caller. Field
// order here is the key order of the JSON response.
type GeneratedDescription struct {
	ShortDescription    string   `json:"short_description"`
	DetailedDescription string   `json:"detailed_description"`
	BulletPoints        []string `json:"bullet_points"`
	SEOKeywords         []string `json:"seo_keywords"`
	CallToAction        string   `json:"call_to_action"`
}

const (
	FieldShortDescription    = "short_description"
	FieldDetailedDescription = "detailed_description"
	FieldBulletPoints        = "bullet_points"
	FieldSEOKeywords         = "seo_keywords"
	FieldCallToAction        = "call_to_action"
)

// DescriptionFields lists the required output keys in response order.
var DescriptionFields = []string{
	FieldShortDescription,
	FieldDetailedDescription,
	FieldBulletPoints,
	FieldSEOKeywords,
	FieldCallToAction,
}

// Word limits for the generated copy, inclusive.
const (
	ShortDescriptionMinWords    = 20
	ShortDescriptionMaxWords    = 50
	DetailedDescriptionMinWords = 50
	DetailedDescriptionMaxWords = 200
	MinBulletPoints             = 3
	MaxBulletPoints             = 5
)
