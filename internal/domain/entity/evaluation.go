package entity

// EvaluationReport is the rubric result for one generated description.
type EvaluationReport struct {
	TotalScore int            `json:"total_score"`
	Breakdown  map[string]int `json:"breakdown"`
	Issues     []string       `json:"issues"`
}

// EvaluationInput is the lenient view of a product request used for scoring.
// Unlike ProductInput it is not validated: missing fields are simply empty.
type EvaluationInput struct {
	ProductName    string   `json:"product_name"`
	Category       string   `json:"category"`
	KeyFeatures    []string `json:"key_features"`
	Price          float64  `json:"price"`
	TargetAudience string   `json:"target_audience"`
	Tone           string   `json:"tone"`
}
