package model

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Classification is the structured verdict returned by the AI classifier.
// The JSON tags match the wire contract the model is asked to produce.
type Classification struct {
	ShouldAdd      bool   `json:"should_add"`
	Classification string `json:"classification"`
	Confidence     string `json:"confidence"`
	Reason         string `json:"reason"`
}
