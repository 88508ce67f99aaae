// Package types contains common types used across the application
package types

import "github.com/okian/gradpredict/internal/domain/catalog"

// Messages shown above the recommendation list.
const (
	MatchMessage   = "Based on your predicted admission chances, you can consider applying to the following universities:"
	NoMatchMessage = "Unfortunately, there are no universities that match your predicted admission chances."
)

// Prediction is the outcome of one run through the prediction pipeline.
type Prediction struct {
	AdmissionPercentage float64         `json:"admission_percentage"`
	RecommendedColleges []catalog.Entry `json:"recommended_colleges"`
}

// Matched reports whether at least one college was recommended.
func (p Prediction) Matched() bool {
	return len(p.RecommendedColleges) > 0
}

// Message is the one-line summary shown alongside the prediction.
func (p Prediction) Message() string {
	if !p.Matched() {
		return NoMatchMessage
	}
	return MatchMessage
}
