// Package admission holds the applicant profile, its feature vector and the
// pre-fitted transforms (scaler and regression model) applied to it.
package admission

import (
	"fmt"
	"strings"
)

// Column names in the order the scaler and model were fitted against.
// Changing this order silently corrupts every prediction.
const (
	FeatureGRE              = "GRE Score"
	FeatureTOEFL            = "TOEFL Score"
	FeatureUniversityRating = "University Rating"
	FeatureSOP              = "SOP"
	FeatureLOR              = "LOR"
	FeatureCGPA             = "CGPA"
	FeatureResearch         = "Research"
)

// FeatureCount is the width of every feature vector.
const FeatureCount = 7

// FeatureNames lists the canonical columns in fitted order.
var FeatureNames = [FeatureCount]string{
	FeatureGRE,
	FeatureTOEFL,
	FeatureUniversityRating,
	FeatureSOP,
	FeatureLOR,
	FeatureCGPA,
	FeatureResearch,
}

// Profile is a single applicant's raw inputs. Ranges are documented for the
// presentation layer; nothing here enforces them.
type Profile struct {
	GREScore         int     // 0-340
	TOEFLScore       int     // 0-120
	UniversityRating int     // 1-5
	SOP              float64 // statement of purpose strength, 1.0-5.0
	LOR              float64 // letter of recommendation strength, 1.0-5.0
	CGPA             float64 // 1.00-10.00
	Research         bool
}

// FeatureVector is an ordered numeric record, raw or scaled.
type FeatureVector []float64

// Features builds the raw vector for p in FeatureNames order.
func Features(p Profile) FeatureVector {
	research := 0.0
	if p.Research {
		research = 1
	}
	return FeatureVector{
		float64(p.GREScore),
		float64(p.TOEFLScore),
		float64(p.UniversityRating),
		p.SOP,
		p.LOR,
		p.CGPA,
		research,
	}
}

// CheckFeatureNames verifies that names, when present, match FeatureNames
// exactly. Artifacts exported without headers pass an empty slice.
func CheckFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != FeatureCount {
		return fmt.Errorf("%w: got %d column names, want %d", ErrFeatureMismatch, len(names), FeatureCount)
	}
	for i, name := range names {
		if strings.TrimSpace(name) != FeatureNames[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrFeatureMismatch, i, name, FeatureNames[i])
		}
	}
	return nil
}
