package loadcheck

import (
	"time"

	"github.com/okian/gradpredict/internal/domain/catalog"
)

// Config holds configuration for a load check run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Profiles int           // Number of random profiles to submit
	Repeats  int           // Profiles submitted a second time to check determinism
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Seed     uint64        // Seed for the profile generator
	Verbose  bool          // Log every violation as it is found
}

// PredictRequest mirrors the JSON body of POST /api/predict.
type PredictRequest struct {
	GRE              int     `json:"gre"`
	TOEFL            int     `json:"toefl"`
	UniversityRating int     `json:"university_rating"`
	SOP              float64 `json:"sop"`
	LOR              float64 `json:"lor"`
	CGPA             float64 `json:"cgpa"`
	Research         bool    `json:"research"`
}

// PredictResponse mirrors the JSON body returned by POST /api/predict.
type PredictResponse struct {
	AdmissionPercentage float64         `json:"admission_percentage"`
	RecommendedColleges []catalog.Entry `json:"recommended_colleges"`
	Message             string          `json:"message"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int64
	Successful int64
	Failed     int64
	Violations int64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// PerSecond returns the submission rate over the run.
func (s *Stats) PerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Submitted) / s.Duration.Seconds()
}
