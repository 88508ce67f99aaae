package loadcheck

import (
	"math"
	"math/rand/v2"
)

// generateProfiles returns n profiles spread uniformly over the accepted
// input ranges. The same seed always yields the same profiles.
func generateProfiles(n int, seed uint64) []PredictRequest {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]PredictRequest, n)
	for i := range out {
		out[i] = PredictRequest{
			GRE:              rng.IntN(341),
			TOEFL:            rng.IntN(121),
			UniversityRating: 1 + rng.IntN(5),
			SOP:              step(1+rng.Float64()*4, 10),
			LOR:              step(1+rng.Float64()*4, 10),
			CGPA:             step(1+rng.Float64()*9, 100),
			Research:         rng.IntN(2) == 1,
		}
	}
	return out
}

// step rounds v to the form's input granularity (1/perUnit).
func step(v, perUnit float64) float64 {
	return math.Round(v*perUnit) / perUnit
}
