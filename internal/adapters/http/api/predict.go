package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/gradpredict/internal/adapters/applicant"
	"github.com/okian/gradpredict/internal/domain/catalog"
	"github.com/okian/gradpredict/pkg/logger"
)

// maxPredictBody bounds the request body; a valid body is well under 1 KiB.
const maxPredictBody = 64 << 10

type predictResponse struct {
	AdmissionPercentage float64         `json:"admission_percentage"`
	RecommendedColleges []catalog.Entry `json:"recommended_colleges"`
	Message             string          `json:"message"`
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /api/predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req applicant.Request
	dec := json.NewDecoder(io.LimitReader(r.Body, maxPredictBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errTrailingData))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "validation_failed",
			Message: wrapKind(op, ErrValidation, errs).Error(),
			Fields:  errs,
		})
		return
	}

	res, err := h.deps.Predict(r.Context(), req.Profile())
	if err != nil {
		logger.Get().Error(r.Context(), "prediction failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "prediction_failed", wrapKind(op, ErrPrediction, nil))
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		AdmissionPercentage: res.AdmissionPercentage,
		RecommendedColleges: res.RecommendedColleges,
		Message:             res.Message(),
	})
}
