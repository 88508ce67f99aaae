package api

import (
	"net/http"

	"github.com/okian/gradpredict/internal/domain/catalog"
	"github.com/okian/gradpredict/pkg/logger"
)

type collegesResponse struct {
	Count    int             `json:"count"`
	Colleges []catalog.Entry `json:"colleges"`
}

// CollegesHandler serves the loaded catalog.
type CollegesHandler struct {
	deps Dependencies
}

// NewCollegesHandler creates a new colleges handler.
func NewCollegesHandler(deps Dependencies) *CollegesHandler {
	return &CollegesHandler{deps: deps}
}

// HandleColleges handles GET /api/colleges requests.
func (h *CollegesHandler) HandleColleges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	colleges, err := h.deps.Colleges(r.Context())
	if err != nil {
		logger.Get().Error(r.Context(), "failed to list colleges", logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unavailable", nil)
		return
	}
	writeJSON(w, http.StatusOK, collegesResponse{Count: len(colleges), Colleges: colleges})
}
