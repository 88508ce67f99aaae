// Package site serves the HTML admission form.
package site

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/gradpredict/internal/adapters/applicant"
	"github.com/okian/gradpredict/internal/domain/admission"
	"github.com/okian/gradpredict/internal/domain/types"
	"github.com/okian/gradpredict/pkg/logger"
)

// ErrRender is logged when the page template fails mid-response.
var ErrRender = errors.New("form render failed")

// Predictor runs one profile through the prediction pipeline.
type Predictor interface {
	Predict(ctx context.Context, p admission.Profile) (types.Prediction, error)
}

// Option configures a RootHandler.
type Option func(*RootHandler)

// WithResultDelay holds the result page back for d before rendering it.
// The wait ends early when the client goes away.
func WithResultDelay(d time.Duration) Option {
	return func(h *RootHandler) {
		if d > 0 {
			h.delay = d
		}
	}
}

// Register attaches the form at / and its assets at /static/ to mux.
func Register(_ context.Context, mux *http.ServeMux, h *RootHandler) {
	if mux == nil {
		panic("mux is nil")
	}
	if h == nil {
		panic("handler is nil")
	}

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/", h.HandleRoot)
}

// RootHandler handles root path requests
type RootHandler struct {
	deps  Predictor
	delay time.Duration
}

// NewRootHandler creates a new root handler
func NewRootHandler(deps Predictor, opts ...Option) *RootHandler {
	h := &RootHandler{deps: deps}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type field struct {
	Name  string
	Label string
	Value string
	Error string
	Min   string
	Max   string
	Step  string
}

type pageData struct {
	Fields   []field
	Rating   field
	Research field
	Ratings  []string
	Result   *types.Prediction
	Failure  string
}

// HandleRoot handles GET and POST / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, r, http.StatusOK, newPage(nil, nil))
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *RootHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	req, errs := applicant.FromForm(r.PostForm)
	errs = errs.Merge(req.Validate())
	if len(errs) > 0 {
		h.render(w, r, http.StatusUnprocessableEntity, newPage(r.PostForm, errs))
		return
	}

	res, err := h.deps.Predict(ctx, req.Profile())
	if err != nil {
		logger.Get().Error(ctx, "prediction failed", logger.Error(err))
		page := newPage(r.PostForm, nil)
		page.Failure = "We could not compute a prediction right now. Please try again."
		h.render(w, r, http.StatusInternalServerError, page)
		return
	}

	if h.delay > 0 {
		timer := time.NewTimer(h.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			logger.Get().Debug(ctx, "client left before result was shown")
			return
		case <-timer.C:
		}
	}

	page := newPage(r.PostForm, nil)
	page.Result = &res
	h.render(w, r, http.StatusOK, page)
}

func (h *RootHandler) render(w http.ResponseWriter, r *http.Request, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		logger.Get().Error(r.Context(), ErrRender.Error(), logger.Error(err))
	}
}

// newPage builds the form model, echoing submitted values and errors.
// With no submission the fields start at the bottom of each range.
func newPage(values map[string][]string, errs applicant.FieldErrors) pageData {
	get := func(name, fallback string) string {
		if v := values[name]; len(v) > 0 {
			return v[0]
		}
		return fallback
	}
	mk := func(name, label, fallback, lo, hi, step string) field {
		return field{
			Name:  name,
			Label: label,
			Value: get(name, fallback),
			Error: errs[name],
			Min:   lo,
			Max:   hi,
			Step:  step,
		}
	}

	ratings := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		ratings = append(ratings, strconv.Itoa(i))
	}

	return pageData{
		Fields: []field{
			mk(applicant.FieldGRE, "GRE Score (0 to 340)", "0", "0", "340", "1"),
			mk(applicant.FieldTOEFL, "TOEFL Score (0 to 120)", "0", "0", "120", "1"),
			mk(applicant.FieldSOP, "Statement of Purpose (1.0 to 5.0)", "1.0", "1", "5", "0.1"),
			mk(applicant.FieldLOR, "Letter of Recommendation Strength (1.0 to 5.0)", "1.0", "1", "5", "0.1"),
			mk(applicant.FieldCGPA, "CGPA (1.00 to 10.00)", "1.00", "1", "10", "0.01"),
		},
		Rating:   mk(applicant.FieldUniversityRating, "University Rating (1 to 5)", "1", "1", "5", "1"),
		Research: mk(applicant.FieldResearch, "Research Experience", "no", "", "", ""),
		Ratings:  ratings,
	}
}

// formatPercent renders a percentage the way the result line shows it.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
