// Package applicant decodes and validates the seven applicant inputs coming
// from the HTML form, the JSON API or the command line.
package applicant

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/gradpredict/internal/domain/admission"
)

// Field names shared by the form, the JSON body and error reports.
const (
	FieldGRE              = "gre"
	FieldTOEFL            = "toefl"
	FieldUniversityRating = "university_rating"
	FieldSOP              = "sop"
	FieldLOR              = "lor"
	FieldCGPA             = "cgpa"
	FieldResearch         = "research"
)

// ErrInvalidInput marks a request that failed decoding or range checks.
var ErrInvalidInput = errors.New("invalid applicant input")

var applicantValidate *validator.Validate

func init() {
	applicantValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name rather than the Go name.
	applicantValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Request carries raw applicant input. Pointer fields distinguish a missing
// value from a zero one.
type Request struct {
	GRE              *int     `json:"gre" validate:"required,gte=0,lte=340"`
	TOEFL            *int     `json:"toefl" validate:"required,gte=0,lte=120"`
	UniversityRating *int     `json:"university_rating" validate:"required,gte=1,lte=5"`
	SOP              *float64 `json:"sop" validate:"required,gte=1,lte=5"`
	LOR              *float64 `json:"lor" validate:"required,gte=1,lte=5"`
	CGPA             *float64 `json:"cgpa" validate:"required,gte=1,lte=10"`
	Research         *bool    `json:"research" validate:"required"`
}

// FromProfile wraps an already-typed profile, e.g. one built from CLI flags.
func FromProfile(p admission.Profile) Request {
	return Request{
		GRE:              &p.GREScore,
		TOEFL:            &p.TOEFLScore,
		UniversityRating: &p.UniversityRating,
		SOP:              &p.SOP,
		LOR:              &p.LOR,
		CGPA:             &p.CGPA,
		Research:         &p.Research,
	}
}

// FromForm decodes url-encoded form values. Values that do not parse are
// reported in the returned FieldErrors and left nil in the Request.
func FromForm(values url.Values) (Request, FieldErrors) {
	var (
		req  Request
		errs = FieldErrors{}
	)

	parseInt := func(field string) *int {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs[field] = labels[field] + " must be a whole number"
			return nil
		}
		return &v
	}
	parseFloat := func(field string) *float64 {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[field] = labels[field] + " must be a number"
			return nil
		}
		return &v
	}

	req.GRE = parseInt(FieldGRE)
	req.TOEFL = parseInt(FieldTOEFL)
	req.UniversityRating = parseInt(FieldUniversityRating)
	req.SOP = parseFloat(FieldSOP)
	req.LOR = parseFloat(FieldLOR)
	req.CGPA = parseFloat(FieldCGPA)

	if raw := strings.TrimSpace(values.Get(FieldResearch)); raw != "" {
		v, err := ParseResearch(raw)
		if err != nil {
			errs[FieldResearch] = labels[FieldResearch] + " must be yes or no"
		} else {
			req.Research = &v
		}
	}

	return req, errs
}

// ParseResearch accepts yes/no as well as the forms strconv.ParseBool knows.
func ParseResearch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// Validate checks presence and the documented range of every field.
// It returns nil when the request is valid.
func (r *Request) Validate() FieldErrors {
	err := applicantValidate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = describe(fe)
	}
	return errs
}

// Profile converts a validated request. Missing values become zero.
func (r *Request) Profile() admission.Profile {
	return admission.Profile{
		GREScore:         deref(r.GRE),
		TOEFLScore:       deref(r.TOEFL),
		UniversityRating: deref(r.UniversityRating),
		SOP:              deref(r.SOP),
		LOR:              deref(r.LOR),
		CGPA:             deref(r.CGPA),
		Research:         deref(r.Research),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

var labels = map[string]string{
	FieldGRE:              "GRE Score",
	FieldTOEFL:            "TOEFL Score",
	FieldUniversityRating: "University Rating",
	FieldSOP:              "Statement of Purpose",
	FieldLOR:              "Letter of Recommendation Strength",
	FieldCGPA:             "CGPA",
	FieldResearch:         "Research Experience",
}

var ranges = map[string]string{
	FieldGRE:              "0 and 340",
	FieldTOEFL:            "0 and 120",
	FieldUniversityRating: "1 and 5",
	FieldSOP:              "1.0 and 5.0",
	FieldLOR:              "1.0 and 5.0",
	FieldCGPA:             "1.00 and 10.00",
}

func describe(fe validator.FieldError) string {
	label := labels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	if fe.Tag() == "required" {
		return label + " is required"
	}
	if r, ok := ranges[fe.Field()]; ok {
		return fmt.Sprintf("%s must be between %s", label, r)
	}
	return fmt.Sprintf("%s failed %s", label, fe.Tag())
}

// FieldErrors maps a field name to a human readable problem.
type FieldErrors map[string]string

// Merge copies other into e, keeping existing entries.
func (e FieldErrors) Merge(other FieldErrors) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	for k, v := range other {
		if _, ok := e[k]; !ok {
			e[k] = v
		}
	}
	return e
}

// Err returns nil for an empty set, otherwise e wrapped in ErrInvalidInput.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, e)
}

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return strings.Join(msgs, "; ")
}
