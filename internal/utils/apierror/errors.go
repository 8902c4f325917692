package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError        = NewSimple(404, "Resource not found")
	CompanyNotFoundError = NewSimple(404, "Company not found")
	ListNotFoundError    = NewSimple(404, "List not found")
	SearchNotFoundError  = NewSimple(404, "Saved search not found")

	MissingEnrichFieldsError = NewSimple(400, "Name and website are required")
	InvalidExportFormatError = NewSimple(400, "Export format must be 'csv' or 'json'")

	/*
	 * Used for the enrichment path
	 */
	EnrichmentNotConfiguredError = NewSimple(500, "Enrichment is not configured on this server")
	EnrichmentFailedError        = NewSimple(500, "Failed to enrich company")
	EnrichmentBadPayloadError    = NewSimple(500, "Enrichment service returned an unusable response")
	EnrichmentInFlightError      = NewSimple(409, "An enrichment for this company is already in progress")
	EnrichmentNotCachedError     = NewSimple(404, "Company has not been enriched yet")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewUpstreamError reports a non-success status from the enrichment
// provider without leaking the raw upstream body to the caller.
func NewUpstreamError(status int) *APIError {
	return NewSimple(http.StatusInternalServerError, "Enrichment service failed with status %d", status)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
