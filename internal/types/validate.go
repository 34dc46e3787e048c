package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// getValidator lazily builds the shared validator with the date-range rules registered.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterStructValidation(experienceStructValidation, ExperienceEntry{})
		validatorInst.RegisterStructValidation(educationStructValidation, EducationEntry{})
	})
	return validatorInst
}

func experienceStructValidation(sl validator.StructLevel) {
	exp := sl.Current().Interface().(ExperienceEntry)
	if exp.Current {
		return
	}
	if endsBeforeStart(exp.StartDate, exp.EndDate) {
		sl.ReportError(exp.EndDate, "EndDate", "endDate", "after_start", "")
	}
}

func educationStructValidation(sl validator.StructLevel) {
	edu := sl.Current().Interface().(EducationEntry)
	if endsBeforeStart(edu.StartDate, edu.EndDate) {
		sl.ReportError(edu.EndDate, "EndDate", "endDate", "after_start", "")
	}
}

// endsBeforeStart compares two "YYYY-MM" strings. Malformed values are left to the field tags.
func endsBeforeStart(start, end string) bool {
	if len(start) != 7 || len(end) != 7 {
		return false
	}
	return end < start
}

// FieldError is one failed rule, addressed by its JSON-ish path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed rule of a document.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks field formats, id and skill uniqueness and date ordering.
// The form never blocks on these; they gate imports and batch exports.
func (d *CVDocument) Validate() error {
	err := getValidator().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "CVDocument."),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a month in YYYY-MM format"
	case "unique":
		return "entries must be unique"
	case "after_start":
		return "must not be before the start date"
	default:
		return fe.Error()
	}
}
