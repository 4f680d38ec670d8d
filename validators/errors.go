// Package validators holds the write-path rules checked before data reaches
// the store, and the field-keyed error type they report with.
package validators

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors keys reasons that do not belong to a single field.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a request field to its human readable reasons.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, reason string) {
	e[field] = append(e[field], reason)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], " "))
	}
	return strings.Join(parts, "; ")
}

// Field builds a FieldErrors with a single reason.
func Field(field, reason string) FieldErrors {
	return FieldErrors{field: {reason}}
}

var registerOnce sync.Once

// RegisterJSONTagNames makes gin's validator report fields by their json
// name, so binding errors line up with request bodies.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// FromBinding converts an error from ShouldBindJSON into FieldErrors.
func FromBinding(err error) FieldErrors {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fieldErrors := FieldErrors{}
		for _, fe := range validationErrors {
			fieldErrors.Add(fe.Field(), reasonFor(fe))
		}
		return fieldErrors
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Field(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
	}

	return Field(NonFieldErrors, "Invalid request body: "+err.Error())
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}
