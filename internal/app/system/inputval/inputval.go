// Package inputval validates API inputs explicitly, before anything is
// written, using waffle/pantry/validate.
//
// Define an input struct with validate tags, populate it from the request,
// normalize it, and call Validate. Err converts the first failure into an
// apperr.ClientInputError naming the offending field.
//
// Example:
//
//	in := inputval.NewUser{Username: normalize.Username(form["username"])}
//	if err := inputval.Validate(in).Err(); err != nil {
//	    return err // 400 with "Username is required."
//	}
package inputval

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/calendar"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewUser is the input for creating a user.
type NewUser struct {
	Username string `json:"username" validate:"required,max=200" label:"Username"`
}

// NewExercise is the input for appending an exercise to a user's log.
// Duration and Date stay strings here: they arrive as form values and are
// checked by the minutes and calendardate rules.
type NewExercise struct {
	UserID      string `json:"_id" validate:"required,objectid" label:"User id"`
	Description string `json:"description" validate:"required,max=500" label:"Description"`
	Duration    string `json:"duration" validate:"required,minutes" label:"Duration"`
	Date        string `json:"date" validate:"calendardate" label:"Date"`
}

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// Err returns the first failure as a ClientInputError, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apperr.Input(r.Errors[0].Field, r.Errors[0].Message)
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

// getValidator returns the singleton validator with custom rules.
func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// objectid: a MongoDB ObjectID hex string
		customValidator.RegisterRuleFunc("objectid", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsValidObjectID(s)
			}
			return false
		}, "objectid")

		// minutes: a whole, non-negative number
		customValidator.RegisterRuleFunc("minutes", func(value any) bool {
			if s, ok := value.(string); ok {
				_, err := ParseMinutes(s)
				return err == nil
			}
			return false
		}, "minutes")

		// calendardate: empty (use the default) or a parseable date
		customValidator.RegisterRuleFunc("calendardate", func(value any) bool {
			if s, ok := value.(string); ok {
				return strings.TrimSpace(s) == "" || calendar.Valid(s)
			}
			return false
		}, "calendardate")
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
// Messages use the `label` tag, falling back to the field name.
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// getFieldLabels extracts the "label" tag from struct fields, keyed by
// json name when one is set.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "max":
		return label + " must be at most " + param + " characters."
	case "objectid":
		return label + " is not a valid ID."
	case "minutes":
		return label + " must be a whole number of minutes (0 or more)."
	case "calendardate":
		return label + " must be a valid date."
	default:
		return label + " is invalid."
	}
}

// IsValidObjectID checks if the given string is a valid MongoDB ObjectID hex.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// ParseMinutes parses a duration in whole minutes. Negative numbers,
// fractions and anything non-numeric are rejected.
func ParseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
