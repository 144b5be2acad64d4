package response

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope every endpoint returns. Data is set on success,
// Error (and Fields, for binding failures) on error.
type Response struct {
	Status     string            `json:"status"`      // "success" or "error"
	StatusCode int               `json:"status_code"` // HTTP status code
	Data       interface{}       `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Success wraps data in a success envelope
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps an error message in an error envelope
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Invalid builds a 400 envelope from a request binding error. Validator
// failures are broken out per field so clients can highlight the offending
// inputs; anything else (malformed JSON, wrong types) keeps the raw message.
func Invalid(err error) Response {
	resp := Response{
		Status:     "error",
		StatusCode: 400,
		Error:      "Invalid request payload",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Fields[fieldName(fe)] = fieldMessage(fe)
		}
		return resp
	}

	resp.Error = "Invalid request payload: " + err.Error()
	return resp
}

// fieldName maps the Go struct field to its snake_case JSON name, matching
// how the request DTOs tag their fields.
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid":
		return "must be a valid UUID"
	default:
		return "failed validation rule " + fe.Tag()
	}
}
