package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report on the json tag name instead of the struct field name
	// Look at documentation of 'RegisterTagNameFunc' for more details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		// skip if tag key says it should be ignored
		if name == "-" {
			return ""
		}
		return name
	})
}

// ErrorResponse is the error contract for every endpoint:
// a caller safe reason and nothing about internals
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON sends data as json with status 200
func JSON(w http.ResponseWriter, data any) {
	JSONStatus(w, data, http.StatusOK)
}

// JSONStatus sends data as json and enforces the status code
func JSONStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// Error renders {"error": reason} with the given status code
func Error(w http.ResponseWriter, reason string, code int) {
	JSONStatus(w, ErrorResponse{Error: reason}, code)
}

// BindAndValidate decodes the JSON request body into T and validates it
// using struct tags. On failure the error response is written already,
// callers should just return.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		Error(w, decodeReason(err), http.StatusBadRequest)
		return value, err
	}

	if err := validate.Struct(value); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			Error(w, "Invalid request", http.StatusBadRequest)
			return value, err
		}

		// Report the first failed field only, fields validate in
		// declaration order so the message is deterministic
		Error(w, fieldReason(errs[0]), http.StatusBadRequest)
		return value, err
	}

	return value, nil
}

func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid data type for %s", typeErr.Field)
	case errors.Is(err, io.EOF):
		return "No data provided"
	default:
		return "Invalid request body"
	}
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", fe.Field())
	case "max":
		return fmt.Sprintf("Value too long for %s", fe.Field())
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}
