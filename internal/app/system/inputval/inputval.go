// Package inputval decodes and validates JSON request bodies.
//
// Bodies are decoded into request structs carrying `validate` tags
// (go-playground/validator). Any failure comes back as a 422
// *apierr.Error whose field map uses the JSON names the client sent.
package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// isoLayouts are the timestamp shapes accepted by the "isodatetime" tag.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var weekdays = map[string]struct{}{}

func init() {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		weekdays[name] = struct{}{}
		weekdays[name[:3]] = struct{}{}
	}
}

// Validator is safe for concurrent use; build one at startup.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodatetime", func(fl validator.FieldLevel) bool {
		return IsISODatetime(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return IsWeekday(fl.Field().String())
	})

	return &Validator{v: v}
}

// IsISODatetime reports whether s parses as one of the accepted ISO-8601
// shapes.
func IsISODatetime(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsWeekday accepts full or three-letter English day names in any case.
func IsWeekday(s string) bool {
	_, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Normalizer is implemented by request types that trim or sanitise their
// fields. DecodeJSON calls Normalize before validating.
type Normalizer interface {
	Normalize()
}

// DecodeJSON reads r's body into dst, normalises it and validates it.
func (v *Validator) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apierr.Validation(map[string]string{"body": "must contain a single JSON object"})
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return v.Struct(dst)
}

// Struct validates an already-populated value.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.Validation(map[string]string{"body": err.Error()})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return apierr.Validation(fields)
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		tooBig    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return apierr.Validation(map[string]string{"body": "required"})
	case errors.As(err, &tooBig):
		return apierr.Validation(map[string]string{"body": fmt.Sprintf("must be at most %d bytes", MaxBodyBytes)})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apierr.Validation(map[string]string{"body": "invalid JSON"})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apierr.Validation(map[string]string{field: "must be of type " + typeErr.Type.String()})
	default:
		return apierr.Validation(map[string]string{"body": "invalid JSON"})
	}
}

// fieldPath drops the top-level struct name: "ReminderCreate.title" → "title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "isodatetime":
		return "must be an ISO-8601 date-time"
	case "weekday":
		return "must be a day of the week"
	case "gte", "lte":
		return "out of range"
	default:
		return "failed " + fe.Tag()
	}
}
