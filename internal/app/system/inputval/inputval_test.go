package inputval_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Priority *string  `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	When     string   `json:"when" validate:"omitempty,isodatetime"`
	Days     []string `json:"days" validate:"omitempty,dive,weekday"`
}

func decode(t *testing.T, body string) (signup, *apierr.Error) {
	t.Helper()
	v := inputval.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var s signup
	err := v.DecodeJSON(rec, req, &s)
	if err == nil {
		return s, nil
	}
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "expected *apierr.Error, got %T", err)
	return s, ae
}

func TestDecodeJSON_Valid(t *testing.T) {
	s, err := decode(t, `{"email":"a@b.co","password":"pw","priority":"High","when":"2026-05-01T08:30","days":["Mon","friday"],"extra":1}`)
	require.Nil(t, err)
	assert.Equal(t, "a@b.co", s.Email)
	assert.Equal(t, "High", *s.Priority)
}

func TestDecodeJSON_MissingFields(t *testing.T) {
	_, err := decode(t, `{}`)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "required", err.Fields["email"])
	assert.Equal(t, "required", err.Fields["password"])
}

func TestDecodeJSON_BadEmail(t *testing.T) {
	_, err := decode(t, `{"email":"not-an-email","password":"pw"}`)
	require.NotNil(t, err)
	assert.Equal(t, "must be a valid email address", err.Fields["email"])
}

func TestDecodeJSON_OneOf(t *testing.T) {
	_, err := decode(t, `{"email":"a@b.co","password":"pw","priority":"Urgent"}`)
	require.NotNil(t, err)
	assert.Equal(t, "must be one of: Low, Medium, High", err.Fields["priority"])
}

func TestDecodeJSON_CustomTags(t *testing.T) {
	_, err := decode(t, `{"email":"a@b.co","password":"pw","when":"tomorrow","days":["Mon","Funday"]}`)
	require.NotNil(t, err)
	assert.Equal(t, "must be an ISO-8601 date-time", err.Fields["when"])
	assert.Equal(t, "must be a day of the week", err.Fields["days[1]"])
}

func TestDecodeJSON_WrongType(t *testing.T) {
	_, err := decode(t, `{"email":42,"password":"pw"}`)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Contains(t, err.Fields["email"], "string")
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, body := range []string{``, `{`, `not json`, `{"email":"a@b.co"} {"x":1}`} {
		_, err := decode(t, body)
		require.NotNil(t, err, "body %q", body)
		assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode, "body %q", body)
	}
}

func TestIsISODatetime(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-05-01T08:30", true},
		{"2026-05-01T08:30:00", true},
		{"2026-05-01T08:30:00.123456", true},
		{"2026-05-01T08:30:00Z", true},
		{"2026-05-01T08:30:00+02:00", true},
		{"2026-05-01", false},
		{"08:30", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := inputval.IsISODatetime(tt.in); got != tt.want {
			t.Errorf("IsISODatetime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsWeekday(t *testing.T) {
	for _, ok := range []string{"Monday", "monday", "MON", "sun", " Friday "} {
		if !inputval.IsWeekday(ok) {
			t.Errorf("IsWeekday(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "Mo", "weekend", "Mondays"} {
		if inputval.IsWeekday(bad) {
			t.Errorf("IsWeekday(%q) = true", bad)
		}
	}
}

type trimmed struct {
	Name  string  `json:"name" validate:"required"`
	Title *string `json:"title" validate:"omitnil,min=1"`
}

func (t *trimmed) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if t.Title != nil {
		s := strings.TrimSpace(*t.Title)
		t.Title = &s
	}
}

func decodeTrimmed(t *testing.T, body string) (trimmed, *apierr.Error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var out trimmed
	err := inputval.New().DecodeJSON(httptest.NewRecorder(), req, &out)
	if err == nil {
		return out, nil
	}
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae))
	return out, ae
}

func TestDecodeJSON_NormalizeRunsBeforeValidation(t *testing.T) {
	_, err := decodeTrimmed(t, `{"name":"   "}`)
	require.NotNil(t, err)
	assert.Equal(t, "required", err.Fields["name"])

	out, err := decodeTrimmed(t, `{"name":"  Ada  "}`)
	require.Nil(t, err)
	assert.Equal(t, "Ada", out.Name)
	assert.Nil(t, out.Title)
}

func TestDecodeJSON_PresentButBlankPointer(t *testing.T) {
	_, err := decodeTrimmed(t, `{"name":"x","title":"  "}`)
	require.NotNil(t, err)
	assert.Equal(t, "must not be empty", err.Fields["title"])
}
