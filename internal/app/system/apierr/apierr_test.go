package apierr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
)

func TestWrite_KnownError(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, apierr.ErrInvalidCredentials)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate: got %q, want %q", got, "Bearer")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Could not validate credentials" {
		t.Errorf("detail: got %v", body["detail"])
	}
	if _, ok := body["errors"]; ok {
		t.Error("errors key should be omitted when empty")
	}
}

func TestWrite_WrappedError(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, fmt.Errorf("lookup: %w", apierr.NotFound("Todo")))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Detail != "Todo not found" {
		t.Errorf("detail: got %q", body.Detail)
	}
}

func TestWrite_UnknownErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, errors.New("connection refused: 10.0.0.3:27017"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Detail != "Internal server error" {
		t.Errorf("store error leaked to client: %q", body.Detail)
	}
}

func TestValidation_IncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, apierr.Validation(map[string]string{"title": "required"}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rec.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Errors["title"] != "required" {
		t.Errorf("errors: got %v", body.Errors)
	}
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	e := apierr.ErrRateLimited.WithDetail("slow down")
	if e.Detail != "slow down" {
		t.Errorf("copy detail: got %q", e.Detail)
	}
	if apierr.ErrRateLimited.Detail != "Too many requests" {
		t.Errorf("original mutated: %q", apierr.ErrRateLimited.Detail)
	}
}
