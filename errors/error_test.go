package errors

import (
	"fmt"
	"testing"
)

func TestNewResponseMapsWrapped(t *testing.T) {
	r := NewResponse(fmt.Errorf("delete field: %w", ErrFieldNotRemovable))
	if r.Error != ErrFieldNotRemovable || r.StatusCode != 409 {
		t.Fatalf("unexpected response %+v", r)
	}
}

func TestNewResponseHidesDetail(t *testing.T) {
	r := NewResponse(ErrFieldNotVisible)
	if r.Error != ErrNotFound || r.StatusCode != 404 {
		t.Fatalf("hidden field should look missing, got %+v", r)
	}
	r = NewResponse(fmt.Errorf("set value: %w", ErrValueNotAllowed))
	if r.Error != ErrUnauthorized || r.StatusCode != 403 {
		t.Fatalf("rejected value should look like a denial, got %+v", r)
	}
}

func TestNewResponseUnknown(t *testing.T) {
	r := NewResponse(New("boom"))
	if r.Error != ErrServerError || r.StatusCode != 500 {
		t.Fatalf("unexpected response %+v", r)
	}
}

func TestNewResponsePrefersSpecificError(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrNotFound, ErrFieldNotVisible)
	for i := 0; i < 20; i++ {
		r := NewResponse(err)
		if r.Error != ErrNotFound || r.Description != Descriptions[ErrNotFound] {
			t.Fatalf("unexpected response %+v", r)
		}
	}
	err = fmt.Errorf("%w: %w", ErrConflict, ErrVersionConflict)
	for i := 0; i < 20; i++ {
		if r := NewResponse(err); r.Error != ErrVersionConflict {
			t.Fatalf("unexpected response %+v", r)
		}
	}
}

func TestNewResponseKeepsValidationDetail(t *testing.T) {
	r := NewResponse(fmt.Errorf("set value: %w", InvalidRequestf("%s must be a number", "Salary")))
	if r.Error != ErrInvalidRequest || r.StatusCode != 400 || r.Description != "Salary must be a number" {
		t.Fatalf("unexpected response %+v", r)
	}
	if !Is(InvalidRequestf("x"), ErrInvalidRequest) {
		t.Fatal("detail error should wrap ErrInvalidRequest")
	}
	// other errors never leak their text
	r = NewResponse(fmt.Errorf("%w: token is malformed", ErrUnauthenticated))
	if r.Description != Descriptions[ErrUnauthenticated] {
		t.Fatalf("unexpected description %q", r.Description)
	}
}

func TestResolveOrderCoversKnownErrors(t *testing.T) {
	if len(resolveOrder) != len(StatusCodes) {
		t.Fatalf("resolve order has %d errors, status codes %d", len(resolveOrder), len(StatusCodes))
	}
	for _, e := range resolveOrder {
		if _, ok := StatusCodes[e]; !ok {
			t.Fatalf("%v has no status code", e)
		}
	}
}
