package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", detailsOK: true},
		{code: CodeNetwork, status: http.StatusBadGateway, publicMsg: "network error", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		code   Code
	}{
		{http.StatusBadRequest, CodeValidation},
		{http.StatusUnprocessableEntity, CodeValidation},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusInternalServerError, CodeDependency},
		{http.StatusBadGateway, CodeDependency},
	}
	for _, tt := range tests {
		if got := CodeForStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	withDetails := base.WithDetails(map[string]string{"field": "foo"})
	if withDetails.Details() == nil {
		t.Fatal("expected details to be set")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "calling backend")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
	if typed := As(wrapped); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed dependency error, got %v", wrapped)
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "missing record")
	if !HasCode(err, CodeNotFound) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodeConflict) {
		t.Fatal("expected HasCode mismatch")
	}
	if HasCode(nil, CodeNotFound) {
		t.Fatal("nil error should not match")
	}
	if HasCode(stdErrors.New("plain"), CodeNotFound) {
		t.Fatal("untyped error should not match")
	}
}
