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
		{code: CodeInvalidDiscount, status: http.StatusBadRequest, publicMsg: "discount out of range", detailsOK: true},
		{code: CodeInvalidTransition, status: http.StatusUnprocessableEntity, publicMsg: "status transition disallowed", detailsOK: true},
		{code: CodeEditNotAllowed, status: http.StatusUnprocessableEntity, publicMsg: "quote is no longer editable", detailsOK: true},
		{code: CodeRemoteUnavailable, status: http.StatusServiceUnavailable, publicMsg: "remote quote service unavailable", retryable: true, detailsOK: true},
		{code: CodeExportFailed, status: http.StatusBadGateway, publicMsg: "export failed", retryable: true, detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
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

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("socket closed")
	err := Wrap(CodeRemoteUnavailable, cause, "remote call failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if got := As(err); got == nil || got.Code() != CodeRemoteUnavailable {
		t.Fatalf("expected typed error with remote code, got %v", got)
	}
	if !IsCode(err, CodeRemoteUnavailable) {
		t.Fatal("IsCode should match the wrapped code")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatal("IsCode should not match a different code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	inner := stdErrors.New("root cause")
	err := Wrap(CodeDependency, inner, "outer")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain to include wrapper and cause, got %v", d.Chain)
	}
}
