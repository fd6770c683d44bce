package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFromResponseMapsStatusToKind(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuthentication},
		{402, KindInsufficientCredits},
		{404, KindNotFound},
		{429, KindRateLimit},
		{400, KindValidation},
		{409, KindValidation},
		{422, KindValidation},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{302, KindServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP %d", tt.status), func(t *testing.T) {
			err := FromResponse(tt.status, map[string]any{"detail": "x"}, "x")
			if got := KindOf(err); got != tt.kind {
				t.Errorf("KindOf(%d) = %s, want %s", tt.status, got, tt.kind)
			}
			if got := StatusOf(err); got != tt.status {
				t.Errorf("StatusOf = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestFromResponseLeafTypes(t *testing.T) {
	var auth *AuthenticationError
	if !stderrors.As(FromResponse(401, nil, "Invalid API key"), &auth) {
		t.Fatal("401 should be an *AuthenticationError")
	}
	if auth.Message != "Invalid API key" || auth.StatusCode != 401 {
		t.Errorf("unexpected error fields: %+v", auth.NativError)
	}

	var credits *InsufficientCreditsError
	if !stderrors.As(FromResponse(402, nil, "m"), &credits) {
		t.Error("402 should be an *InsufficientCreditsError")
	}
	var notFound *NotFoundError
	if !stderrors.As(FromResponse(404, nil, "m"), &notFound) {
		t.Error("404 should be a *NotFoundError")
	}
	var rate *RateLimitError
	if !stderrors.As(FromResponse(429, nil, "m"), &rate) {
		t.Error("429 should be a *RateLimitError")
	}
	var validation *ValidationError
	if !stderrors.As(FromResponse(422, nil, "m"), &validation) {
		t.Error("422 should be a *ValidationError")
	}
	var server *ServerError
	if !stderrors.As(FromResponse(503, nil, "m"), &server) {
		t.Error("503 should be a *ServerError")
	}
}

func TestSentinelsMatchByKind(t *testing.T) {
	err := FromResponse(429, nil, "slow down")

	if !stderrors.Is(err, ErrRateLimit) {
		t.Error("429 error should match ErrRateLimit")
	}
	if stderrors.Is(err, ErrServer) {
		t.Error("429 error must not match ErrServer")
	}

	wrapped := fmt.Errorf("translate: %w", err)
	if !stderrors.Is(wrapped, ErrRateLimit) {
		t.Error("wrapped error should still match ErrRateLimit")
	}
	if got := StatusOf(wrapped); got != 429 {
		t.Errorf("StatusOf(wrapped) = %d, want 429", got)
	}
}

func TestLocalErrorsCarryNoStatus(t *testing.T) {
	err := NewAuthentication("no API key")
	if err.HasStatus() {
		t.Error("local error should have no status")
	}
	if err.Body != nil {
		t.Errorf("local error body = %v, want nil", err.Body)
	}
	if !stderrors.Is(err, ErrAuthentication) {
		t.Error("NewAuthentication should match ErrAuthentication")
	}

	v := NewValidation("empty update")
	if KindOf(v) != KindValidation || StatusOf(v) != 0 {
		t.Errorf("unexpected validation error: kind=%s status=%d", KindOf(v), StatusOf(v))
	}
}

func TestErrorMessageAndDetail(t *testing.T) {
	body := map[string]any{"detail": "Text too long", "code": "E42"}
	err := FromResponse(400, body, "Text too long")

	if err.Error() != "Text too long" {
		t.Errorf("Error() = %q", err.Error())
	}
	var v *ValidationError
	if !stderrors.As(err, &v) {
		t.Fatal("expected *ValidationError")
	}
	if v.Detail() != "Text too long" {
		t.Errorf("Detail() = %q", v.Detail())
	}
	if BodyOf(err)["code"] != "E42" {
		t.Errorf("BodyOf lost extra fields: %v", BodyOf(err))
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(stderrors.New("boom")); got != KindUnknown {
		t.Errorf("KindOf(foreign) = %s, want unknown", got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("KindOf(nil) = %s, want unknown", got)
	}
}
