package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTTP_Mapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"domain_400", &DomainError{Code: 400, Message: "bad"}, http.StatusBadRequest, "invalid_argument"},
		{"domain_401", &DomainError{Code: 401}, http.StatusUnauthorized, "unauthenticated"},
		{"domain_403", &DomainError{Code: 403}, http.StatusForbidden, "permission_denied"},
		{"domain_404", &DomainError{Code: 404}, http.StatusNotFound, "not_found"},
		{"domain_409", &DomainError{Code: 409}, http.StatusConflict, "already_exists"},
		{"domain_500", &DomainError{Code: 500}, http.StatusBadGateway, "upstream_error"},
		{"wrapped_domain", fmt.Errorf("op: %w", &DomainError{Code: 404}), http.StatusNotFound, "not_found"},
		{"validation", Invalid("content", "empty"), http.StatusBadRequest, "validation_failed"},
		{"transport", fmt.Errorf("%w: dial", ErrTransport), http.StatusServiceUnavailable, "unavailable"},
		{"transport_deadline", fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"decode", fmt.Errorf("%w: eof", ErrDecode), http.StatusBadGateway, "bad_gateway"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "permission_denied"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"hydrating", ErrHydrating, http.StatusConflict, "hydrating"},
		{"stale", ErrStale, http.StatusConflict, "stale"},
		{"not_found", ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestToHTTP_DomainMessagePassesThrough(t *testing.T) {
	_, resp := ToHTTP(&DomainError{Code: 400, Message: "project already submitted"})
	require.Equal(t, "project already submitted", resp.Error.Message)
}

func TestWriteError_AddsRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("X-Request-Id", "rid-1")
	w := httptest.NewRecorder()

	WriteError(w, r, Invalid("content", "empty"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "rid-1", body.Error.RequestID)
	require.Equal(t, map[string]string{"content": "empty"}, body.Error.Fields)
}

func TestToNotice(t *testing.T) {
	tcs := []struct {
		name    string
		in      error
		kind    Kind
		key     string
		message string
	}{
		{"domain", &DomainError{Code: 400, Message: "bad tag"}, KindError, KeyDomain, "bad tag"},
		{"validation", Invalid("content", "must not be empty"), KindWarning, KeyValidation, "must not be empty"},
		{"timeout", fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded), KindError, KeyTimeout, ""},
		{"transport", ErrTransport, KindError, KeyTransport, ""},
		{"decode", ErrDecode, KindError, KeyDecode, ""},
		{"forbidden", ErrForbidden, KindWarning, KeyForbidden, ""},
		{"stale", ErrStale, KindInfo, KeyStale, ""},
		{"unknown", stderrors.New("x"), KindError, KeyInternal, ""},
		{"nil", nil, KindError, KeyInternal, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			n := ToNotice(tc.in)
			require.Equal(t, tc.kind, n.Kind)
			require.Equal(t, tc.key, n.Key)
			require.Equal(t, tc.message, n.Message)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	require.Equal(t, "validation failed: a: one; b: two", ve.Error())
	require.Equal(t, "validation failed", (&ValidationError{}).Error())
	require.Equal(t, "one", firstField(ve))
}
