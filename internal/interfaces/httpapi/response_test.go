package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

func TestMapError_StatusAndMessage(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, msgInvalidPayload},
		{"negative score", usecase.ErrNegativeScore, http.StatusBadRequest, msgNegativeScore},
		{"predictions closed", usecase.ErrPredictionsClosed, http.StatusBadRequest, msgPredictionsClosed},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, msgFixtureNotFound},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, msgUnauthorized},
		{"fixture lookup", usecase.ErrFixtureLookup, http.StatusInternalServerError, msgFixtureLookupFailed},
		{"prediction save", usecase.ErrPredictionSave, http.StatusInternalServerError, msgPredictionSaveFailed},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, msgDependencyUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(context.Background(), fmt.Errorf("%w: detail", tc.err))
			if mapped.HTTPStatus != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, mapped.HTTPStatus)
			}
			if mapped.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, mapped.Message)
			}
		})
	}
}

func TestWriteError_BodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: score -1", usecase.ErrNegativeScore))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["error"] != msgNegativeScore {
		t.Fatalf("unexpected error body: %v", body)
	}
	if len(body) != 1 {
		t.Fatalf("expected only the error key, got %v", body)
	}
}

func TestWriteInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["error"] != msgInternalError {
		t.Fatalf("unexpected body: %v", body)
	}
}
