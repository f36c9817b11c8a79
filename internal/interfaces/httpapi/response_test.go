package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/scorepadhq/scorepad/internal/usecase"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{"stale round", fmt.Errorf("save: %w", usecase.ErrStaleRound), http.StatusConflict, "staleRound", "ABORTED"},
		{"duplicate name", usecase.ErrDuplicateName, http.StatusConflict, "conflict", "ALREADY_EXISTS"},
		{"already admin", usecase.ErrAlreadyAdmin, http.StatusConflict, "conflict", "ALREADY_EXISTS"},
		{"score out of range", usecase.ErrScoreOutOfRange, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{"incomplete round", usecase.ErrIncompleteRound, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{"not an admin", usecase.ErrNotAnAdmin, http.StatusForbidden, "notAnAdmin", "PERMISSION_DENIED"},
		{"set not found", usecase.ErrSetNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
		{"user not found", usecase.ErrUserNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
		{"cannot remove creator", usecase.ErrCannotRemoveCreator, http.StatusForbidden, "cannotRemoveCreator", "PERMISSION_DENIED"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{"dependency down", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("status: want %d, got %d", tc.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("reason: want %s, got %s", tc.wantReason, mapped.Reason)
			}
			if mapped.Status != tc.wantCode {
				t.Fatalf("grpc status: want %s, got %s", tc.wantCode, mapped.Status)
			}
		})
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"id": "p1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("unexpected apiVersion: %s", envelope.APIVersion)
	}
	if envelope.Error != nil {
		t.Fatalf("success envelope must not carry an error")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("commit: %w", usecase.ErrStaleRound))

	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error == nil {
		t.Fatalf("error envelope missing error body")
	}
	if envelope.Error.Code != http.StatusConflict || envelope.Error.Status != "ABORTED" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
	if len(envelope.Error.Errors) != 1 || envelope.Error.Errors[0].Domain != errorDomain {
		t.Fatalf("unexpected error items: %+v", envelope.Error.Errors)
	}
	if envelope.Error.Errors[0].Reason != "staleRound" {
		t.Fatalf("unexpected reason: %s", envelope.Error.Errors[0].Reason)
	}
}

func TestWriteInternalError_HidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "panic") {
		t.Fatalf("internal error body must stay generic")
	}

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Message != "internal server error" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}
