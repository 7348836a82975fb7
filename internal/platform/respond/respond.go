// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for the frontend SPA to parse data robustly.
//
// # Envelope
//
// Every response carries the same three top-level fields:
//
//	{"ok": true,  "data": {...},                         "meta": {"trace_id": "..."}}
//	{"ok": false, "error": {"code": ..., "message": ...}, "meta": {"trace_id": "..."}}
//
// Error paths deliberately use the same envelope as success paths (with the
// proper HTTP status) instead of a bare detail string.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/platform/ctxutil"
)

// Meta is the metadata block attached to every response envelope.
type Meta struct {
	TraceID string `json:"trace_id"`
}

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

// ErrorBody carries the machine-readable error payload.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, request *http.Request, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{
		OK:   true,
		Data: data,
		Meta: Meta{TraceID: ctxutil.GetTraceID(request.Context())},
	})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, request *http.Request, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{
		OK:   true,
		Data: data,
		Meta: Meta{TraceID: ctxutil.GetTraceID(request.Context())},
	})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("trace_id", ctxutil.GetTraceID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("trace_id", ctxutil.GetTraceID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		OK: false,
		Error: ErrorBody{
			Code:    appError.Code,
			Message: appError.Message,
			Details: appError.Details,
		},
		Meta: Meta{TraceID: ctxutil.GetTraceID(request.Context())},
	})
}
