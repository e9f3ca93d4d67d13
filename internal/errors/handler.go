package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"findash/internal/analytics"
	"findash/internal/dataprocessing"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details. The
// two engine failure regimes map onto distinct problem types: a
// missing or malformed workbook is a 503, arithmetic failures in the
// statistics are 422s that name the failing computation.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var srcErr *dataprocessing.SourceUnavailableError
	if errors.As(err, &srcErr) {
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeSourceUnavailable,
			"Source Unavailable",
			"The workbook backing the record set is missing or unreadable",
			r.URL.Path,
		).WithExtension("source_path", srcErr.Path)
	}

	var compErr *analytics.ComputationError
	if errors.As(err, &compErr) {
		problemType := TypeDivisionByZero
		title := "Division By Zero"
		if compErr.Kind == analytics.KindEmptyInput {
			problemType = TypeEmptyInput
			title = "Empty Input"
		}
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			problemType,
			title,
			err.Error(),
			r.URL.Path,
		).WithExtension("operation", compErr.Op)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing the request",
		r.URL.Path,
	)
}

// HandlePanic converts a recovered panic value into a 500 response.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing the request",
		r.URL.Path,
	)
	render.Render(w, r, problem)
}
