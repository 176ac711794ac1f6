package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeStore      ErrorType = "store"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeDispatch   ErrorType = "dispatch"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeDispatch:
		h.logger.WarnContext(ctx, "Request error", err.LogFields()...)
	case ErrorTypeStore, ErrorTypeExternal, ErrorTypeInternal, ErrorTypeTimeout:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors covering the fulfillment failure taxonomy
var (
	ErrStoreReadFailed     = New(ErrorTypeStore, "STORE_READ_FAILED", "Failed to read record from store")
	ErrStoreWriteFailed    = New(ErrorTypeStore, "STORE_WRITE_FAILED", "Failed to write record to store")
	ErrUpstreamUnavailable = New(ErrorTypeExternal, "UPSTREAM_UNAVAILABLE", "Text generation upstream unavailable")
	ErrUnknownIntent       = New(ErrorTypeDispatch, "UNKNOWN_INTENT", "No handler registered for intent")
	ErrTimeout             = New(ErrorTypeTimeout, "TIMEOUT", "Operation timed out")
	ErrInvalidInput        = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
)

// Convenience constructors for common failure kinds

func NewStoreReadError(err error) *AppError {
	return Wrap(err, ErrorTypeStore, "STORE_READ_FAILED", "Failed to read record from store")
}

func NewStoreWriteError(err error) *AppError {
	return Wrap(err, ErrorTypeStore, "STORE_WRITE_FAILED", "Failed to write record to store")
}

func NewUpstreamError(err error, provider string) *AppError {
	return Wrap(err, ErrorTypeExternal, "UPSTREAM_UNAVAILABLE", fmt.Sprintf("%s upstream error", provider)).
		WithContext("provider", provider)
}

func NewUnknownIntentError(intent string) *AppError {
	return New(ErrorTypeDispatch, "UNKNOWN_INTENT", fmt.Sprintf("no handler registered for intent %q", intent)).
		WithContext("intent", intent)
}
