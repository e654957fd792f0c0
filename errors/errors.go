package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError is returned by the backend client for any non-2xx response.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Parser errors
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// Editor transition errors
var (
	ErrNotEditing   = fmt.Errorf("schedule is not being edited")
	ErrNotValidated = fmt.Errorf("schedule has not been validated")
	ErrUnknownSlot  = fmt.Errorf("unknown slot")
	ErrUnknownField = fmt.Errorf("unknown slot field")
)

// Backend client errors
var (
	ErrUnauthorized     = fmt.Errorf("unauthorized")
	ErrNotFound         = fmt.Errorf("not found")
	ErrUnexpectedStatus = fmt.Errorf("unexpected status")
	ErrMissingBaseURL   = fmt.Errorf("backend base URL is not configured")
)
