package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrorTypeConfig: configuration file or flag values are unusable
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeValidation: user input was rejected before any work started
	ErrorTypeValidation
	// ErrorTypeFileSystem: a file or directory could not be read or written
	ErrorTypeFileSystem
	// ErrorTypeProvider: git or the source parser could not be invoked
	ErrorTypeProvider
	// ErrorTypeParse: a provider returned output we could not understand
	ErrorTypeParse
	// ErrorTypeInternal: unexpected internal state
	ErrorTypeInternal
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeFileSystem:
		return "FILESYSTEM"
	case ErrorTypeProvider:
		return "PROVIDER"
	case ErrorTypeParse:
		return "PARSE"
	case ErrorTypeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Severity tells a pass boundary how loudly to report a failure it absorbs
type Severity int

const (
	// SeverityLow: one signal is missing or partial, the report is still useful
	SeverityLow Severity = iota
	// SeverityMedium: unclassified failures
	SeverityMedium
	// SeverityHigh: a whole pass lost its input
	SeverityHigh
	// SeverityCritical: the run cannot produce a report
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Error is a categorised failure carrying the context needed to log it
type Error struct {
	Type       ErrorType
	Severity   Severity
	Message    string
	Cause      error
	Context    map[string]interface{}
	StackTrace string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches a log field, e.g. the git command or the file path
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is matches another *Error of the same type, so errors.Is(err,
// &Error{Type: ErrorTypeProvider}) tests the category
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Type == t.Type
}

// DetailedString renders the error with its sorted context and stack, for
// debug logs
func (e *Error) DetailedString() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] [%s] %s\n", e.Severity, e.Type, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, "Caused by: %v\n", e.Cause)
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("Context:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %v\n", k, e.Context[k])
		}
	}

	if e.StackTrace != "" {
		fmt.Fprintf(&sb, "Stack trace:\n%s\n", e.StackTrace)
	}
	return sb.String()
}

// Fields returns the error context plus its type and severity as log fields
func (e *Error) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(e.Context)+2)
	for k, v := range e.Context {
		fields[k] = v
	}
	fields["error_type"] = e.Type.String()
	fields["severity"] = e.Severity.String()
	return fields
}

func captureStackTrace(skip int) string {
	var sb strings.Builder
	for i := skip; i < skip+10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			break
		}
		fmt.Fprintf(&sb, "  %s:%d %s\n", file, line, fn.Name())
	}
	return sb.String()
}

// New creates an error without a cause
func New(errType ErrorType, severity Severity, message string) *Error {
	return &Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// Wrap categorises err. A nil err yields nil.
func Wrap(err error, errType ErrorType, severity Severity, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Cause:      err,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// ConfigError reports an unusable configuration
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, SeverityCritical, message)
}

// ValidationErrorf reports rejected user input
func ValidationErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeValidation, SeverityHigh, fmt.Sprintf(format, args...))
}

// FileSystemError wraps an I/O failure on a repository or report path
func FileSystemError(err error, message string) *Error {
	return Wrap(err, ErrorTypeFileSystem, SeverityHigh, message)
}

// ProviderError wraps a failure to invoke git or the source parser.
// Provider failures degrade a signal, they never stop a run.
func ProviderError(err error, message string) *Error {
	return Wrap(err, ErrorTypeProvider, SeverityLow, message)
}

// ProviderErrorf wraps a provider failure with formatting
func ProviderErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeProvider, SeverityLow, fmt.Sprintf(format, args...))
}

// ParseError wraps unparsable provider output
func ParseError(err error, message string) *Error {
	return Wrap(err, ErrorTypeParse, SeverityLow, message)
}

// ParseErrorf wraps unparsable provider output with formatting
func ParseErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeParse, SeverityLow, fmt.Sprintf(format, args...))
}

// InternalErrorf reports a failure that indicates a bug
func InternalErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeInternal, SeverityCritical, fmt.Sprintf(format, args...))
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// GetSeverity returns the severity of the first *Error in err's chain.
// Errors from outside this package are SeverityMedium.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityLow
	}
	if e, ok := as(err); ok {
		return e.Severity
	}
	return SeverityMedium
}

// GetType returns the type of the first *Error in err's chain, or
// ErrorTypeInternal
func GetType(err error) ErrorType {
	if e, ok := as(err); ok {
		return e.Type
	}
	return ErrorTypeInternal
}

// Detail returns the DetailedString of a structured error, or "" for plain
// errors
func Detail(err error) string {
	if e, ok := as(err); ok {
		return e.DetailedString()
	}
	return ""
}

// LogFields returns structured log fields for any error. Structured errors
// also contribute their context.
func LogFields(err error) map[string]interface{} {
	if err == nil {
		return map[string]interface{}{}
	}
	if e, ok := as(err); ok {
		fields := e.Fields()
		fields["error"] = err.Error()
		return fields
	}
	return map[string]interface{}{"error": err.Error()}
}
