package shared

// DomainError is an error with a stable machine-readable code. The
// transport layer maps codes onto HTTP statuses, so services return
// these instead of raw strings.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates an error for the given code
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

var (
	// ErrNotFound is what repositories return when no row matches
	ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
	// ErrUnauthorized is returned when the caller's role does not allow
	// the requested operation
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)
