package services

import "fmt"

// ErrorKind classifies a domain failure. Controllers map kinds to HTTP
// status codes; the core never renders messages for end users itself.
type ErrorKind string

const (
	KindInvalidPartySize  ErrorKind = "invalid_party_size"
	KindCapacityExceeded  ErrorKind = "capacity_exceeded"
	KindInvalidSchedule   ErrorKind = "invalid_schedule"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindIllegalDelete     ErrorKind = "illegal_delete"
	KindBusy              ErrorKind = "busy"
	KindNotFound          ErrorKind = "not_found"
)

// DomainError carries the failure kind plus the offending field so the
// API layer can render a precise message. Matched with errors.Is against
// the Err* sentinels below.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any DomainError of the same kind, so
// errors.Is(err, ErrCapacityExceeded) works regardless of detail.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrInvalidPartySize  = &DomainError{Kind: KindInvalidPartySize}
	ErrCapacityExceeded  = &DomainError{Kind: KindCapacityExceeded}
	ErrInvalidSchedule   = &DomainError{Kind: KindInvalidSchedule}
	ErrInvalidTransition = &DomainError{Kind: KindInvalidTransition}
	ErrIllegalDelete     = &DomainError{Kind: KindIllegalDelete}
	ErrBusy              = &DomainError{Kind: KindBusy}
	ErrNotFound          = &DomainError{Kind: KindNotFound}
)

func domainErrf(kind ErrorKind, field, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
