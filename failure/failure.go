/*
Package failure defines the Failure Signals raised when a business rule is violated.

A Signal names the rule that was broken (its Kind), groups it in one of a closed set of categories,
and carries a human-readable message that reaches the caller verbatim. Signals describe deterministic
outcomes of the input; they are never retried.

	if taken {
	    return failure.EmailAlreadyRegistered("email already in use")
	}

	var sig *failure.Signal
	if errors.As(err, &sig) && sig.Kind() == failure.KindEmailAlreadyRegistered { ... }
	if errors.Is(err, failure.KindEmailAlreadyRegistered) { ... }
*/
package failure

import "errors"

// Category groups failure kinds by the nature of the violated rule.
type Category int

const (
	// AlreadyExists: an entity already exists under a unique key.
	AlreadyExists Category = iota + 1
	// ForbiddenByState: the operation is not allowed in the entity's current state.
	ForbiddenByState
	// Unavailable: the requested resource is held by someone else.
	Unavailable
	// InvalidInput: the request carried data a rule rejects.
	InvalidInput
	// Expired: a time-limited grant is no longer valid.
	Expired
)

var categoryNames = map[Category]string{
	AlreadyExists:    "already_exists",
	ForbiddenByState: "forbidden_by_state",
	Unavailable:      "unavailable",
	InvalidInput:     "invalid_input",
	Expired:          "expired",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}

	return "unknown"
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Kind names a failure variant, e.g. "EmailAlreadyRegistered". A Kind is also an error so
// errors.Is(err, KindX) matches any Signal of that kind.
type Kind string

func (k Kind) Error() string { return string(k) }

// Signal is a named business-rule failure. Its kind, category and message are fixed at construction.
type Signal struct {
	kind     Kind
	category Category
	message  string
}

// New builds a Signal.
func New(kind Kind, category Category, message string) *Signal {
	return &Signal{kind: kind, category: category, message: message}
}

// Kind returns the failure variant.
func (s *Signal) Kind() Kind { return s.kind }

// Category returns the failure category.
func (s *Signal) Category() Category { return s.category }

// Message returns the message exactly as it was raised.
func (s *Signal) Message() string { return s.message }

// Error returns the message verbatim.
func (s *Signal) Error() string { return s.message }

// Is matches a Kind target against the signal's kind.
func (s *Signal) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == s.kind
}

// As returns the first Signal in err's chain.
func As(err error) (*Signal, bool) {
	var s *Signal
	if errors.As(err, &s) {
		return s, true
	}

	return nil, false
}

// KindOf returns the kind of the first Signal in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	if s, ok := As(err); ok {
		return s.kind
	}

	return ""
}

// IsCategory reports whether err carries a Signal of category c.
func IsCategory(err error, c Category) bool {
	s, ok := As(err)
	return ok && s.category == c
}
