package message

import (
	"fmt"
	"strings"
)

// Role is the fixed purpose of a registered message type.
type Role int

const (
	RoleCommand Role = iota + 1
	RoleEvent
	RoleQuery
	RoleQueryResult
)

func (r Role) String() string {
	switch r {
	case RoleCommand:
		return "command"
	case RoleEvent:
		return "event"
	case RoleQuery:
		return "query"
	case RoleQueryResult:
		return "query-result"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the four declared roles.
func (r Role) Valid() bool { return r >= RoleCommand && r <= RoleQueryResult }

// ParseRole is the inverse of Role.String. It is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "command":
		return RoleCommand, nil
	case "event":
		return RoleEvent, nil
	case "query":
		return RoleQuery, nil
	case "query-result", "queryresult", "result":
		return RoleQueryResult, nil
	default:
		return 0, fmt.Errorf("unknown message role %q", s)
	}
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("marshal %s: invalid role", r)
	}

	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}

	*r = v

	return nil
}

// subjectPrefix is the routing prefix for envelopes of this role.
func (r Role) subjectPrefix() string {
	switch r {
	case RoleCommand:
		return "cmd"
	case RoleEvent:
		return "evt"
	case RoleQuery:
		return "qry"
	case RoleQueryResult:
		return "res"
	default:
		return "msg"
	}
}
