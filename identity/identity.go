/*
Package identity derives target identities from message records.

A target identity is the key an external dispatcher uses to route a command or event to a stateful
entity. It is built from one or more record fields in declared order and is comparable with ==.
*/
package identity

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Identity is a comparable target identity. The zero value means "no identity".
//
// A single-part identity renders as the scalar itself, so Of("B1") is the identity of a record whose
// only identity field holds "B1". Several parts render as a tuple: (B1,G1,C1).
//
// Equality is decided by a typed encoding of every part, so Of(1) and Of("1") differ, as do a nil part
// and an empty string, or the sequences ["a" "b"] and ["a b"].
type Identity struct {
	key   string
	text  string
	arity int
}

// TargetIdentifier is implemented by records that expose their identity directly instead of through
// a declared field list.
type TargetIdentifier interface {
	TargetIdentity() Identity
}

// presence is implemented by optional.Value.
type presence interface {
	Any() (any, bool)
}

// Part kind tags, the first byte of every encoded part.
const (
	kindNil      = 'n'
	kindAbsent   = 'x'
	kindString   = 's'
	kindStringer = 'S'
	kindInt      = 'i'
	kindUint     = 'u'
	kindFloat    = 'f'
	kindBool     = 'b'
	kindTime     = 't'
	kindIdentity = 'd'
	kindList     = 'l'
	kindOther    = 'v'
)

// Of builds an identity from ordered parts. Pointers are followed, optional values are unwrapped and
// sequences are encoded element by element.
func Of(parts ...any) Identity {
	if len(parts) == 0 {
		return Identity{}
	}

	var kb, tb strings.Builder
	for _, p := range parts {
		k, t := encode(p)
		writeLen(&kb, k)
		writeLen(&tb, t)
	}

	return Identity{key: kb.String(), text: tb.String(), arity: len(parts)}
}

// IsZero reports whether the identity carries no parts.
func (id Identity) IsZero() bool { return id.arity == 0 }

// Arity is the number of parts.
func (id Identity) Arity() int { return id.arity }

// Equal reports structural equality. It is equivalent to ==.
func (id Identity) Equal(other Identity) bool { return id == other }

// Matches reports whether the identity equals Of(parts...).
func (id Identity) Matches(parts ...any) bool { return id == Of(parts...) }

// Parts returns the rendered form of every part, in declared order.
func (id Identity) Parts() []string { return splitLen(id.text, id.arity) }

// Blank returns the index of the first part that is nil, an absent optional, or renders as the empty
// string. It returns -1 when every part carries a value.
func (id Identity) Blank() int {
	for i, k := range splitLen(id.key, id.arity) {
		if blank(k) {
			return i
		}
	}

	return -1
}

// String renders the scalar for a single part and a parenthesised tuple for several.
func (id Identity) String() string {
	switch id.arity {
	case 0:
		return ""
	case 1:
		return id.Parts()[0]
	default:
		return "(" + strings.Join(id.Parts(), ",") + ")"
	}
}

// MarshalText encodes the identity with String so it can be used as a JSON value or map key.
func (id Identity) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func writeLen(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func splitLen(s string, n int) []string {
	out := make([]string, 0, n)

	for s != "" {
		sep := strings.IndexByte(s, ':')
		l, _ := strconv.Atoi(s[:sep])
		out = append(out, s[sep+1:sep+1+l])
		s = s[sep+1+l:]
	}

	return out
}

func blank(k string) bool {
	switch k[0] {
	case kindNil, kindAbsent:
		return true
	case kindList:
		return false
	default:
		return len(k) == 1
	}
}

func tagged(kind byte, s string) (string, string) { return string(kind) + s, s }

// encode returns the typed key of one part and its rendered text.
func encode(v any) (string, string) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return tagged(kindNil, "")
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return tagged(kindNil, "")
	}

	if !rv.CanInterface() {
		return tagged(kindOther, fmt.Sprint(rv))
	}

	switch x := rv.Interface().(type) {
	case presence:
		inner, ok := x.Any()
		if !ok {
			return tagged(kindAbsent, "")
		}

		return encode(inner)
	case Identity:
		return string(kindIdentity) + x.key, x.String()
	case time.Time:
		return tagged(kindTime, x.UTC().Format(time.RFC3339Nano))
	case string:
		return tagged(kindString, x)
	case fmt.Stringer:
		return tagged(kindStringer, x.String())
	case bool:
		return tagged(kindBool, strconv.FormatBool(x))
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tagged(kindInt, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return tagged(kindUint, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == 0 {
			f = 0 // -0 and 0 are one identity
		}

		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}

		return tagged(kindFloat, strconv.FormatFloat(f, 'g', -1, bits))
	case reflect.String:
		return tagged(kindString, rv.String())
	case reflect.Bool:
		return tagged(kindBool, strconv.FormatBool(rv.Bool()))
	case reflect.Slice, reflect.Array:
		var kb, tb strings.Builder

		kb.WriteByte(kindList)
		tb.WriteByte('[')

		for i := 0; i < rv.Len(); i++ {
			k, t := encode(rv.Index(i).Interface())
			writeLen(&kb, k)

			if i > 0 {
				tb.WriteByte(' ')
			}

			tb.WriteString(t)
		}

		tb.WriteByte(']')

		return kb.String(), tb.String()
	default:
		return tagged(kindOther, fmt.Sprint(rv.Interface()))
	}
}
