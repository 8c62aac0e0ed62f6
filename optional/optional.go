// Package optional provides explicit present-or-absent values for optional record fields.
package optional

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value holds either a T or nothing. The zero value is absent.
// Value is comparable whenever T is, so records holding it keep == semantics.
type Value[T any] struct {
	v  T
	ok bool
}

// Some returns a present value.
func Some[T any](v T) Value[T] { return Value[T]{v: v, ok: true} }

// None returns an absent value.
func None[T any]() Value[T] { return Value[T]{} }

// FromPtr returns Some(*p) for a non-nil pointer and None otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

// IsPresent reports whether a value is held.
func (o Value[T]) IsPresent() bool { return o.ok }

// Any returns the held value boxed as any, and whether it is present.
func (o Value[T]) Any() (any, bool) {
	if !o.ok {
		return nil, false
	}

	return o.v, true
}

// MapAny applies f to a held value and returns the result as a Value[T]. An absent value, or a
// result that is not a T, is returned unchanged.
func (o Value[T]) MapAny(f func(any) any) any {
	if !o.ok {
		return o
	}

	if v, ok := f(o.v).(T); ok {
		return Some(v)
	}

	return o
}

// OrElse returns the held value or d when absent.
func (o Value[T]) OrElse(d T) T {
	if o.ok {
		return o.v
	}

	return d
}

// Ptr returns a pointer to a copy of the held value, or nil when absent.
func (o Value[T]) Ptr() *T {
	if !o.ok {
		return nil
	}

	v := o.v

	return &v
}

func (o Value[T]) String() string {
	if !o.ok {
		return "<absent>"
	}

	return fmt.Sprint(o.v)
}

// MarshalJSON encodes an absent value as null and a present one as T.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}

	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as absent.
func (o *Value[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*o = Some(v)

	return nil
}
