package identity

import (
	"fmt"
	"reflect"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/internal/structs"
)

// FieldResolver extracts a target identity from a fixed, ordered list of record fields.
// The field list is checked against the record type when the resolver is built, so Resolve
// never fails. FieldResolver is immutable and safe for concurrent use.
type FieldResolver struct {
	typ    reflect.Type
	schema *structs.Schema
	fields []structs.Field
	names  []string
}

// ResolverFor builds a resolver for records of type t using the named fields (logical or Go names).
// It returns ErrMalformedIdentity when the list is empty, repeats a field, or names a field t does
// not have.
func ResolverFor(t reflect.Type, fields ...string) (*FieldResolver, error) {
	schema := structs.Of(t)
	if schema == nil {
		return nil, fmt.Errorf("identity for %v: not a struct type: %w", t, cerr.ErrMalformedIdentity)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("identity for %s: no fields declared: %w", schema.Type, cerr.ErrMalformedIdentity)
	}

	r := &FieldResolver{typ: schema.Type, schema: schema}
	seen := make(map[string]struct{}, len(fields))

	for _, name := range fields {
		f, ok := schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("identity for %s: unknown field %q: %w", schema.Type, name, cerr.ErrMalformedIdentity)
		}

		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("identity for %s: field %q declared twice: %w", schema.Type, name, cerr.ErrMalformedIdentity)
		}

		seen[f.Name] = struct{}{}
		r.fields = append(r.fields, f)
		r.names = append(r.names, f.Name)
	}

	return r, nil
}

// Fields returns the logical field names in declared order.
func (r *FieldResolver) Fields() []string { return append([]string(nil), r.names...) }

// Type returns the record type the resolver was built for.
func (r *FieldResolver) Type() reflect.Type { return r.typ }

// Resolve extracts the identity of v. v must be a record of the resolver's type (or a pointer to
// one); any other value yields the zero Identity.
func (r *FieldResolver) Resolve(v any) Identity {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Identity{}
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() || rv.Type() != r.typ {
		return Identity{}
	}

	parts := make([]any, len(r.fields))
	for i, f := range r.fields {
		parts[i] = rv.FieldByIndex(f.Index).Interface()
	}

	return Of(parts...)
}

// Resolver is the typed form of FieldResolver.
type Resolver[T any] struct {
	inner *FieldResolver
}

// NewResolver builds a Resolver for records of type T.
func NewResolver[T any](fields ...string) (Resolver[T], error) {
	inner, err := ResolverFor(reflect.TypeOf((*T)(nil)).Elem(), fields...)
	if err != nil {
		return Resolver[T]{}, err
	}

	return Resolver[T]{inner: inner}, nil
}

// MustResolver is NewResolver for package-level declarations; it panics on a malformed field list.
func MustResolver[T any](fields ...string) Resolver[T] {
	r, err := NewResolver[T](fields...)
	if err != nil {
		panic(err)
	}

	return r
}

// Fields returns the logical field names in declared order.
func (r Resolver[T]) Fields() []string {
	if r.inner == nil {
		return nil
	}

	return r.inner.Fields()
}

// Resolve extracts the identity of v. It is a pure function of v's identity fields.
func (r Resolver[T]) Resolve(v T) Identity {
	if r.inner == nil {
		return Identity{}
	}

	return r.inner.Resolve(v)
}

// Untyped exposes the underlying FieldResolver.
func (r Resolver[T]) Untyped() *FieldResolver { return r.inner }
