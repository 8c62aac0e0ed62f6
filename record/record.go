/*
Package record provides value semantics for message records.

A message record is a plain Go struct passed by value. The helpers here give every record the same
structural equality, a stable hash, a stable string form for logs and tests, and construction-time
validation driven by `validate` struct tags.
*/
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/internal/structs"
)

var timeType = reflect.TypeOf(time.Time{})

// presence is implemented by optional.Value.
type presence interface {
	Any() (any, bool)
	MapAny(f func(any) any) any
}

// Equal reports whether a and b are records of the same type holding structurally equal values.
// Timestamps compare by instant, so the same moment in two locations is equal.
func Equal(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}

	if va.Type() != vb.Type() {
		return false
	}

	return equalValue(va, vb)
}

// Hash returns a stable 64-bit hash of the record's JSON encoding. Equal records hash equally.
func Hash(v any) (uint64, error) {
	b, err := json.Marshal(normalise(v))
	if err != nil {
		return 0, fmt.Errorf("hash %T: %w", v, errors.Join(cerr.ErrSerializationFailed, err))
	}

	return xxhash.Sum64(b), nil
}

// String renders v as TypeName{field=value, ...} using logical field names in declaration order.
func String(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "<nil>"
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return "<nil>"
	}

	var b strings.Builder
	writeValue(&b, rv)

	return b.String()
}

func writeValue(b *strings.Builder, v reflect.Value) {
	if (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		b.WriteString("<nil>")
		return
	}

	if !v.CanInterface() {
		fmt.Fprint(b, v)
		return
	}

	if v.Type() == timeType {
		b.WriteString(v.Interface().(time.Time).UTC().Format(time.RFC3339Nano))
		return
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		b.WriteString(s.String())
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		schema := structs.Of(v.Type())
		b.WriteString(v.Type().Name())
		b.WriteByte('{')

		for i, f := range schema.Fields {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(f.Name)
			b.WriteByte('=')
			writeValue(b, v.FieldByIndex(f.Index))
		}

		b.WriteByte('}')
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')

		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}

			writeValue(b, v.Index(i))
		}

		b.WriteByte(']')
	case reflect.Ptr, reflect.Interface:
		writeValue(b, v.Elem())
	default:
		fmt.Fprint(b, v.Interface())
	}
}

func equalValue(a, b reflect.Value) bool {
	if a.Type() == timeType && a.CanInterface() && b.CanInterface() {
		return a.Interface().(time.Time).Equal(b.Interface().(time.Time))
	}

	if a.Kind() == reflect.Struct && a.CanInterface() && b.CanInterface() {
		if pa, ok := a.Interface().(presence); ok {
			ia, oka := pa.Any()
			ib, okb := b.Interface().(presence).Any()

			if !oka || !okb {
				return oka == okb
			}

			return Equal(ia, ib)
		}
	}

	switch a.Kind() {
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !equalValue(a.Field(i), b.Field(i)) {
				return false
			}
		}

		return true
	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}

		for i := 0; i < a.Len(); i++ {
			if !equalValue(a.Index(i), b.Index(i)) {
				return false
			}
		}

		return true
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}

		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equalValue(iter.Value(), bv) {
				return false
			}
		}

		return true
	case reflect.Ptr, reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}

		if a.Elem().Type() != b.Elem().Type() {
			return false
		}

		return equalValue(a.Elem(), b.Elem())
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	default:
		// funcs, chans and unsafe pointers have no structural value.
		return false
	}
}

// normalise returns a copy of v with timestamps in UTC, nil slices and maps made empty and negative
// zero made positive, so that Hash agrees with Equal. v itself is never modified.
func normalise(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return v
	}

	out := reflect.New(rv.Type()).Elem()
	out.Set(rv)
	utc(out)

	return out.Interface()
}

func utc(v reflect.Value) {
	if !v.CanSet() {
		return
	}

	if v.Type() == timeType {
		v.Set(reflect.ValueOf(v.Interface().(time.Time).UTC()))
		return
	}

	if v.Kind() == reflect.Struct {
		if p, ok := v.Interface().(presence); ok {
			v.Set(reflect.ValueOf(p.MapAny(normalise)))
			return
		}
	}

	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			utc(v.Field(i))
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			utc(v.Index(i))
		}
	case reflect.Slice:
		// nil and empty slices are equal records, so both encode as [].
		if v.IsNil() {
			v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			return
		}

		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(cp, v)
		v.Set(cp)

		for i := 0; i < v.Len(); i++ {
			utc(v.Index(i))
		}
	case reflect.Map:
		cp := reflect.MakeMapWithSize(v.Type(), v.Len())

		iter := v.MapRange()
		for iter.Next() {
			e := reflect.New(v.Type().Elem()).Elem()
			e.Set(iter.Value())
			utc(e)
			cp.SetMapIndex(iter.Key(), e)
		}

		v.Set(cp)
	case reflect.Ptr:
		if v.IsNil() {
			return
		}

		e := reflect.New(v.Type().Elem())
		e.Elem().Set(v.Elem())
		utc(e.Elem())
		v.Set(e)
	case reflect.Interface:
		if v.IsNil() {
			return
		}

		e := reflect.New(v.Elem().Type()).Elem()
		e.Set(v.Elem())
		utc(e)
		v.Set(e)
	case reflect.Float32, reflect.Float64:
		if v.Float() == 0 {
			v.SetFloat(0)
		}
	}
}
