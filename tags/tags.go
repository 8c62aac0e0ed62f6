/*
Package tags derives event correlation tags.

A tag is a (key, value) pair an event store uses to index events by entity. Tags are declared on
event fields with the `eventtag` struct tag:

	type GuestCheckedIn struct {
	    CheckedInAt time.Time `json:"checkedInAt"`
	    BookingID   string    `json:"bookingId" eventtag:"Booking"`
	    GuestID     string    `json:"guestId" eventtag:"Guest"`
	}
*/
package tags

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/next-trace/scg-message-catalog/internal/structs"
)

// StructTag is the struct tag key that marks an event field as a correlation tag.
const StructTag = "eventtag"

// Tag is one correlation tag.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (t Tag) String() string { return t.Key + "=" + t.Value }

// Set is an order-independent collection of tags. The zero value is an empty set.
type Set struct {
	tags []Tag
}

// New builds a set. Declaration order is irrelevant; duplicates collapse.
func New(tags ...Tag) Set {
	uniq := lo.Uniq(tags)
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].Key != uniq[j].Key {
			return uniq[i].Key < uniq[j].Key
		}

		return uniq[i].Value < uniq[j].Value
	})

	return Set{tags: uniq}
}

// Of extracts the tags declared on v's fields. Fields holding an empty value are skipped.
func Of(v any) Set {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Set{}
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return Set{}
	}

	schema := structs.Of(rv.Type())
	if schema == nil {
		return Set{}
	}

	var out []Tag

	for _, f := range schema.Fields {
		key, ok := f.Tag.Lookup(StructTag)
		if !ok || key == "" {
			continue
		}

		val := render(rv.FieldByIndex(f.Index))
		if val == "" {
			continue
		}

		out = append(out, Tag{Key: key, Value: val})
	}

	return New(out...)
}

// Keys returns the declared tag keys of a record type, in declaration order.
func Keys(t reflect.Type) []string {
	schema := structs.Of(t)
	if schema == nil {
		return nil
	}

	return lo.FilterMap(schema.Fields, func(f structs.Field, _ int) (string, bool) {
		key, ok := f.Tag.Lookup(StructTag)
		return key, ok && key != ""
	})
}

// Len is the number of tags in the set.
func (s Set) Len() int { return len(s.tags) }

// Tags returns a copy of the tags, sorted by key then value.
func (s Set) Tags() []Tag { return append([]Tag(nil), s.tags...) }

// Get returns the value of the first tag with the given key. A key may carry several values; use
// Values or Has to see all of them.
func (s Set) Get(key string) (string, bool) {
	t, ok := lo.Find(s.tags, func(t Tag) bool { return t.Key == key })
	return t.Value, ok
}

// Values returns every value tagged under key, sorted.
func (s Set) Values(key string) []string {
	return lo.FilterMap(s.tags, func(t Tag, _ int) (string, bool) { return t.Value, t.Key == key })
}

// Has reports whether the set holds the tag key=value.
func (s Set) Has(key, value string) bool {
	return lo.Contains(s.tags, Tag{Key: key, Value: value})
}

// Equal reports whether both sets hold the same tags, regardless of the order they were declared in.
func (s Set) Equal(other Set) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}

	for i := range s.tags {
		if s.tags[i] != other.tags[i] {
			return false
		}
	}

	return true
}

// Headers renders the set as transport headers, one per tag, keyed prefix+Key.
// Repeated keys join their values with a comma.
func (s Set) Headers(prefix string) map[string]string {
	h := make(map[string]string, len(s.tags))
	for _, t := range s.tags {
		k := prefix + t.Key
		if prev, ok := h[k]; ok {
			h[k] = prev + "," + t.Value
			continue
		}

		h[k] = t.Value
	}

	return h
}

func (s Set) String() string {
	return "[" + strings.Join(lo.Map(s.tags, func(t Tag, _ int) string { return t.String() }), " ") + "]"
}

// MarshalJSON encodes the set as a JSON array of tags.
func (s Set) MarshalJSON() ([]byte, error) {
	if len(s.tags) == 0 {
		return []byte("[]"), nil
	}

	return json.Marshal(s.tags)
}

// UnmarshalJSON decodes a JSON array of tags.
func (s *Set) UnmarshalJSON(b []byte) error {
	var in []Tag
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*s = New(in...)

	return nil
}

func render(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}

		v = v.Elem()
	}

	if p, ok := v.Interface().(interface{ IsPresent() bool }); ok && !p.IsPresent() {
		return ""
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	if v.Kind() == reflect.String {
		return v.String()
	}

	return fmt.Sprint(v.Interface())
}
