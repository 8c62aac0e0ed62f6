// Package structs caches per-type field metadata for message record structs.
package structs

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one exported field of a record struct.
type Field struct {
	// Name is the logical name: the json tag name when present, else the Go field name.
	Name   string
	GoName string
	Index  []int
	Type   reflect.Type
	Tag    reflect.StructTag
}

// Schema is the cached field list of a struct type in declaration order.
type Schema struct {
	Type   reflect.Type
	Fields []Field
	byName map[string]int
}

var cache sync.Map // reflect.Type -> *Schema

// Of returns the schema of t, dereferencing pointers. It returns nil when t is not a struct.
func Of(t reflect.Type) *Schema {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if s, ok := cache.Load(t); ok {
		return s.(*Schema)
	}

	s, _ := cache.LoadOrStore(t, scan(t))

	return s.(*Schema)
}

// Lookup finds a field by logical name or Go name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}

	return s.Fields[i], true
}

// Value returns the field value of v, which must be of the schema's type or a pointer to it.
func (s *Schema) Value(v reflect.Value, f Field) reflect.Value {
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return v.FieldByIndex(f.Index)
}

func scan(t reflect.Type) *Schema {
	s := &Schema{Type: t, byName: make(map[string]int)}

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			jn, _, _ := strings.Cut(tag, ",")
			if jn == "-" {
				continue
			}

			if jn != "" {
				name = jn
			}
		}

		s.byName[name] = len(s.Fields)
		if _, taken := s.byName[sf.Name]; !taken {
			s.byName[sf.Name] = len(s.Fields)
		}

		s.Fields = append(s.Fields, Field{
			Name:   name,
			GoName: sf.Name,
			Index:  sf.Index,
			Type:   sf.Type,
			Tag:    sf.Tag,
		})
	}

	return s
}
