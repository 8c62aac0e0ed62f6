package catalog

import (
	"reflect"
	"slices"

	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/internal/structs"
	"github.com/next-trace/scg-message-catalog/tags"
)

// Key is the unique (name, namespace) pair of a descriptor.
type Key struct {
	Name      string
	Namespace string
}

func (k Key) String() string { return k.Namespace + "/" + k.Name }

// Descriptor binds a record type to its logical name, namespace and role.
type Descriptor struct {
	Name      string
	Namespace string
	Role      message.Role
	Type      reflect.Type
	// Identity is the declared target identity field list, in order. Empty when the message
	// addresses no existing entity.
	Identity []string
	// TagKeys are the correlation tag keys declared on the record's fields.
	TagKeys []string

	resolver *identity.FieldResolver
}

// Field describes one field of a registered record.
type Field struct {
	Name     string
	GoName   string
	Type     string
	Identity bool
	Tag      string
	Rules    string
}

// Key returns the descriptor's (name, namespace) pair.
func (d Descriptor) Key() Key { return Key{Name: d.Name, Namespace: d.Namespace} }

// clone detaches the descriptor's slices from the registry's copy.
func (d Descriptor) clone() Descriptor {
	d.Identity = slices.Clone(d.Identity)
	d.TagKeys = slices.Clone(d.TagKeys)

	return d
}

// HasIdentity reports whether a target identity was declared.
func (d Descriptor) HasIdentity() bool { return d.resolver != nil }

// Resolve extracts the target identity of v from the declared fields. It returns the zero Identity
// when no identity was declared or v has the wrong type.
func (d Descriptor) Resolve(v any) identity.Identity {
	if d.resolver == nil {
		return identity.Identity{}
	}

	return d.resolver.Resolve(v)
}

// Tags extracts the correlation tags of v.
func (d Descriptor) Tags(v any) tags.Set {
	if len(d.TagKeys) == 0 {
		return tags.Set{}
	}

	return tags.Of(v)
}

// Fields lists the record's fields in declaration order.
func (d Descriptor) Fields() []Field {
	schema := structs.Of(d.Type)
	if schema == nil {
		return nil
	}

	ids := make(map[string]bool, len(d.Identity))
	for _, n := range d.Identity {
		ids[n] = true
	}

	out := make([]Field, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		out = append(out, Field{
			Name:     f.Name,
			GoName:   f.GoName,
			Type:     f.Type.String(),
			Identity: ids[f.Name],
			Tag:      f.Tag.Get(tags.StructTag),
			Rules:    f.Tag.Get("validate"),
		})
	}

	return out
}

func (d Descriptor) String() string { return d.Role.String() + " " + d.Key().String() }
