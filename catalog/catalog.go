package catalog

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/tags"
)

// Catalog maps (name, namespace) pairs and record types to descriptors.
//
// Registration is serialised by a mutex. Once sealed the maps are never written again, so
// lookups read them without locking. Catalog contains no global state.
type Catalog struct {
	mu     sync.Mutex
	sealed atomic.Bool

	byKey  map[Key]Descriptor
	byType map[reflect.Type]Key

	logger *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for registration events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// DescriptorOption configures a single registration.
type DescriptorOption func(*registration)

type registration struct {
	identity []string
}

// WithIdentity declares the target identity fields of the record, in order. Names may be the json
// name or the Go field name.
func WithIdentity(fields ...string) DescriptorOption {
	return func(r *registration) { r.identity = append(r.identity, fields...) }
}

// New constructs an empty, unsealed Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		byKey:  make(map[Key]Descriptor),
		byType: make(map[reflect.Type]Key),
		logger: slog.Default(),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Register adds a descriptor for the type of sample. A failed registration leaves the catalog
// unchanged.
func (c *Catalog) Register(
	name, namespace string,
	role message.Role,
	sample any,
	opts ...DescriptorOption,
) (Descriptor, error) {
	if sample == nil {
		return Descriptor{}, fmt.Errorf("register %s/%s: nil sample: %w", namespace, name, cerr.ErrInvalidDescriptor)
	}

	return c.register(name, namespace, role, reflect.TypeOf(sample), opts...)
}

func (c *Catalog) register(
	name, namespace string,
	role message.Role,
	t reflect.Type,
	opts ...DescriptorOption,
) (Descriptor, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	key := Key{Name: name, Namespace: namespace}

	switch {
	case name == "" || namespace == "":
		return Descriptor{}, fmt.Errorf("register %s: empty name or namespace: %w", key, cerr.ErrInvalidDescriptor)
	case !role.Valid():
		return Descriptor{}, fmt.Errorf("register %s: %s: %w", key, role, cerr.ErrInvalidDescriptor)
	case t.Kind() != reflect.Struct:
		return Descriptor{}, fmt.Errorf("register %s: %s is not a record struct: %w", key, t, cerr.ErrInvalidDescriptor)
	}

	var r registration
	for _, o := range opts {
		o(&r)
	}

	d := Descriptor{
		Name:      name,
		Namespace: namespace,
		Role:      role,
		Type:      t,
		TagKeys:   tags.Keys(t),
	}

	if len(r.identity) > 0 {
		res, err := identity.ResolverFor(t, r.identity...)
		if err != nil {
			return Descriptor{}, fmt.Errorf("register %s: %w", key, err)
		}

		d.resolver = res
		d.Identity = res.Fields()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed.Load() {
		return Descriptor{}, fmt.Errorf("register %s: %w", key, cerr.ErrCatalogSealed)
	}

	if existing, ok := c.byKey[key]; ok {
		return Descriptor{}, fmt.Errorf("register %s: already bound to %s: %w", key, existing.Type, cerr.ErrDuplicateDescriptor)
	}

	if prev, ok := c.byType[t]; ok {
		return Descriptor{}, fmt.Errorf("register %s: %s already registered as %s: %w", key, t, prev, cerr.ErrDuplicateType)
	}

	c.byKey[key] = d
	c.byType[t] = key

	c.logger.Debug("catalog: registered", "name", name, "namespace", namespace, "role", role.String(),
		"type", t.String(), "identity", d.Identity, "tags", d.TagKeys)

	return d.clone(), nil
}

// RegisterCommand registers record type C as a command.
func RegisterCommand[C message.Command](c *Catalog, name, namespace string, opts ...DescriptorOption) (Descriptor, error) {
	return c.register(name, namespace, message.RoleCommand, typeOf[C](), opts...)
}

// RegisterEvent registers record type E as an event.
func RegisterEvent[E message.Event](c *Catalog, name, namespace string, opts ...DescriptorOption) (Descriptor, error) {
	return c.register(name, namespace, message.RoleEvent, typeOf[E](), opts...)
}

// RegisterQuery registers record type Q as a query.
func RegisterQuery[Q message.Query](c *Catalog, name, namespace string, opts ...DescriptorOption) (Descriptor, error) {
	return c.register(name, namespace, message.RoleQuery, typeOf[Q](), opts...)
}

// RegisterQueryResult registers record type R as a query result.
func RegisterQueryResult[R message.QueryResult](
	c *Catalog,
	name, namespace string,
	opts ...DescriptorOption,
) (Descriptor, error) {
	return c.register(name, namespace, message.RoleQueryResult, typeOf[R](), opts...)
}

// MustRegister panics when err is not nil. Use it for startup wiring, where a registration
// conflict must abort the process.
func MustRegister(d Descriptor, err error) Descriptor {
	if err != nil {
		panic(err)
	}

	return d
}

// Seal ends the registration phase. It is idempotent.
func (c *Catalog) Seal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed.Swap(true) {
		return
	}

	c.logger.Info("catalog: sealed", "descriptors", len(c.byKey))
}

// Sealed reports whether Seal has been called.
func (c *Catalog) Sealed() bool { return c.sealed.Load() }

// Lookup returns the descriptor registered under (name, namespace). The result is a copy; editing it
// does not change the catalog.
func (c *Catalog) Lookup(name, namespace string) (Descriptor, bool) {
	if !c.sealed.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	d, ok := c.byKey[Key{Name: name, Namespace: namespace}]

	return d.clone(), ok
}

// LookupType returns the descriptor registered for record type t (or the type t points to).
func (c *Catalog) LookupType(t reflect.Type) (Descriptor, bool) {
	if t == nil {
		return Descriptor{}, false
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if !c.sealed.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	key, ok := c.byType[t]
	if !ok {
		return Descriptor{}, false
	}

	return c.byKey[key].clone(), true
}

// DescriptorOf returns the descriptor of the record v.
func (c *Catalog) DescriptorOf(v any) (Descriptor, bool) { return c.LookupType(reflect.TypeOf(v)) }

// Len returns the number of registered descriptors.
func (c *Catalog) Len() int {
	if !c.sealed.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	return len(c.byKey)
}

// Descriptors returns every descriptor sorted by namespace, then name.
func (c *Catalog) Descriptors() []Descriptor {
	if !c.sealed.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	out := lo.Map(lo.Values(c.byKey), func(d Descriptor, _ int) Descriptor { return d.clone() })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// Namespaces returns the distinct namespaces, sorted.
func (c *Catalog) Namespaces() []string {
	return lo.Uniq(lo.Map(c.Descriptors(), func(d Descriptor, _ int) string { return d.Namespace }))
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
