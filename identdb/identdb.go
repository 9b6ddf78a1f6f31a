// Package identdb implements the identifier database (C5): a
// copy-on-write value type holding identifier descriptors under a dual
// index, by handle and by (primary name, subscript).
package identdb

import "sort"

// Handle identifies an identifier descriptor. Handles are assigned by
// the model author and are unique within a Database.
type Handle int

// InvalidHandle is never a live descriptor's handle.
const InvalidHandle Handle = -1

// ValueType tags what an identifier's opaque value points at.
type ValueType int

const (
	ValueUnknown ValueType = iota
	ValueScalar
	ValueArray
	ValueFunction
)

func (t ValueType) String() string {
	switch t {
	case ValueScalar:
		return "scalar"
	case ValueArray:
		return "array"
	case ValueFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Descriptor describes one model-visible identifier. Equality between
// descriptors is by Handle alone, matching the uniqueness invariant the
// database enforces.
type Descriptor struct {
	Handle     Handle
	Primary    string
	Subscript  string
	IsFunction bool
	ValueType  ValueType
	Value      any
}

type nameKey struct {
	primary   string
	subscript string
}

// node is the shared, logically-immutable backing store. Database
// values reference a node; Clone shares it and bumps refs, and any
// mutating method clones the node first if refs indicates more than
// one Database currently sees it.
//
// Go has no copy constructor or destructor to hook, so this is only an
// approximation of true copy-on-write: refs tracks sharing introduced
// through Clone, not through an ordinary Go assignment of a Database
// value (which silently shares the same node without incrementing
// refs). Callers that want copy-on-write semantics across an
// assignment must call Clone explicitly; see DESIGN.md.
type node struct {
	refs     int32
	byHandle map[Handle]Descriptor
	byName   map[nameKey]Descriptor
}

func newNode() *node {
	return &node{
		refs:     1,
		byHandle: make(map[Handle]Descriptor),
		byName:   make(map[nameKey]Descriptor),
	}
}

func (n *node) clone() *node {
	c := &node{
		refs:     1,
		byHandle: make(map[Handle]Descriptor, len(n.byHandle)),
		byName:   make(map[nameKey]Descriptor, len(n.byName)),
	}
	for h, d := range n.byHandle {
		c.byHandle[h] = d
	}
	for k, d := range n.byName {
		c.byName[k] = d
	}
	return c
}

// Database is a value type over a set of identifier descriptors, with
// copy-on-write sharing via Clone.
type Database struct {
	n *node
}

// New returns an empty Database.
func New() Database {
	return Database{n: newNode()}
}

// Clone returns a Database sharing this one's storage; the shared node
// is cloned lazily, the first time either Database is mutated.
func (d Database) Clone() Database {
	d.n.refs++
	return d
}

func (d *Database) mutable() *node {
	if d.n.refs > 1 {
		d.n.refs--
		d.n = d.n.clone()
	}
	return d.n
}

// IsEmpty reports whether the database holds no descriptors.
func (d Database) IsEmpty() bool { return len(d.n.byHandle) == 0 }

// Size returns the number of descriptors in the database.
func (d Database) Size() int { return len(d.n.byHandle) }

// Insert adds desc to the database, returning false without modifying
// anything if desc.Handle or the (Primary, Subscript) pair already
// exists.
func (d *Database) Insert(desc Descriptor) bool {
	if _, exists := d.n.byHandle[desc.Handle]; exists {
		return false
	}
	key := nameKey{primary: desc.Primary, subscript: desc.Subscript}
	if _, exists := d.n.byName[key]; exists {
		return false
	}

	n := d.mutable()
	n.byHandle[desc.Handle] = desc
	n.byName[key] = desc
	return true
}

// ByHandle returns the descriptor with the given handle, if present.
func (d Database) ByHandle(h Handle) (Descriptor, bool) {
	desc, ok := d.n.byHandle[h]
	return desc, ok
}

// ByName returns the descriptor with the given (primary, subscript)
// pair, if present.
func (d Database) ByName(primary, subscript string) (Descriptor, bool) {
	desc, ok := d.n.byName[nameKey{primary: primary, subscript: subscript}]
	return desc, ok
}

// Handles returns every handle in the database in ascending order.
func (d Database) Handles() []Handle {
	out := make([]Handle, 0, len(d.n.byHandle))
	for h := range d.n.byHandle {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Iterator walks a Database's descriptors in ascending handle order.
type Iterator struct {
	descriptors []Descriptor
	pos         int
}

// Begin returns an iterator over every descriptor, ordered by handle.
func (d Database) Begin() *Iterator {
	handles := d.Handles()
	descriptors := make([]Descriptor, len(handles))
	for i, h := range handles {
		descriptors[i] = d.n.byHandle[h]
	}
	return &Iterator{descriptors: descriptors}
}

// Done reports whether the iterator has been exhausted.
func (it *Iterator) Done() bool { return it.pos >= len(it.descriptors) }

// Value returns the descriptor the iterator currently points to.
func (it *Iterator) Value() Descriptor {
	if it.Done() {
		return Descriptor{}
	}
	return it.descriptors[it.pos]
}

// Next advances the iterator, returning false once exhausted.
func (it *Iterator) Next() bool {
	if it.Done() {
		return false
	}
	it.pos++
	return !it.Done()
}
