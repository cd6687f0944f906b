package value

import (
	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/str"
)

// DefaultBuckets is the bucket count of a new object.
const DefaultBuckets = 16

type objectConfig struct {
	buckets int
	hash    Hasher
}

type ObjectOption func(*objectConfig)

// WithBuckets sets the fixed bucket count. Objects never rehash, so the
// count bounds how short chains stay as keys are added.
func WithBuckets(n int) ObjectOption {
	return func(c *objectConfig) {
		if n > 0 {
			c.buckets = n
		}
	}
}

func WithHasher(h Hasher) ObjectOption {
	return func(c *objectConfig) {
		if h != nil {
			c.hash = h
		}
	}
}

// Entry is one key/value pair of an object, and doubles as an iterator
// position. Every object has one sentinel entry that marks the end of
// iteration.
type Entry struct {
	key    *str.Str
	val    *Value
	next   *Entry
	bucket int
	owner  *Object
}

func (e *Entry) Key() *str.Str { return e.key }

func (e *Entry) Value() *Value { return e.val }

// IsEnd reports whether e is the object's sentinel.
func (e *Entry) IsEnd() bool { return e == e.owner.end }

// Next returns the entry after e: the rest of e's chain first, then the head
// of the next non-empty bucket, then the sentinel.
func (e *Entry) Next() *Entry {
	o := e.owner
	if e == o.end {
		return e
	}
	if e.next != nil {
		return e.next
	}
	return o.firstFrom(e.bucket + 1)
}

// Object maps string keys to owned values using a fixed number of hash
// buckets with chaining. Iteration follows bucket order and then chain
// order, not insertion order.
type Object struct {
	alloc   allocator.Allocator
	cfg     objectConfig
	block   []byte
	buckets []*Entry
	end     *Entry
	size    int
}

func NewObject(alloc allocator.Allocator, opts ...ObjectOption) (*Object, error) {
	cfg := objectConfig{buckets: DefaultBuckets, hash: HashDJB2}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newObject(allocator.OrDefault(alloc), cfg)
}

func newObject(alloc allocator.Allocator, cfg objectConfig) (*Object, error) {
	block, err := alloc.Allocate(cfg.buckets * slotSize)
	if err != nil {
		return nil, err
	}
	o := &Object{
		alloc:   alloc,
		cfg:     cfg,
		block:   block,
		buckets: make([]*Entry, cfg.buckets),
	}
	o.end = &Entry{owner: o, bucket: cfg.buckets}
	return o, nil
}

// Copy re-inserts a deep copy of every pair into a new object with the same
// bucket count and hasher.
func (o *Object) Copy() (*Object, error) {
	c, err := newObject(o.alloc, o.cfg)
	if err != nil {
		return nil, err
	}
	for e := o.Begin(); !e.IsEnd(); e = e.Next() {
		v, err := e.val.Copy()
		if err != nil {
			c.Free()
			return nil, err
		}
		if err := c.SetBytes(e.key.Bytes(), v); err != nil {
			v.Free()
			c.Free()
			return nil, err
		}
	}
	return c, nil
}

// Free releases every key and value and then the bucket array.
func (o *Object) Free() {
	if o == nil || o.buckets == nil {
		return
	}
	o.clear()
	o.alloc.Deallocate(o.block)
	o.block, o.buckets = nil, nil
}

func (o *Object) clear() {
	for i, head := range o.buckets {
		for e := head; e != nil; {
			next := e.next
			e.key.Free()
			e.val.Free()
			e.next = nil
			e = next
		}
		o.buckets[i] = nil
	}
	o.size = 0
}

func (o *Object) Len() int { return o.size }

func (o *Object) Buckets() int { return len(o.buckets) }

func (o *Object) bucketOf(key []byte) int {
	return int(o.cfg.hash(key) % uint64(len(o.buckets)))
}

func (o *Object) lookup(key []byte) *Entry {
	for e := o.buckets[o.bucketOf(key)]; e != nil; e = e.next {
		if string(e.key.Bytes()) == string(key) {
			return e
		}
	}
	return nil
}

// Set stores v under key. An existing value for key is freed and replaced in
// place; otherwise a new entry holding a copy of key is appended to the
// bucket's chain. On failure v still belongs to the caller.
func (o *Object) Set(key string, v *Value) error {
	return o.SetBytes([]byte(key), v)
}

func (o *Object) SetBytes(key []byte, v *Value) error {
	b := o.bucketOf(key)
	var tail *Entry
	for e := o.buckets[b]; e != nil; e = e.next {
		if string(e.key.Bytes()) == string(key) {
			if e.val != v {
				e.val.Free()
				e.val = v
			}
			return nil
		}
		tail = e
	}
	k, err := str.NewFromBytes(key, o.alloc)
	if err != nil {
		return err
	}
	e := &Entry{key: k, val: v, bucket: b, owner: o}
	if tail == nil {
		o.buckets[b] = e
	} else {
		tail.next = e
	}
	o.size++
	return nil
}

// Adopt stores v under key and takes ownership of both. It never allocates,
// so it cannot fail; when key is already present the existing entry keeps its
// own key and the passed one is freed.
func (o *Object) Adopt(key *str.Str, v *Value) {
	b := o.bucketOf(key.Bytes())
	var tail *Entry
	for e := o.buckets[b]; e != nil; e = e.next {
		if e.key.Equals(key) {
			key.Free()
			if e.val != v {
				e.val.Free()
				e.val = v
			}
			return
		}
		tail = e
	}
	e := &Entry{key: key, val: v, bucket: b, owner: o}
	if tail == nil {
		o.buckets[b] = e
	} else {
		tail.next = e
	}
	o.size++
}

// SetStr stores v under a copy of key.
func (o *Object) SetStr(key *str.Str, v *Value) error {
	return o.SetBytes(key.Bytes(), v)
}

// Delete frees the entry for key and reports whether there was one.
func (o *Object) Delete(key string) bool {
	k := []byte(key)
	b := o.bucketOf(k)
	var prev *Entry
	for e := o.buckets[b]; e != nil; prev, e = e, e.next {
		if string(e.key.Bytes()) != key {
			continue
		}
		if prev == nil {
			o.buckets[b] = e.next
		} else {
			prev.next = e.next
		}
		e.key.Free()
		e.val.Free()
		e.next = nil
		o.size--
		return true
	}
	return false
}

// Get returns the value stored under key, or nil.
func (o *Object) Get(key string) *Value {
	if e := o.lookup([]byte(key)); e != nil {
		return e.val
	}
	return nil
}

func (o *Object) Has(key string) bool {
	return o.lookup([]byte(key)) != nil
}

// Equals reports whether both objects hold the same keys with equal values,
// regardless of bucket layout or order.
func (o *Object) Equals(other *Object) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil || o.size != other.size {
		return false
	}
	for e := o.Begin(); !e.IsEnd(); e = e.Next() {
		ov := other.lookup(e.key.Bytes())
		if ov == nil || !e.val.Equals(ov.val) {
			return false
		}
	}
	return true
}

// Begin returns the first entry, or the sentinel when o is empty.
func (o *Object) Begin() *Entry {
	return o.firstFrom(0)
}

// End returns the sentinel.
func (o *Object) End() *Entry { return o.end }

func (o *Object) firstFrom(bucket int) *Entry {
	for ; bucket < len(o.buckets); bucket++ {
		if head := o.buckets[bucket]; head != nil {
			return head
		}
	}
	return o.end
}

// Each calls fn for every entry in iteration order until fn returns false.
func (o *Object) Each(fn func(key *str.Str, v *Value) bool) {
	for e := o.Begin(); !e.IsEnd(); e = e.Next() {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Keys returns the keys in iteration order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.size)
	for e := o.Begin(); !e.IsEnd(); e = e.Next() {
		keys = append(keys, e.key.String())
	}
	return keys
}
