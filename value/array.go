package value

import (
	"math/bits"

	"github.com/oarkflow/jsondoc/allocator"
)

// DefaultCapacity is the slot count of a new array.
const DefaultCapacity = 8

// slotSize is the footprint of one slot reserved from the allocator.
const slotSize = bits.UintSize / 8

// Array is an ordered, index-addressable sequence that owns its values.
//
// The slot list is reserved from the allocator so that capacity growth is
// accounted for, and fails, like every other allocation; the value pointers
// themselves live in a Go slice of the same capacity.
type Array struct {
	alloc allocator.Allocator
	block []byte
	slots []*Value
	size  int
}

func NewArray(alloc allocator.Allocator) (*Array, error) {
	a := &Array{alloc: allocator.OrDefault(alloc)}
	if err := a.Reserve(DefaultCapacity); err != nil {
		return nil, err
	}
	return a, nil
}

// Copy deep-copies a and every value it holds.
func (a *Array) Copy() (*Array, error) {
	c := &Array{alloc: a.alloc}
	if err := c.Reserve(max(a.Cap(), DefaultCapacity)); err != nil {
		return nil, err
	}
	for _, v := range a.slots[:a.size] {
		cv, err := v.Copy()
		if err != nil {
			c.Free()
			return nil, err
		}
		c.slots[c.size] = cv
		c.size++
	}
	return c, nil
}

// Free releases every value and then the slot list.
func (a *Array) Free() {
	if a == nil || a.slots == nil {
		return
	}
	a.Clear()
	a.alloc.Deallocate(a.block)
	a.block, a.slots = nil, nil
}

func (a *Array) Len() int { return a.size }

func (a *Array) Cap() int { return len(a.slots) }

func (a *Array) Empty() bool { return a.size == 0 }

// Reserve grows the capacity to at least n slots. It is a no-op when the
// array already has room for n.
func (a *Array) Reserve(n int) error {
	if n <= len(a.slots) {
		return nil
	}
	var (
		block []byte
		err   error
	)
	if a.block == nil {
		block, err = a.alloc.Allocate(n * slotSize)
	} else {
		block, err = a.alloc.Reallocate(a.block, n*slotSize)
	}
	if err != nil {
		return err
	}
	slots := make([]*Value, n)
	copy(slots, a.slots[:a.size])
	a.block, a.slots = block, slots
	return nil
}

func (a *Array) check(i int) {
	if i < 0 || i >= a.size {
		panic("value: array index out of range")
	}
}

// At returns the value at i. It panics when i is out of range.
func (a *Array) At(i int) *Value {
	a.check(i)
	return a.slots[i]
}

func (a *Array) Front() *Value {
	if a.size == 0 {
		panic("value: front of empty array")
	}
	return a.slots[0]
}

func (a *Array) Back() *Value {
	if a.size == 0 {
		panic("value: back of empty array")
	}
	return a.slots[a.size-1]
}

// Assign frees the value at i and installs v in its place.
func (a *Array) Assign(i int, v *Value) {
	a.check(i)
	if old := a.slots[i]; old != v {
		old.Free()
	}
	a.slots[i] = v
}

// Swap installs v at i and hands the previous value back to the caller.
func (a *Array) Swap(i int, v *Value) *Value {
	a.check(i)
	old := a.slots[i]
	a.slots[i] = v
	return old
}

// Insert places v at i, shifting the tail right; i may equal Len. On
// failure the array is unchanged and v still belongs to the caller.
func (a *Array) Insert(i int, v *Value) error {
	if i < 0 || i > a.size {
		panic("value: array insert index out of range")
	}
	if a.size == len(a.slots) {
		if err := a.Reserve(max(2*len(a.slots), DefaultCapacity)); err != nil {
			return err
		}
	}
	copy(a.slots[i+1:a.size+1], a.slots[i:a.size])
	a.slots[i] = v
	a.size++
	return nil
}

func (a *Array) Push(v *Value) error {
	return a.Insert(a.size, v)
}

// Erase frees the value at i and shifts the tail left.
func (a *Array) Erase(i int) {
	a.check(i)
	a.slots[i].Free()
	copy(a.slots[i:], a.slots[i+1:a.size])
	a.size--
	a.slots[a.size] = nil
}

// Pop erases the last value. It panics on an empty array.
func (a *Array) Pop() {
	if a.size == 0 {
		panic("value: pop on empty array")
	}
	a.Erase(a.size - 1)
}

// Clear frees every value and keeps the capacity.
func (a *Array) Clear() {
	for i, v := range a.slots[:a.size] {
		v.Free()
		a.slots[i] = nil
	}
	a.size = 0
}

// Equals compares sizes and then elements pointwise.
func (a *Array) Equals(other *Array) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil || a.size != other.size {
		return false
	}
	for i, v := range a.slots[:a.size] {
		if !v.Equals(other.slots[i]) {
			return false
		}
	}
	return true
}

// Each calls fn for every element in order until fn returns false.
func (a *Array) Each(fn func(i int, v *Value) bool) {
	for i, v := range a.slots[:a.size] {
		if !fn(i, v) {
			return
		}
	}
}
