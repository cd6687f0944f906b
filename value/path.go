package value

import "strconv"

// Get walks keys from v: object members by name and array elements by
// decimal index. It returns nil as soon as a step does not resolve.
func (v *Value) Get(keys ...string) *Value {
	cur := v
	for _, key := range keys {
		if cur == nil {
			return nil
		}
		switch cur.kind {
		case KindObject:
			cur = cur.obj.Get(key)
		case KindArray:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= cur.arr.Len() {
				return nil
			}
			cur = cur.arr.At(i)
		default:
			return nil
		}
	}
	return cur
}
