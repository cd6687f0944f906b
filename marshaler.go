package jsondoc

import (
	"github.com/oarkflow/jsondoc/compat"
	"github.com/oarkflow/jsondoc/writer"
)

// Marshal converts x to a document and serializes it with the shortest
// number form, which is what callers of a Marshal function expect.
func Marshal(x any) ([]byte, error) {
	v, err := compat.FromAny(x, nil)
	if err != nil {
		return nil, err
	}
	defer v.Free()
	return writer.Serialize(v, nil, writer.WithNumberFormat(writer.NumberShortest))
}
