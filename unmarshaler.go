package jsondoc

import (
	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/compat"
	"github.com/oarkflow/jsondoc/reader"
)

// Unmarshal parses data and stores the result in dst, which must be a
// non-nil pointer.
func Unmarshal(data []byte, dst any) error {
	v, err := reader.Parse(data, nil)
	if err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	defer v.Free()
	return compat.Decode(v, dst)
}
