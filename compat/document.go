package compat

import (
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/value"
	"github.com/oarkflow/jsondoc/writer"
)

// Document embeds a value tree in types handled by standard JSON codecs.
// It marshals with shortest-form numbers so it reads back unchanged.
type Document struct {
	Value *value.Value
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.Value == nil {
		return []byte("null"), nil
	}
	return writer.Serialize(d.Value, nil, writer.WithNumberFormat(writer.NumberShortest))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	v, err := reader.Parse(data, nil)
	if err != nil {
		return err
	}
	d.Value.Free()
	d.Value = v
	return nil
}
