package domain

import (
	"encoding/json"
)

// Optional is a tri-state JSON field for partial updates: an absent key
// leaves Present false, an explicit null sets Present with a nil Value, and
// a concrete value sets both.
type Optional[T any] struct {
	Present bool
	Value   *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
