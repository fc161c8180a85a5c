package dto

import "encoding/json"

// Optional distinguishes a field that was absent from a request body
// from one explicitly set to null. Set reports whether the key appeared
// at all; Valid reports whether the value was non-null.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
