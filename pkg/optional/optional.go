// Package optional holds field wrappers for partial updates, where a field
// can be left out, explicitly cleared, or set to a value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a tri-state field. The zero value means "not supplied".
type Value[T any] struct {
	Supplied bool
	Null     bool
	V        T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Supplied: true, V: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Supplied: true, Null: true}
}

// HasValue reports whether a non-null value was supplied.
func (o Value[T]) HasValue() bool {
	return o.Supplied && !o.Null
}

// Ptr returns nil for an explicit null, a pointer to the value otherwise.
// Callers must check Supplied first.
func (o Value[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.V
	return &v
}

// UnmarshalJSON is only invoked for keys present in the payload,
// which is what makes Supplied meaningful.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Supplied = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.V = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.V)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Supplied || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.V)
}
