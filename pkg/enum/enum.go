package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type name to its known string values.
var registry = map[string]any{}

type values[T comparable] map[string]T

// New registers value under its type so ToEnum can parse it back later. It
// returns the value unchanged, so declarations stay one-liners.
func New[T comparable](value T) T {
	name := reflect.TypeOf(value).Name()
	set, ok := registry[name].(values[T])
	if !ok {
		set = values[T]{}
		registry[name] = set
	}

	set[reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	set, ok := registry[reflect.TypeOf(zero).Name()].(values[T])
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := set[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}
