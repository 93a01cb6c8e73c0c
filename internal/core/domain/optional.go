package domain

import "strconv"

// Number is the set of value types an Optional can carry.
type Number interface {
	~float64 | ~int64
}

// Optional holds a value that may be absent.
// Absent is distinct from zero: the zero Optional is absent.
type Optional[T Number] struct {
	value T
	valid bool
}

// Some returns a present Optional holding v.
func Some[T Number](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an absent Optional.
func None[T Number]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Valid returns true if a value is present.
func (o Optional[T]) Valid() bool {
	return o.valid
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if !o.valid {
		return def
	}
	return o.value
}

// String renders the value, or an empty string when absent.
func (o Optional[T]) String() string {
	if !o.valid {
		return ""
	}
	switch v := any(o.value).(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return strconv.FormatFloat(float64(o.value), 'f', -1, 64)
	}
}
