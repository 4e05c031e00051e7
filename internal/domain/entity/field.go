package entity

// Field is a per-field validation result: either Valid(value) or
// Invalid(reason). The zero value is an invalid field with no reason.
type Field[T any] struct {
	value  T
	reason string
	valid  bool
}

func Valid[T any](v T) Field[T] {
	return Field[T]{value: v, valid: true}
}

func Invalid[T any](reason string) Field[T] {
	return Field[T]{reason: reason}
}

func (f Field[T]) IsValid() bool {
	return f.valid
}

// Get returns the value and whether the field passed validation.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.valid
}

// Or returns the value when valid and fallback otherwise.
func (f Field[T]) Or(fallback T) T {
	if f.valid {
		return f.value
	}
	return fallback
}

func (f Field[T]) Reason() string {
	return f.reason
}
