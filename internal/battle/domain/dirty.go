package domain

// Effective resolves a dirty-field pair: the manual override wins when set,
// otherwise the revealed value stands. Every call site resolving an override
// against revealed truth goes through this helper so the precedence rule
// lives in one place.
func Effective[T any](override *T, value T) T {
	if override != nil {
		return *override
	}
	return value
}

// Override wraps a value as a set manual override.
func Override[T any](value T) *T {
	return &value
}
