package ptr

// Clone copies the pointee so callers never share mutable ids.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
