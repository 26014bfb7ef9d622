package model

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// FloatOr dereferences p, returning def when p is nil.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
