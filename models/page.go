package models

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Page selects a window of a list result.
type Page struct {
	Limit  uint64
	Offset uint64
}

// Normalize applies the default limit to a zero Limit and caps it at
// MaxPageLimit.
func (p Page) Normalize() Page {
	switch {
	case p.Limit == 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}
