package models

// Page is an offset/limit pair for listing queries. The zero value means
// "everything": Normalize substitutes an effectively unbounded limit.
type Page struct {
	From int64
	Size int64
}

// UnboundedSize is the limit sentinel used when no page size was supplied.
const UnboundedSize int64 = 1 << 31

// Normalize clamps the page to usable values.
func (p Page) Normalize() Page {
	if p.From < 0 {
		p.From = 0
	}
	if p.Size <= 0 {
		p.Size = UnboundedSize
	}
	return p
}
