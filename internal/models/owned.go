package models

// Owned is implemented by every record that has an author.
type Owned interface {
	OwnerID() uint64
}

func (p *Post) OwnerID() uint64    { return p.AuthorID }
func (c *Comment) OwnerID() uint64 { return c.AuthorID }
func (r *Reply) OwnerID() uint64   { return r.AuthorID }
func (m *Memo) OwnerID() uint64    { return m.AuthorID }
func (e *Event) OwnerID() uint64   { return e.AuthorID }
