package catalog

// Cursor enumerates all names of a catalog: canonical entries in catalog order, then aliases.
// A Cursor is owned by one caller and must not be used concurrently.
type Cursor struct {
	cat *Catalog
	pos int
}

// NewCursor returns a cursor positioned at the first name of cat.
func NewCursor(cat *Catalog) *Cursor {
	return &Cursor{cat: cat}
}

// Next returns the next name and true, or "" and false after the last name.
// If reset is true the cursor is rewound before reading.
func (c *Cursor) Next(reset bool) (string, bool) {
	if reset {
		c.pos = 0
	}
	n := len(c.cat.entries)
	switch {
	case c.pos < n:
		c.pos++
		return c.cat.entries[c.pos-1].Name, true
	case c.pos < n+len(c.cat.aliases):
		c.pos++
		return c.cat.aliases[c.pos-1-n].Name, true
	default:
		return "", false
	}
}

// NextInto is like Next but copies the name into buf and returns the number of bytes written.
// A name longer than buf is truncated and ErrBufferTooSmall is returned along with it;
// the cursor still advances.
func (c *Cursor) NextInto(reset bool, buf []byte) (int, bool, error) {
	name, ok := c.Next(reset)
	if !ok {
		return 0, false, nil
	}
	n := copy(buf, name)
	if n < len(name) {
		return n, true, ErrBufferTooSmall
	}
	return n, true, nil
}

// MaxNameLen returns the length of the longest name in the catalog, the buffer size
// that NextInto never truncates.
func (c *Catalog) MaxNameLen() int {
	var max int
	for _, e := range c.entries {
		max = maxInt(max, len(e.Name))
	}
	for _, a := range c.aliases {
		max = maxInt(max, len(a.Name))
	}
	return max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
