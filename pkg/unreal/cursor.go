package unreal

// Cursor is a forward reader over an immutable byte slice with a bounded
// rewind.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor positions a cursor at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Read returns the next n bytes and advances past them. The returned slice
// aliases the underlying buffer.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, dataErrf(c.buf, c.pos, ErrUnexpectedEOF, "read %d bytes with %d remaining", n, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadToEnd returns all remaining bytes and moves to the end.
func (c *Cursor) ReadToEnd() []byte {
	b := c.buf[c.pos:]
	c.pos = len(c.buf)
	return b
}

// Rewind moves the cursor back n bytes. Rewinding past the start is a
// programming error and panics.
func (c *Cursor) Rewind(n int) {
	if n < 0 || n > c.pos {
		panic("unreal: rewind past start of buffer")
	}
	c.pos -= n
}

// Pos is the offset of the next unread byte.
func (c *Cursor) Pos() int       { return c.pos }
func (c *Cursor) Len() int       { return len(c.buf) }
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes returns the whole underlying buffer.
func (c *Cursor) Bytes() []byte { return c.buf }
