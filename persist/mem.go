package persist

import "io"

// Mem is a RAM-backed Storage. It starts erased (0xFF), like a fresh EEPROM.
type Mem struct {
	buf []byte
}

func NewMem(size int) *Mem {
	b := make([]byte, size)
	for i := range b {
		b[i] = 0xFF
	}
	return &Mem{buf: b}
}

func (m *Mem) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Mem) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, io.ErrShortWrite
	}
	return copy(m.buf[off:], p), nil
}

// Bytes exposes the raw image for tests.
func (m *Mem) Bytes() []byte { return m.buf }
