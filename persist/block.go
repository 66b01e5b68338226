package persist

import (
	"bytes"
	"io"

	"radioswitch-go/errcode"
)

// BlockDevice is the flash interface TinyGo exposes as machine.Flash.
type BlockDevice interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Size() int64
	WriteBlockSize() int64
	EraseBlockSize() int64
	EraseBlocks(start, length int64) error
}

// BlockStorage emulates a small EEPROM in the last erase block of a flash
// device. Every WriteAt rewrites the whole block, so two WriteAt calls are two
// separate erase/program cycles and Adapter's flag-last ordering holds.
type BlockStorage struct {
	dev    BlockDevice
	block  int64 // erase block index
	image  []byte
	loaded bool
}

func NewBlockStorage(dev BlockDevice) *BlockStorage {
	ebs := dev.EraseBlockSize()
	last := int64(0)
	if ebs > 0 && dev.Size() >= ebs {
		last = dev.Size()/ebs - 1
	}
	return &BlockStorage{dev: dev, block: last}
}

func (s *BlockStorage) load() error {
	if s.loaded {
		return nil
	}
	ebs := s.dev.EraseBlockSize()
	if ebs <= 0 || s.dev.Size() < ebs {
		return errcode.Wrap(errcode.StorageIO, "persist.BlockStorage", "no erase block", nil)
	}
	img := make([]byte, ebs)
	if _, err := s.dev.ReadAt(img, s.block*ebs); err != nil && err != io.EOF {
		return err
	}
	s.image = img
	s.loaded = true
	return nil
}

func (s *BlockStorage) ReadAt(p []byte, off int64) (int, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if off < 0 || off >= int64(len(s.image)) {
		return 0, io.EOF
	}
	n := copy(p, s.image[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *BlockStorage) WriteAt(p []byte, off int64) (int, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if off < 0 || off+int64(len(p)) > int64(len(s.image)) {
		return 0, io.ErrShortWrite
	}
	// Unchanged bytes cost an erase cycle for nothing.
	if bytes.Equal(s.image[off:off+int64(len(p))], p) {
		return len(p), nil
	}
	next := bytes.Clone(s.image)
	copy(next[off:], p)
	// The cached image only follows flash once the block is programmed.
	if err := s.commit(next); err != nil {
		return 0, err
	}
	s.image = next
	return len(p), nil
}

func (s *BlockStorage) commit(img []byte) error {
	ebs := int64(len(img))
	if err := s.dev.EraseBlocks(s.block, 1); err != nil {
		return err
	}
	wbs := s.dev.WriteBlockSize()
	if wbs <= 0 || ebs%wbs != 0 {
		wbs = ebs
	}
	base := s.block * ebs
	for o := int64(0); o < ebs; o += wbs {
		if _, err := s.dev.WriteAt(img[o:o+wbs], base+o); err != nil {
			return err
		}
	}
	return nil
}
