// Package persist stores the selector state in byte-addressable durable memory.
//
// The record layout matches the EEPROM image written by the AVR build of this switch,
// where int is 16 bits wide:
//
//	offset 0: validity flag (int16 LE, 1 = state present)
//	offset 2: mic index     (int16 LE)
//	offset 4: keyer index   (int16 LE)
//
// The flag is always written last, so a power cut during Save leaves the
// previous flag in place.
package persist

import (
	"encoding/binary"

	"radioswitch-go/errcode"
	"radioswitch-go/types"
)

const (
	FlagOffset  = 0
	FlagSize    = 2
	StateOffset = FlagOffset + FlagSize
	StateSize   = 4
	RecordSize  = StateOffset + StateSize

	flagValid   = 1
	flagCleared = 0
)

// Storage is the durable medium: EEPROM, emulated flash page, or RAM.
type Storage interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

// Adapter owns the record layout.
type Adapter struct {
	s Storage
}

func New(s Storage) *Adapter { return &Adapter{s: s} }

// Save writes sel, then marks the record valid.
func (a *Adapter) Save(sel types.Selection) error {
	if err := a.writeState(sel); err != nil {
		return err
	}
	return a.writeFlag(flagValid)
}

// Load returns the stored selection. ok is false when no valid record exists.
func (a *Adapter) Load() (sel types.Selection, ok bool, err error) {
	var f [FlagSize]byte
	if err := a.read(f[:], FlagOffset); err != nil {
		return types.Selection{}, false, err
	}
	if int16(binary.LittleEndian.Uint16(f[:])) != flagValid {
		return types.Selection{}, false, nil
	}
	var b [StateSize]byte
	if err := a.read(b[:], StateOffset); err != nil {
		return types.Selection{}, false, err
	}
	return types.Selection{
		Mic:   int(int16(binary.LittleEndian.Uint16(b[0:2]))),
		Keyer: int(int16(binary.LittleEndian.Uint16(b[2:4]))),
	}, true, nil
}

// Clear writes a zero selection, then marks the record invalid.
func (a *Adapter) Clear() error {
	if err := a.writeState(types.Selection{}); err != nil {
		return err
	}
	return a.writeFlag(flagCleared)
}

func (a *Adapter) writeState(sel types.Selection) error {
	var b [StateSize]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(int16(sel.Mic)))
	binary.LittleEndian.PutUint16(b[2:4], uint16(int16(sel.Keyer)))
	return a.write(b[:], StateOffset)
}

func (a *Adapter) writeFlag(v int16) error {
	var f [FlagSize]byte
	binary.LittleEndian.PutUint16(f[:], uint16(v))
	return a.write(f[:], FlagOffset)
}

func (a *Adapter) read(p []byte, off int64) error {
	n, err := a.s.ReadAt(p, off)
	if err == nil && n != len(p) {
		err = errcode.StorageIO
	}
	if err != nil {
		return errcode.Wrap(errcode.StorageIO, "persist.read", "", err)
	}
	return nil
}

func (a *Adapter) write(p []byte, off int64) error {
	n, err := a.s.WriteAt(p, off)
	if err == nil && n != len(p) {
		err = errcode.StorageIO
	}
	if err != nil {
		return errcode.Wrap(errcode.StorageIO, "persist.write", "", err)
	}
	return nil
}
