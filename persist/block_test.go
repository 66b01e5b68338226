package persist

import (
	"bytes"
	"errors"
	"testing"

	"radioswitch-go/types"
)

// fakeFlash behaves like NOR flash: erase sets 0xFF, program can only clear bits.
type fakeFlash struct {
	mem    []byte
	ebs    int64
	wbs    int64
	erases []int64
	writes int

	eraseErr error
}

func newFakeFlash(blocks, ebs, wbs int64) *fakeFlash {
	f := &fakeFlash{mem: make([]byte, blocks*ebs), ebs: ebs, wbs: wbs}
	for i := range f.mem {
		f.mem[i] = 0xFF
	}
	return f
}

func (f *fakeFlash) ReadAt(p []byte, off int64) (int, error) { return copy(p, f.mem[off:]), nil }
func (f *fakeFlash) WriteAt(p []byte, off int64) (int, error) {
	f.writes++
	for i, b := range p {
		f.mem[off+int64(i)] &= b
	}
	return len(p), nil
}
func (f *fakeFlash) Size() int64           { return int64(len(f.mem)) }
func (f *fakeFlash) WriteBlockSize() int64 { return f.wbs }
func (f *fakeFlash) EraseBlockSize() int64 { return f.ebs }
func (f *fakeFlash) EraseBlocks(start, n int64) error {
	if f.eraseErr != nil {
		return f.eraseErr
	}
	f.erases = append(f.erases, start)
	for i := start * f.ebs; i < (start+n)*f.ebs; i++ {
		f.mem[i] = 0xFF
	}
	return nil
}

func TestBlockStorage_UsesLastBlockAndSurvivesReload(t *testing.T) {
	f := newFakeFlash(4, 64, 16)
	a := New(NewBlockStorage(f))

	if _, ok, _ := a.Load(); ok {
		t.Fatalf("erased flash reported valid state")
	}
	want := types.Selection{Mic: 1, Keyer: 3}
	if err := a.Save(want); err != nil {
		t.Fatal(err)
	}
	for _, b := range f.erases {
		if b != 3 {
			t.Fatalf("erased block %d, want only the last block (3)", b)
		}
	}
	if len(f.erases) != 2 {
		t.Fatalf("Save erased %d times, want 2 (state, flag)", len(f.erases))
	}
	if f.writes != 2*64/16 {
		t.Fatalf("programmed %d chunks, want %d", f.writes, 2*64/16)
	}
	if !bytes.Equal(f.mem[:3*64], bytes.Repeat([]byte{0xFF}, 3*64)) {
		t.Fatalf("blocks outside the record area were touched")
	}

	// Fresh instance reads the block back from flash.
	got, ok, err := New(NewBlockStorage(f)).Load()
	if err != nil || !ok || got != want {
		t.Fatalf("reload: got %+v ok=%v err=%v", got, ok, err)
	}
}

func TestBlockStorage_SkipsUnchangedWrites(t *testing.T) {
	f := newFakeFlash(2, 32, 32)
	a := New(NewBlockStorage(f))
	sel := types.Selection{Mic: 2, Keyer: 0}
	if err := a.Save(sel); err != nil {
		t.Fatal(err)
	}
	n := len(f.erases)
	if err := a.Save(sel); err != nil {
		t.Fatal(err)
	}
	if len(f.erases) != n {
		t.Fatalf("identical Save erased again (%d -> %d)", n, len(f.erases))
	}
}

func TestBlockStorage_NoEraseBlockIsAnError(t *testing.T) {
	f := newFakeFlash(0, 64, 16)
	if _, err := NewBlockStorage(f).ReadAt(make([]byte, 2), 0); err == nil {
		t.Fatalf("expected error on empty device")
	}
}

func TestBlockStorage_FailedEraseRetriesSameWrite(t *testing.T) {
	f := newFakeFlash(2, 32, 16)
	a := New(NewBlockStorage(f))
	want := types.Selection{Mic: 2, Keyer: 1}

	f.eraseErr = errors.New("erase failed")
	if err := a.Save(want); err == nil {
		t.Fatalf("Save succeeded with a failing erase")
	}

	f.eraseErr = nil
	if err := a.Save(want); err != nil {
		t.Fatal(err)
	}
	if len(f.erases) != 2 {
		t.Fatalf("retry erased %d times, want 2 (state, flag)", len(f.erases))
	}
	got, ok, err := New(NewBlockStorage(f)).Load()
	if err != nil || !ok || got != want {
		t.Fatalf("reload: got %+v ok=%v err=%v", got, ok, err)
	}
}
