package display

import "image/color"

// Frame is an in-memory monochrome Canvas for hosts without a panel.
type Frame struct {
	w, h   int16
	pix    []bool
	frames int
}

func NewFrame(w, h int16) *Frame {
	return &Frame{w: w, h: h, pix: make([]bool, int(w)*int(h))}
}

func (f *Frame) Size() (x, y int16) { return f.w, f.h }

func (f *Frame) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.pix[int(y)*int(f.w)+int(x)] = c.R|c.G|c.B != 0
}

func (f *Frame) Display() error {
	f.frames++
	return nil
}

func (f *Frame) ClearBuffer() {
	for i := range f.pix {
		f.pix[i] = false
	}
}

// Lit reports whether pixel (x, y) is on.
func (f *Frame) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.pix[int(y)*int(f.w)+int(x)]
}

// Frames counts Display calls.
func (f *Frame) Frames() int { return f.frames }
