package display

import (
	"image/color"

	"radioswitch-go/x/mathx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Canvas is a pixel display with an off-screen buffer (e.g. ssd1306.Device).
type Canvas interface {
	drivers.Displayer
	ClearBuffer()
}

// FontScreen draws text lines on a Canvas. The first line is separated from
// the rest by HeaderGap pixels.
type FontScreen struct {
	c         Canvas
	font      tinyfont.Fonter
	color     color.RGBA
	HeaderGap int16
}

func NewFontScreen(c Canvas) *FontScreen {
	return &FontScreen{
		c:         c,
		font:      &freemono.Regular9pt7b,
		color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		HeaderGap: 6,
	}
}

func (s *FontScreen) Show(lines ...Line) error {
	s.c.ClearBuffer()
	w, _ := s.c.Size()
	adv := int16(s.font.GetYAdvance())
	y := adv
	for i, ln := range lines {
		var x int16
		if ln.Centered {
			_, outbox := tinyfont.LineWidth(s.font, ln.Text)
			x = mathx.Clamp((w-int16(outbox))/2, 0, w)
		}
		tinyfont.WriteLine(s.c, s.font, x, y, ln.Text, s.color)
		y += adv
		if i == 0 {
			y += s.HeaderGap
		}
	}
	return s.c.Display()
}
