// Package display formats the selector state for the front-panel screen.
//
// The screen shows a centered header (the station callsign) and one line per
// channel: "Mic <radio>" and "Key <radio>", or "None" when the channel has no
// capable radio.
package display

import (
	"radioswitch-go/errcode"
	"radioswitch-go/types"
	"radioswitch-go/x/strx"
)

const (
	MicLabel   = "Mic "
	KeyerLabel = "Key "
	NoneLabel  = "None"
	ResetText  = "Reset"
	ErrorText  = "Error"

	// DisplayCells is the character budget of the 128 px panel at 9 pt.
	DisplayCells = 20
	// NameColumns bounds a radio name so label+name fits half the panel.
	NameColumns = DisplayCells/2 - 4
)

// Line is one row of text.
type Line struct {
	Text     string
	Centered bool
}

// Screen renders whole frames of text lines.
type Screen interface {
	Show(lines ...Line) error
}

// Source is the part of the selector the renderer reads.
type Source interface {
	ActiveRadio(ch types.Channel) (types.Radio, bool)
}

// Renderer owns what is on the screen; it only observes the selector.
type Renderer struct {
	Callsign string
	s        Screen
}

func NewRenderer(callsign string, s Screen) *Renderer {
	return &Renderer{Callsign: callsign, s: s}
}

// Status shows the header and the active radio per channel.
func (r *Renderer) Status(src Source) error {
	return r.s.Show(StatusLines(r.Callsign, src)...)
}

// Splash shows the header alone while the hardware settles after power-on.
func (r *Renderer) Splash() error {
	return r.s.Show(Line{Text: strx.Truncate(r.Callsign, DisplayCells), Centered: true})
}

// Reset confirms that stored state was wiped.
func (r *Renderer) Reset() error {
	return r.s.Show(Line{Text: ResetText, Centered: true})
}

// Fault shows a fatal error code.
func (r *Renderer) Fault(err error) error {
	return r.s.Show(
		Line{Text: ErrorText, Centered: true},
		Line{Text: strx.Truncate(string(errcode.Of(err)), DisplayCells)},
	)
}

// StatusLines builds the status frame.
func StatusLines(callsign string, src Source) []Line {
	mic, micOK := src.ActiveRadio(types.Mic)
	key, keyOK := src.ActiveRadio(types.Keyer)
	return []Line{
		{Text: strx.Truncate(callsign, DisplayCells), Centered: true},
		{Text: RadioLine(MicLabel, mic, micOK)},
		{Text: RadioLine(KeyerLabel, key, keyOK)},
	}
}

// RadioLine is label followed by the radio name cut to NameColumns, or
// NoneLabel when ok is false or the name is blank.
func RadioLine(label string, r types.Radio, ok bool) string {
	if !ok {
		return label + NoneLabel
	}
	return label + strx.Coalesce(strx.Truncate(r.Name, NameColumns), NoneLabel)
}
