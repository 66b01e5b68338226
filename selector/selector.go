// Package selector is the radio-selection state machine.
//
// It tracks one active roster index per channel and moves it forward on
// request, skipping radios that cannot serve the channel. Every move is
// persisted before Advance returns.
package selector

import (
	"radioswitch-go/errcode"
	"radioswitch-go/roster"
	"radioswitch-go/types"
	"radioswitch-go/x/logx"
	"radioswitch-go/x/mathx"
)

// Persister stores the selection after each change.
type Persister interface {
	Save(sel types.Selection) error
}

type Selector struct {
	r   *roster.Roster
	p   Persister
	sel types.Selection
	log *logx.Logger
}

// New returns a selector with no active radios; call Initialize before use.
// p may be nil when nothing should be persisted.
func New(r *roster.Roster, p Persister) *Selector {
	return &Selector{
		r:   r,
		p:   p,
		sel: types.Selection{Mic: types.NoRadio, Keyer: types.NoRadio},
	}
}

func (s *Selector) SetLogger(l *logx.Logger) { s.log = l }

// Initialize seeds both channels from restored (nil = first boot). Each
// enabled channel lands on the first capable radio at or after the seed;
// disabled channels are set to NoRadio. Nothing is persisted.
func (s *Selector) Initialize(restored *types.Selection) error {
	seed := types.Selection{}
	if restored != nil {
		seed = *restored
	}
	for _, ch := range types.Channels {
		if !s.r.ChannelEnabled(ch) {
			s.sel = s.sel.With(ch, types.NoRadio)
			continue
		}
		idx, err := Next(s.r, ch, seed.Index(ch), true)
		if err != nil {
			return err
		}
		if idx != seed.Index(ch) {
			s.log.Debugf("%s: seed %d not usable, using %d", ch, seed.Index(ch), idx)
		}
		s.sel = s.sel.With(ch, idx)
	}
	return nil
}

// Advance moves ch to the next capable radio, wrapping around, and persists
// the result. It is a no-op returning NoRadio for a disabled channel.
//
// A save failure is returned together with the new index; the in-memory
// selection has already moved.
func (s *Selector) Advance(ch types.Channel) (int, error) {
	if !s.r.ChannelEnabled(ch) {
		return types.NoRadio, nil
	}
	idx, err := Next(s.r, ch, s.sel.Index(ch), false)
	if err != nil {
		return s.sel.Index(ch), err
	}
	s.sel = s.sel.With(ch, idx)
	s.log.Debugf("%s -> %d", ch, idx)
	if s.p != nil {
		if err := s.p.Save(s.sel); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// ActiveIndex returns the index for ch; ok is false when ch is disabled.
func (s *Selector) ActiveIndex(ch types.Channel) (int, bool) {
	if !s.r.ChannelEnabled(ch) {
		return types.NoRadio, false
	}
	return s.sel.Index(ch), true
}

// ActiveRadio returns the roster entry selected on ch.
func (s *Selector) ActiveRadio(ch types.Channel) (types.Radio, bool) {
	idx, ok := s.ActiveIndex(ch)
	if !ok {
		return types.Radio{}, false
	}
	return s.r.Radio(idx)
}

func (s *Selector) ChannelEnabled(ch types.Channel) bool { return s.r.ChannelEnabled(ch) }

// Selection returns a snapshot of both indices.
func (s *Selector) Selection() types.Selection { return s.sel }

// Next scans the roster for a radio supporting ch, starting after from (or at
// from when inclusive) and wrapping. It looks at no more than Size entries and
// reports ChannelUnreachable if none qualifies. An out-of-range from restarts
// the scan inclusively at 0.
func Next(r *roster.Roster, ch types.Channel, from int, inclusive bool) (int, error) {
	n := r.Size()
	i := from
	if i < 0 || i >= n {
		i, inclusive = 0, true
	}
	if !inclusive {
		i = mathx.WrapInc(i, n)
	}
	for step := 0; step < n; step++ {
		if r.Supports(i, ch) {
			return i, nil
		}
		i = mathx.WrapInc(i, n)
	}
	return types.NoRadio, errcode.Wrap(errcode.ChannelUnreachable, "selector.Next", ch.String(), nil)
}
