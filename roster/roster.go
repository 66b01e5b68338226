// Package roster holds the fixed list of radios wired to the switch.
package roster

import (
	"strconv"

	"radioswitch-go/errcode"
	"radioswitch-go/types"
)

// Roster is read-only after New. The slice index is the radio's identity.
type Roster struct {
	radios  []types.Radio
	enabled [len(types.Channels)]bool
}

// New validates radios and computes the per-channel enabled flags.
func New(radios []types.Radio) (*Roster, error) {
	if len(radios) > types.MaxRadios {
		return nil, errcode.Wrap(errcode.RosterTooLarge, "roster.New",
			strconv.Itoa(len(radios))+" radios, max "+strconv.Itoa(types.MaxRadios), nil)
	}
	r := &Roster{radios: append([]types.Radio(nil), radios...)}
	for _, rd := range r.radios {
		for _, ch := range types.Channels {
			if rd.Supports(ch) {
				r.enabled[ch] = true
			}
		}
	}
	return r, nil
}

func (r *Roster) Size() int { return len(r.radios) }

// Radio returns entry i.
func (r *Roster) Radio(i int) (types.Radio, bool) {
	if i < 0 || i >= len(r.radios) {
		return types.Radio{}, false
	}
	return r.radios[i], true
}

// Supports reports whether entry i can be switched onto ch.
func (r *Roster) Supports(i int, ch types.Channel) bool {
	rd, ok := r.Radio(i)
	return ok && rd.Supports(ch)
}

// ChannelEnabled is true iff at least one entry supports ch.
func (r *Roster) ChannelEnabled(ch types.Channel) bool {
	if int(ch) >= len(r.enabled) {
		return false
	}
	return r.enabled[ch]
}
