package hal

import "radioswitch-go/errcode"

// Registry hands out pins from a factory and refuses double claims, so a
// setup that wires two signals to one pin fails at boot.
type Registry struct {
	f     PinFactory
	owner map[int]string
}

func NewRegistry(f PinFactory) *Registry {
	return &Registry{f: f, owner: make(map[int]string)}
}

// Claim reserves pin n for dev.
func (r *Registry) Claim(dev string, n int) (GPIOPin, error) {
	if n < 0 {
		return nil, errcode.Wrap(errcode.UnknownPin, "hal.Claim", dev, nil)
	}
	if cur, ok := r.owner[n]; ok {
		return nil, errcode.Wrap(errcode.PinInUse, "hal.Claim", dev+" vs "+cur, nil)
	}
	p, ok := r.f.ByNumber(n)
	if !ok {
		return nil, errcode.Wrap(errcode.UnknownPin, "hal.Claim", dev, nil)
	}
	r.owner[n] = dev
	return p, nil
}

// Release frees pin n if dev owns it.
func (r *Registry) Release(dev string, n int) {
	if r.owner[n] == dev {
		delete(r.owner, n)
	}
}

// ClaimOutput claims and configures an output line.
func (r *Registry) ClaimOutput(dev string, p OutputParams) (*Output, error) {
	pin, err := r.Claim(dev, p.Pin)
	if err != nil {
		return nil, err
	}
	o, err := NewOutput(pin, p)
	if err != nil {
		r.Release(dev, p.Pin)
		return nil, err
	}
	return o, nil
}

// ClaimInput claims and configures an input line.
func (r *Registry) ClaimInput(dev string, p InputParams) (*Input, error) {
	pin, err := r.Claim(dev, p.Pin)
	if err != nil {
		return nil, err
	}
	in, err := NewInput(pin, p)
	if err != nil {
		r.Release(dev, p.Pin)
		return nil, err
	}
	return in, nil
}
