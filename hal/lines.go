package hal

// OutputParams configures a logical output line.
type OutputParams struct {
	Pin       int
	ActiveLow bool
	Initial   bool // logical level applied when the pin is configured
}

// Output drives a pin with optional active-low polarity.
type Output struct {
	pin       GPIOPin
	activeLow bool
}

// NewOutput configures pin as an output at the logical Initial level.
func NewOutput(pin GPIOPin, p OutputParams) (*Output, error) {
	o := &Output{pin: pin, activeLow: p.ActiveLow}
	if err := pin.ConfigureOutput(o.level(p.Initial)); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Output) level(on bool) bool {
	if o.activeLow {
		return !on
	}
	return on
}

// Set asserts (true) or deasserts (false) the line.
func (o *Output) Set(on bool) { o.pin.Set(o.level(on)) }

// On reports the logical level currently driven.
func (o *Output) On() bool { return o.level(o.pin.Get()) }

func (o *Output) Pin() int { return o.pin.Number() }

// InputParams configures a logical input line.
type InputParams struct {
	Pin    int
	Pull   Pull
	Invert bool // true if active == electrically low
}

// Input reads a pin with optional inversion.
type Input struct {
	pin    GPIOPin
	invert bool
}

func NewInput(pin GPIOPin, p InputParams) (*Input, error) {
	if err := pin.ConfigureInput(p.Pull); err != nil {
		return nil, err
	}
	return &Input{pin: pin, invert: p.Invert}, nil
}

// Active reports the logical level.
func (in *Input) Active() bool {
	lvl := in.pin.Get()
	if in.invert {
		return !lvl
	}
	return lvl
}

func (in *Input) Pin() int { return in.pin.Number() }
