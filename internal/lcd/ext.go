package lcd

// Bias selects the LCD voltage bias of an ST7032/ST7036.
type Bias byte

const (
	Bias1_5 Bias = bias1_5
	Bias1_4 Bias = bias1_4
)

// ExtLCD is an ST7032 or ST7036 controller. It adds contrast, booster,
// follower and icon control to CharLCD.
type ExtLCD struct {
	*CharLCD

	biasSet     byte
	powerSet    byte
	contrast    int
	follower    int
	iconAddress byte

	// initialised is set once the instruction table has been returned to 0.
	initialised bool
}

// NewExt initialises the controller behind drv with 1/5 bias, booster on,
// contrast 0x23 and follower amplification 4.
func NewExt(drv Driver, columns, lines int, opts ...Option) (*ExtLCD, error) {
	c, err := newCharLCD(drv, columns, lines, opts)
	if err != nil {
		return nil, err
	}
	// Bit 2 of the ST7032 function set is DH (double height), not 5x10.
	c.largeFont = false
	e := &ExtLCD{CharLCD: c, follower: -1}
	setup := e.initialize
	if c.attach {
		setup = e.reattach
	}
	if err := setup(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ExtLCD) initialize() error {
	eightBit, err := e.resetBus()
	if err != nil {
		return err
	}
	e.functionSet = e.baseFunctionSet(eightBit)
	e.resetShadows()

	if err := e.command(functionTable1 | e.functionSet); err != nil {
		return err
	}
	if err := e.command(e.biasSet); err != nil {
		return err
	}
	if err := e.SetContrast(defaultContrast); err != nil {
		return err
	}
	if err := e.SetFollower(defaultFollower); err != nil {
		return err
	}
	// Wait for the follower circuit to stabilise.
	e.sleep(followerDelay)
	if err := e.command(functionTable0 | e.functionSet); err != nil {
		return err
	}
	e.initialised = true
	return e.finishInit()
}

func (e *ExtLCD) resetShadows() {
	e.biasSet = cmdBiasSet | bias1_5
	if e.lines == 3 {
		e.biasSet |= bias3Line
	}
	e.powerSet = boosterOn
	e.iconAddress = 0
}

// reattach assumes the registers left by initialize and only resyncs the
// function set in instruction table 0.
func (e *ExtLCD) reattach() error {
	if err := e.CharLCD.reattach(); err != nil {
		return err
	}
	e.resetShadows()
	e.contrast = defaultContrast
	e.follower = defaultFollower
	e.initialised = true
	return nil
}

// extended runs fn with instruction table 1 selected. In table 0 the same
// opcodes address CGRAM.
func (e *ExtLCD) extended(fn func() error) error {
	if !e.initialised {
		return fn()
	}
	if err := e.command(functionTable1 | e.functionSet); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return e.command(functionTable0 | e.functionSet)
}

func (e *ExtLCD) powerCommand() byte {
	return cmdPowerSet | e.powerSet | byte(e.contrast>>4)
}

func (e *ExtLCD) Contrast() int { return e.contrast }

// SetContrast sets the 6-bit contrast, clamped to 0..MaxContrast. The low
// nibble goes to the contrast set instruction and the top two bits share the
// power/icon instruction.
func (e *ExtLCD) SetContrast(contrast int) error {
	contrast = clamp(contrast, 0, MaxContrast)
	return e.extended(func() error {
		if err := e.command(cmdContrastLow | byte(contrast&0x0F)); err != nil {
			return err
		}
		e.contrast = contrast
		return e.command(e.powerCommand())
	})
}

// Follower returns the follower amplification, or -1 when it is off.
func (e *ExtLCD) Follower() int { return e.follower }

// SetFollower sets the voltage follower amplification ratio, clamped to
// MaxFollower. A negative amp switches the follower circuit off.
func (e *ExtLCD) SetFollower(amp int) error {
	return e.extended(func() error {
		if amp < 0 {
			if err := e.command(cmdFollowerOff); err != nil {
				return err
			}
			e.follower = -1
			return nil
		}
		amp = min(amp, MaxFollower)
		if err := e.command(cmdFollowerOn | byte(amp)); err != nil {
			return err
		}
		e.follower = amp
		return nil
	})
}

func (e *ExtLCD) Booster() bool { return e.powerSet&boosterOn != 0 }

// SetBooster switches the internal voltage booster.
func (e *ExtLCD) SetBooster(enable bool) error {
	return e.setPower(boosterOn, enable)
}

func (e *ExtLCD) Icon() bool { return e.powerSet&iconOn != 0 }

// SetIcon switches icon RAM display.
func (e *ExtLCD) SetIcon(enable bool) error {
	return e.setPower(iconOn, enable)
}

func (e *ExtLCD) setPower(field byte, set bool) error {
	prev := e.powerSet
	e.powerSet &^= field
	if set {
		e.powerSet |= field
	}
	err := e.extended(func() error { return e.command(e.powerCommand()) })
	if err != nil {
		e.powerSet = prev
	}
	return err
}

// SetBias selects the LCD bias ratio. The 3-line flag follows the geometry.
func (e *ExtLCD) SetBias(b Bias) error {
	bs := cmdBiasSet | byte(b)
	if e.lines == 3 {
		bs |= bias3Line
	}
	return e.extended(func() error {
		if err := e.command(bs); err != nil {
			return err
		}
		e.biasSet = bs
		return nil
	})
}

func (e *ExtLCD) IconAddress() byte { return e.iconAddress }

// SetIconAddress points the address counter at icon RAM (0..15).
func (e *ExtLCD) SetIconAddress(address byte) error {
	address &= 0x0F
	return e.extended(func() error {
		if err := e.command(cmdIconAddress | address); err != nil {
			return err
		}
		e.iconAddress = address
		return nil
	})
}

// WriteIcon writes the five segment bits of icon RAM address.
func (e *ExtLCD) WriteIcon(address, bits byte) error {
	address &= 0x0F
	return e.extended(func() error {
		if err := e.command(cmdIconAddress | address); err != nil {
			return err
		}
		e.iconAddress = address
		return e.data(bits & 0x1F)
	})
}
