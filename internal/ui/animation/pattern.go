package animation

// Pattern defines the pulse pattern for a single warning second.
type Pattern struct {
	Pulses int
}

// PatternFor returns the flash for a warning tick with remaining seconds left.
// The final second pulses twice.
func PatternFor(remaining int) Pattern {
	if remaining <= 1 {
		return Pattern{Pulses: 2}
	}
	return Pattern{Pulses: 1}
}
