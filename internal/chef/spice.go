package chef

// Spice is a cosmetic augmentation applied to a candidate.
type Spice int

const (
	SpiceAppendNumber Spice = iota
	SpicePrependSymbol
	SpiceSplit
	SpiceNone

	spiceCount
)

var (
	spiceSymbols    = []string{"!", "@", "#"}
	spiceSeparators = []string{"-", "_", "~"}
)

func (s Spice) String() string {
	switch s {
	case SpiceAppendNumber:
		return "append-number"
	case SpicePrependSymbol:
		return "prepend-symbol"
	case SpiceSplit:
		return "split"
	case SpiceNone:
		return "none"
	default:
		return "unknown"
	}
}

func (c *Chef) addSpice(password string) string {
	return c.applySpice(Spice(c.rng.IntN(int(spiceCount))), password)
}

func (c *Chef) applySpice(s Spice, password string) string {
	switch s {
	case SpiceAppendNumber:
		// No numbers in the pantry: leave the candidate alone.
		if len(c.pantry.Numbers) == 0 {
			return password
		}
		return password + c.pantry.Numbers[c.rng.IntN(len(c.pantry.Numbers))]
	case SpicePrependSymbol:
		return spiceSymbols[c.rng.IntN(len(spiceSymbols))] + password
	case SpiceSplit:
		runes := []rune(password)
		mid := len(runes) / 2
		return string(runes[:mid]) + spiceSeparators[c.rng.IntN(len(spiceSeparators))] + string(runes[mid:])
	default:
		return password
	}
}
