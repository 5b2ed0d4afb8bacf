package engine

import "github.com/katalvlaran/nanovox/coord"

// Harmonics is the engine's two-valued oscillation mode: Low enables the
// (optionally enforced) groundedness constraint and the cheaper baseline
// energy rate; High relaxes groundedness at a higher baseline rate.
type Harmonics byte

const (
	// Low is the initial harmonics state.
	Low Harmonics = iota
	// High is entered and left only via Flip.
	High
)

func (h Harmonics) String() string {
	if h == High {
		return "High"
	}

	return "Low"
}

// Bot is a single nanobot: its identity, position, and the pool of unused
// bot IDs ("seeds") it can hand out via Fission.
type Bot struct {
	Bid   byte
	Pos   coord.Pn
	Seeds []byte
}

func cloneBot(b Bot) Bot {
	seeds := make([]byte, len(b.Seeds))
	copy(seeds, b.Seeds)

	return Bot{Bid: b.Bid, Pos: b.Pos, Seeds: seeds}
}

func cloneBots(bots []Bot) []Bot {
	res := make([]Bot, len(bots))
	for i, b := range bots {
		res[i] = cloneBot(b)
	}

	return res
}
