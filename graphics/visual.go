// Package graphics owns the visual appearance sequence of one entity:
// character visuals, timed frames, scenes, and the per-entity animation
// state machine that selects which visual applies each tick.
package graphics

// StyleFlag is a bitset of terminal text attributes.
type StyleFlag uint8

const (
	StyleBold StyleFlag = 1 << iota
	StyleDim
	StyleItalic
	StyleUnderline
	StyleBlink
	StyleReverse
	StyleHidden
	StyleStrike
)

// CharacterVisual is one still appearance: a symbol plus styling. Visuals
// are immutable values; scenes hold sequences of them.
type CharacterVisual struct {
	Symbol rune
	Style  StyleFlag
	FG     RGB
	HasFG  bool
}

// Visual builds an unstyled visual for symbol.
func Visual(symbol rune) CharacterVisual {
	return CharacterVisual{Symbol: symbol}
}

// ColoredVisual builds a visual with a foreground color.
func ColoredVisual(symbol rune, fg RGB) CharacterVisual {
	return CharacterVisual{Symbol: symbol, FG: fg, HasFG: true}
}

// Frame is a visual held for a fixed number of ticks. Only the play
// counter mutates after construction.
type Frame struct {
	Visual   CharacterVisual
	Duration int

	ticksElapsed int
}
