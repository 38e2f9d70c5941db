package domain

// Color is the car colour carried by a coloured card or required by a coloured route.
type Color int

const (
	NoColor Color = iota
	ColorBlack
	ColorViolet
	ColorBlue
	ColorGreen
	ColorYellow
	ColorOrange
	ColorRed
	ColorWhite
)

// Colors lists the eight car colours in their canonical order.
var Colors = []Color{
	ColorBlack, ColorViolet, ColorBlue, ColorGreen,
	ColorYellow, ColorOrange, ColorRed, ColorWhite,
}

var colorNames = [...]string{"", "BLACK", "VIOLET", "BLUE", "GREEN", "YELLOW", "ORANGE", "RED", "WHITE"}

func (c Color) String() string {
	if c < NoColor || int(c) >= len(colorNames) {
		return "UNKNOWN"
	}
	return colorNames[c]
}

// Card is a train card. The zero value NoCard stands for "no card".
// Cards are ordered by declaration: the eight car colours, then the two wildcards.
type Card int

const (
	NoCard Card = iota
	Black
	Violet
	Blue
	Green
	Yellow
	Orange
	Red
	White
	Locomotive
	// Plane is a colourless wildcard that claims sky routes.
	Plane
)

// Cars lists the coloured cards, in colour order.
var Cars = []Card{Black, Violet, Blue, Green, Yellow, Orange, Red, White}

// AllCards lists every card kind in ascending order.
var AllCards = []Card{Black, Violet, Blue, Green, Yellow, Orange, Red, White, Locomotive, Plane}

var cardNames = [...]string{"", "BLACK", "VIOLET", "BLUE", "GREEN", "YELLOW", "ORANGE", "RED", "WHITE", "LOCOMOTIVE", "PLANE"}

// CarCard returns the coloured card of the given colour, or NoCard.
func CarCard(c Color) Card {
	if c <= NoColor || c > ColorWhite {
		return NoCard
	}
	return Card(c)
}

// Color returns the card's colour, NoColor for locomotives and planes.
func (c Card) Color() Color {
	if c >= Black && c <= White {
		return Color(c)
	}
	return NoColor
}

// IsWildcard reports whether the card carries no colour.
func (c Card) IsWildcard() bool {
	return c == Locomotive || c == Plane
}

// Compare orders cards by declaration order.
func (c Card) Compare(o Card) int {
	switch {
	case c < o:
		return -1
	case c > o:
		return 1
	}
	return 0
}

func (c Card) String() string {
	if c < NoCard || int(c) >= len(cardNames) {
		return "UNKNOWN"
	}
	return cardNames[c]
}
