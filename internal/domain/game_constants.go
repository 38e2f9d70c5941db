package domain

const (
	// PlayerCount is fixed: tCHu is a two-player game.
	PlayerCount = 2

	CarCardsCount        = 11 // per car colour
	LocomotiveCardsCount = 14
	PlaneCardsCount      = 8
	TotalCardsCount      = 8*CarCardsCount + LocomotiveCardsCount + PlaneCardsCount

	InitialCardsCount = 4
	InitialCarCount   = 45
	FaceUpCardsCount  = 5
	// DeckSlot is the slot index meaning "draw blind from the deck".
	DeckSlot = -1

	InitialTicketsCount        = 5
	MinInitialTicketsKept      = 3
	InGameTicketsCount         = 3
	MinInGameTicketsKept       = 1
	AdditionalTunnelCardsCount = 3
	LongestTrailBonusPoints    = 10
	// FinalLapCarCount triggers the last turn when a player's cars drop to this or below.
	FinalLapCarCount = 2

	MinRouteLength = 1
	MaxRouteLength = 6

	// DefaultSkySurcharge is the number of extra locomotives owed when claiming a sky route.
	DefaultSkySurcharge = 1
)

// FaceUpCardSlots lists the valid face-up slot indices.
var FaceUpCardSlots = []int{0, 1, 2, 3, 4}

var routeClaimPoints = [...]int{0, 1, 2, 4, 7, 10, 15}

// AllCardsBag returns the full 110 card bag a game starts from.
func AllCardsBag() Bag[Card] {
	var b BagBuilder[Card]
	for _, c := range Cars {
		b.Add(CarCardsCount, c)
	}
	b.Add(LocomotiveCardsCount, Locomotive)
	b.Add(PlaneCardsCount, Plane)
	return b.Build()
}
