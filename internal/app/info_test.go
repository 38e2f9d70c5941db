package app

import (
	"testing"

	"tchu/internal/domain"
)

func TestInfoPlurals(t *testing.T) {
	ada := NewInfo("Ada")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"one ticket", ada.KeptTickets(1), "Ada kept 1 ticket."},
		{"many tickets", ada.KeptTickets(3), "Ada kept 3 tickets."},
		{"drew tickets", ada.DrewTickets(3), "Ada drew 3 tickets..."},
		{"one card", CardName(domain.Red, 1), "1 red card"},
		{"many locomotives", CardName(domain.Locomotive, 2), "2 locomotives"},
		{"bag", BagName(domain.NewBag(domain.Red, domain.Red, domain.Blue, domain.Locomotive)), "1 blue card, 2 red cards and 1 locomotive"},
		{"no cost", ada.DrewAdditionalCards(domain.NewBag(domain.Plane), 0), "The additional cards are 1 plane. They add no cost."},
		{"cost", ada.DrewAdditionalCards(domain.NewBag(domain.Red, domain.Red), 2), "The additional cards are 2 red cards. They add a cost of 2 cards."},
		{"last turn", ada.LastTurnBegins(1), "Ada has only 1 car left, the last turn begins!"},
		{"draw", Draw([]string{"Ada", "Charles"}, 42), "Ada and Charles are tied with 42 points each!"},
		{"won", ada.Won(50, 40), "Ada wins with 50 points against 40 points!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
