package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

var suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Card rank runs 1 (ace) through 13 (king).
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

const RankAce = 1

func (c Card) String() string {
	names := map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}
	if n, ok := names[c.Rank]; ok {
		return fmt.Sprintf("%s of %s", n, c.Suit)
	}
	return fmt.Sprintf("%d of %s", c.Rank, c.Suit)
}

// BlackjackValue counts aces high; HandScore demotes them as needed.
func (c Card) BlackjackValue() int {
	switch {
	case c.Rank == RankAce:
		return 11
	case c.Rank >= 10:
		return 10
	default:
		return c.Rank
	}
}

// BaccaratValue is the pip value: face cards count zero, ace counts one.
func (c Card) BaccaratValue() int {
	if c.Rank >= 10 {
		return 0
	}
	return c.Rank
}

// Shoe is a single 52-card deck dealt from the top.
type Shoe struct {
	cards []Card
	next  int
}

// NewShoe builds a full deck and shuffles it (Fisher-Yates over a CSPRNG).
func NewShoe() *Shoe {
	cards := make([]Card, 0, 52)
	for _, s := range suits {
		for r := 1; r <= 13; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	shuffle(cards)
	return &Shoe{cards: cards}
}

// NewStackedShoe builds a shoe that deals the given cards in order. Used by
// tests to fix draws.
func NewStackedShoe(cards ...Card) *Shoe {
	return &Shoe{cards: cards}
}

func shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		j := 0
		if err == nil {
			j = int(n.Int64())
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw deals the next card. Panics only if the shoe is exhausted, which no
// single round can reach with a full deck.
func (s *Shoe) Draw() Card {
	c := s.cards[s.next]
	s.next++
	return c
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}
