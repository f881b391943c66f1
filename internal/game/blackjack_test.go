package game

import "testing"

func card(rank int) Card { return Card{Rank: rank, Suit: SuitSpades} }

func TestHandScore(t *testing.T) {
	cases := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"ace king", []Card{card(1), card(13)}, 21},
		{"double ace nine", []Card{card(1), card(1), card(9)}, 21},
		{"king five", []Card{card(13), card(5)}, 15},
		{"king queen five busts", []Card{card(13), card(12), card(5)}, 25},
		{"soft seventeen", []Card{card(1), card(6)}, 17},
		{"ace demoted on hit", []Card{card(1), card(6), card(10)}, 17},
		{"four aces", []Card{card(1), card(1), card(1), card(1)}, 14},
	}

	for _, tc := range cases {
		if got := HandScore(tc.cards); got != tc.want {
			t.Fatalf("%s: HandScore = %d; want %d", tc.name, got, tc.want)
		}
	}
}

func TestBlackjackNaturalPaysTwoAndHalf(t *testing.T) {
	// Deal order: player, player, dealer, dealer.
	shoe := NewStackedShoe(card(1), card(13), card(9), card(8))
	g, err := newBlackjackGame("r1", 1, 100, shoe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Status != BlackjackStatusSettled || g.Outcome != BlackjackOutcomeBlackjack {
		t.Fatalf("status=%s outcome=%s; want settled blackjack", g.Status, g.Outcome)
	}
	if g.WinAmount != 250 {
		t.Fatalf("WinAmount = %d; want 250", g.WinAmount)
	}
}

func TestBlackjackDoubleNaturalPushes(t *testing.T) {
	shoe := NewStackedShoe(card(1), card(13), card(1), card(12))
	g, err := newBlackjackGame("r1", 1, 100, shoe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Outcome != BlackjackOutcomePush {
		t.Fatalf("outcome = %s; want push", g.Outcome)
	}
	if g.WinAmount != 100 {
		t.Fatalf("WinAmount = %d; want stake back", g.WinAmount)
	}
}

func TestBlackjackDealerHitsBelowSeventeen(t *testing.T) {
	// Player 20, dealer 16 then draws a 5 and busts at 21? No: 16+5=21.
	// Dealer: 10+6=16, must hit, draws 2 -> 18, stands. Player 20 wins 2x.
	shoe := NewStackedShoe(card(13), card(10), card(10), card(6), card(2))
	g, err := newBlackjackGame("r1", 1, 50, shoe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Stand(); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if got := HandScore(g.DealerHand); got != 18 {
		t.Fatalf("dealer score = %d; want 18", got)
	}
	if g.Outcome != BlackjackOutcomeWin || g.WinAmount != 100 {
		t.Fatalf("outcome=%s win=%d; want win 100", g.Outcome, g.WinAmount)
	}
}

func TestBlackjackDealerBustPaysPlayer(t *testing.T) {
	// Player 18 stands; dealer 10+6 hits a king and busts.
	shoe := NewStackedShoe(card(9), card(9), card(10), card(6), card(13))
	g, _ := newBlackjackGame("r1", 1, 50, shoe)
	if err := g.Stand(); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.Outcome != BlackjackOutcomeWin || g.WinAmount != 100 {
		t.Fatalf("outcome=%s win=%d; want win 100", g.Outcome, g.WinAmount)
	}
}

func TestBlackjackPlayerBustLosesImmediately(t *testing.T) {
	// Player 10+9, hits a king -> 29 bust.
	shoe := NewStackedShoe(card(10), card(9), card(5), card(6), card(13))
	g, _ := newBlackjackGame("r1", 1, 50, shoe)
	if err := g.Hit(); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if g.Outcome != BlackjackOutcomeLose || g.WinAmount != 0 {
		t.Fatalf("outcome=%s win=%d; want lose 0", g.Outcome, g.WinAmount)
	}
	if err := g.Hit(); err == nil {
		t.Fatalf("expected error hitting a settled round")
	}
}

func TestBlackjackPushRefundsStake(t *testing.T) {
	// Player 19 vs dealer 10+9 = 19.
	shoe := NewStackedShoe(card(10), card(9), card(10), card(9))
	g, _ := newBlackjackGame("r1", 1, 80, shoe)
	if err := g.Stand(); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if g.Outcome != BlackjackOutcomePush || g.WinAmount != 80 {
		t.Fatalf("outcome=%s win=%d; want push 80", g.Outcome, g.WinAmount)
	}
}

func TestBlackjackRejectsNonPositiveBet(t *testing.T) {
	if _, err := NewBlackjackGame("r1", 1, 0); err == nil {
		t.Fatalf("expected error for zero bet")
	}
}
