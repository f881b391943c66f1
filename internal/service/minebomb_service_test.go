package service

import (
	"context"
	"errors"
	"testing"

	"checkels_casino/internal/game"
)

func TestMinebombCashOutKeepsRoundWhenCreditFails(t *testing.T) {
	s := &MinebombService{activeRounds: make(map[int64]*game.MinebombGame)}
	g, err := game.NewMinebombGame("r1", 9, 200, 3)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	s.activeRounds[9] = g

	s.creditFn = func(context.Context, *game.MinebombGame) error {
		return errors.New("write failed")
	}
	if _, err := s.CashOut(context.Background(), 9); err == nil {
		t.Fatalf("expected the credit error to surface")
	}
	kept, ok := s.activeRounds[9]
	if !ok || kept != g {
		t.Fatalf("round dropped before its payout was persisted")
	}
	if kept.Status != game.MinebombStatusCashedOut || kept.WinAmount != 200 {
		t.Fatalf("status=%s win=%d; want cashed_out 200 awaiting retry", kept.Status, kept.WinAmount)
	}

	var credited []*game.MinebombGame
	s.creditFn = func(_ context.Context, g *game.MinebombGame) error {
		credited = append(credited, g)
		return nil
	}
	s.sweepRounds()
	if _, ok := s.activeRounds[9]; ok {
		t.Fatalf("round still mapped after a committed credit")
	}
	if len(credited) != 1 || credited[0] != g {
		t.Fatalf("credit not retried for the kept round")
	}
}

func TestMinebombStartBlocksOnUncreditedRound(t *testing.T) {
	s := &MinebombService{activeRounds: make(map[int64]*game.MinebombGame)}
	g, err := game.NewMinebombGame("r1", 9, 200, 3)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if _, err := g.CashOut(); err != nil {
		t.Fatalf("cashout: %v", err)
	}
	s.activeRounds[9] = g

	s.creditFn = func(context.Context, *game.MinebombGame) error {
		return errors.New("write failed")
	}
	if _, err := s.Start(context.Background(), 9, 100, 3); err == nil {
		t.Fatalf("expected Start to refuse while a payout is pending")
	}
	if _, ok := s.activeRounds[9]; !ok {
		t.Fatalf("pending round was discarded")
	}
}
