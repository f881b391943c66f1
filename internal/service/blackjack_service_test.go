package service

import (
	"context"
	"errors"
	"testing"

	"checkels_casino/internal/game"
)

// dealActiveBlackjackRound keeps dealing until the opening hands leave the
// round undecided (no natural on either side).
func dealActiveBlackjackRound(t *testing.T, userID, bet int64) *game.BlackjackGame {
	t.Helper()
	for i := 0; i < 100; i++ {
		g, err := game.NewBlackjackGame("r1", userID, bet)
		if err != nil {
			t.Fatalf("new game: %v", err)
		}
		if g.IsActive() {
			return g
		}
	}
	t.Fatalf("could not deal an undecided opening hand")
	return nil
}

func TestBlackjackStandKeepsRoundWhenSettleFails(t *testing.T) {
	s := &BlackjackService{activeRounds: make(map[int64]*game.BlackjackGame)}
	g := dealActiveBlackjackRound(t, 7, 100)
	s.activeRounds[7] = g

	s.settleFn = func(context.Context, *game.BlackjackGame) error {
		return errors.New("write failed")
	}
	if _, err := s.Stand(context.Background(), 7); err == nil {
		t.Fatalf("expected the settlement error to surface")
	}
	if kept, ok := s.activeRounds[7]; !ok || kept != g {
		t.Fatalf("round dropped before its payout was persisted")
	}

	var settled []*game.BlackjackGame
	s.settleFn = func(_ context.Context, g *game.BlackjackGame) error {
		settled = append(settled, g)
		return nil
	}
	s.sweepRounds()
	if _, ok := s.activeRounds[7]; ok {
		t.Fatalf("round still mapped after a committed settlement")
	}
	if len(settled) != 1 || settled[0] != g {
		t.Fatalf("settlement not retried for the kept round")
	}
}

func TestBlackjackStartBlocksOnUnsettledRound(t *testing.T) {
	s := &BlackjackService{activeRounds: make(map[int64]*game.BlackjackGame)}
	g := dealActiveBlackjackRound(t, 7, 100)
	_ = g.Stand()
	s.activeRounds[7] = g

	s.settleFn = func(context.Context, *game.BlackjackGame) error {
		return errors.New("write failed")
	}
	if _, err := s.Start(context.Background(), 7, 50); err == nil {
		t.Fatalf("expected Start to refuse while a payout is pending")
	}
	if _, ok := s.activeRounds[7]; !ok {
		t.Fatalf("pending round was discarded")
	}
}
