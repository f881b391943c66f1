package game

// Baccarat is a single-shot round: two hands are dealt, the third-card
// tableau is applied, and the higher mod-10 score wins.

type BaccaratBet string

const (
	BaccaratBetPlayer BaccaratBet = "player"
	BaccaratBetBanker BaccaratBet = "banker"
	BaccaratBetTie    BaccaratBet = "tie"
)

const (
	// Total-return multipliers on the staked bet.
	BaccaratPayoutPlayer = 2.0
	BaccaratPayoutBanker = 1.95 // 19:20, models the 5% banker commission
	BaccaratPayoutTie    = 9.0
)

type BaccaratResult struct {
	PlayerHand  []Card `json:"player_hand"`
	BankerHand  []Card `json:"banker_hand"`
	PlayerScore int    `json:"player_score"`
	BankerScore int    `json:"banker_score"`
	Winner      string `json:"winner"` // player, banker, tie
}

// BaccaratScore is the hand's pip sum mod 10.
func BaccaratScore(cards []Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.BaccaratValue()
	}
	return sum % 10
}

// PlayBaccarat deals a round from the given shoe and resolves it. Passing a
// stacked shoe makes the round fully deterministic.
func PlayBaccarat(shoe *Shoe) *BaccaratResult {
	player := []Card{shoe.Draw(), shoe.Draw()}
	banker := []Card{shoe.Draw(), shoe.Draw()}
	return ResolveBaccarat(shoe, player, banker)
}

// ResolveBaccarat applies the third-card tableau to the initial hands,
// drawing any extra cards from the shoe, and determines the winner.
//
// Player draws on an initial score of 5 or less. Banker draws on 5 or less
// when the player stood; when the player drew, banker draws on 2 or less,
// or on exactly 3 unless the player's third card was an 8.
func ResolveBaccarat(shoe *Shoe, player, banker []Card) *BaccaratResult {
	playerScore := BaccaratScore(player)
	bankerScore := BaccaratScore(banker)

	playerDrew := false
	var playerThird Card
	if playerScore <= 5 {
		playerThird = shoe.Draw()
		player = append(player, playerThird)
		playerScore = BaccaratScore(player)
		playerDrew = true
	}

	bankerDraws := false
	if !playerDrew {
		bankerDraws = bankerScore <= 5
	} else {
		switch {
		case bankerScore <= 2:
			bankerDraws = true
		case bankerScore == 3:
			bankerDraws = playerThird.BaccaratValue() != 8
		}
	}
	if bankerDraws {
		banker = append(banker, shoe.Draw())
		bankerScore = BaccaratScore(banker)
	}

	winner := "tie"
	if playerScore > bankerScore {
		winner = "player"
	} else if bankerScore > playerScore {
		winner = "banker"
	}

	return &BaccaratResult{
		PlayerHand:  player,
		BankerHand:  banker,
		PlayerScore: playerScore,
		BankerScore: bankerScore,
		Winner:      winner,
	}
}

// Payout returns the total return for a bet on the given side. Losing bets
// return zero; the stake was already deducted at round start.
func (r *BaccaratResult) Payout(bet BaccaratBet, stake int64) int64 {
	switch {
	case bet == BaccaratBetPlayer && r.Winner == "player":
		return int64(float64(stake) * BaccaratPayoutPlayer)
	case bet == BaccaratBetBanker && r.Winner == "banker":
		return int64(float64(stake) * BaccaratPayoutBanker)
	case bet == BaccaratBetTie && r.Winner == "tie":
		return int64(float64(stake) * BaccaratPayoutTie)
	default:
		return 0
	}
}

// ValidBaccaratBet reports whether the bet side is one of the three options.
func ValidBaccaratBet(bet BaccaratBet) bool {
	return bet == BaccaratBetPlayer || bet == BaccaratBetBanker || bet == BaccaratBetTie
}
