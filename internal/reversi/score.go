package reversi

import "github.com/rocketscienceinc/reversi-backend/internal/apperror"

// Scores maps every seat of the mode to its disc count.
type Scores map[PlayerID]int

func newScores(mode Mode) Scores {
	scores := make(Scores, int(mode))
	for _, player := range mode.Players() {
		scores[player] = 0
	}
	return scores
}

func (that Scores) Total() int {
	total := 0
	for _, count := range that {
		total += count
	}
	return total
}

func (that *Game) recomputeScores() {
	for player := range that.Scores {
		that.Scores[player] = 0
	}

	for _, row := range that.Board.Cells {
		for _, cell := range row {
			if cell != Empty {
				that.Scores[cell]++
			}
		}
	}
}

// Outcome is the result of a finished game. More than one winner is a tie.
type Outcome struct {
	Winners []PlayerID `json:"winners"`
	Scores  Scores     `json:"scores"`
}

func (that Outcome) IsTie() bool {
	return len(that.Winners) > 1
}

// Winner returns the single winner, or Empty for a tie.
func (that Outcome) Winner() PlayerID {
	if that.IsTie() || len(that.Winners) == 0 {
		return Empty
	}
	return that.Winners[0]
}

// Outcome reports the winners of a finished game.
func (that *Game) Outcome() (Outcome, error) {
	if that.Active {
		return Outcome{}, apperror.ErrGameIsOngoing
	}

	return DetermineOutcome(that.Mode, that.Scores), nil
}

// DetermineOutcome picks every seat whose score equals the maximum.
func DetermineOutcome(mode Mode, scores Scores) Outcome {
	best := -1
	for _, player := range mode.Players() {
		best = max(best, scores[player])
	}

	winners := []PlayerID{}
	for _, player := range mode.Players() {
		if scores[player] == best {
			winners = append(winners, player)
		}
	}

	final := make(Scores, len(scores))
	for player, count := range scores {
		final[player] = count
	}

	return Outcome{Winners: winners, Scores: final}
}
