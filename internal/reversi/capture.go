package reversi

// ResolveCaptures returns the opponent cells that a disc of player placed at
// (row, col) would flip. The target cell itself is not inspected.
func (that *Board) ResolveCaptures(mode Mode, row, col int, player PlayerID) []Position {
	var captures []Position

	for _, dir := range Directions {
		captures = append(captures, that.captureRun(mode, row, col, dir, player)...)
	}

	return captures
}

// captureRun scans one direction and returns the run it closes, or nil.
func (that *Board) captureRun(mode Mode, row, col int, dir Direction, player PlayerID) []Position {
	var (
		run      []Position
		runColor = Empty
	)

	for r, c := row+dir.DRow, col+dir.DCol; that.InBounds(r, c); r, c = r+dir.DRow, c+dir.DCol {
		cell := that.Cells[r][c]

		switch {
		case cell == Empty:
			return nil
		case cell == player:
			return run
		case mode == ThreePlayer && runColor != Empty && cell != runColor:
			// mixed opponent runs are never captured
			return nil
		}

		runColor = cell
		run = append(run, Position{Row: r, Col: c})
	}

	return nil
}
