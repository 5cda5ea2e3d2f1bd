package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

var errQuit = errors.New("quit")

var discs = map[reversi.PlayerID]byte{
	reversi.Empty:   '.',
	reversi.Player1: 'X',
	reversi.Player2: 'O',
	reversi.Player3: 'V',
}

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		Long: "Play a hot-seat game in the terminal.\n" +
			"Enter moves as \"row col\" (zero based), \"moves\" to list legal moves and \"quit\" to stop.",
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := cmd.Flags().GetInt("size")
			if err != nil {
				return err
			}

			players, err := cmd.Flags().GetInt("players")
			if err != nil {
				return err
			}

			return playGame(cmd.InOrStdin(), cmd.OutOrStdout(), size, reversi.Mode(players))
		},
	}

	cmd.Flags().IntP("size", "s", 8, "board size, even and between 4 and 26")
	cmd.Flags().IntP("players", "p", 2, "number of players, 2 or 3")

	return cmd
}

func playGame(in io.Reader, out io.Writer, size int, mode reversi.Mode) error {
	game, err := reversi.NewGame(size, mode)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)

	for game.IsActive() {
		renderBoard(out, game)
		fmt.Fprintf(out, "player %c> ", discs[game.CurrentPlayer])

		if !scanner.Scan() {
			return scanner.Err()
		}

		row, col, err := parseMove(scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, errListMoves):
			fmt.Fprintln(out, formatMoves(game.LegalMoves()))
			continue
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		}

		err = game.ApplyMove(row, col)
		if errors.Is(err, apperror.ErrGameFinished) {
			break
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
	}

	renderBoard(out, game)
	outcome, err := game.Outcome()
	if err != nil {
		return err
	}

	if outcome.IsTie() {
		fmt.Fprintln(out, "tie between", formatPlayers(outcome.Winners))
		return nil
	}

	fmt.Fprintf(out, "player %c wins\n", discs[outcome.Winner()])

	return nil
}

var errListMoves = errors.New("list moves")

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 {
		switch fields[0] {
		case "q", "quit":
			return 0, 0, errQuit
		case "m", "moves":
			return 0, 0, errListMoves
		}
	}

	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected \"row col\", got %q", line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", fields[1])
	}

	return row, col, nil
}

func renderBoard(out io.Writer, game *reversi.Game) {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < game.Board.Size; col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteByte('\n')

	for row := 0; row < game.Board.Size; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < game.Board.Size; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(discs[game.Board.At(row, col)])
		}
		sb.WriteByte('\n')
	}

	for _, player := range game.Mode.Players() {
		fmt.Fprintf(&sb, "%c: %d  ", discs[player], game.Scores[player])
	}
	sb.WriteByte('\n')

	fmt.Fprint(out, sb.String())
}

func formatMoves(moves []reversi.Position) string {
	parts := make([]string, len(moves))
	for i, move := range moves {
		parts[i] = fmt.Sprintf("%d %d", move.Row, move.Col)
	}
	return strings.Join(parts, ", ")
}

func formatPlayers(players []reversi.PlayerID) string {
	parts := make([]string, len(players))
	for i, player := range players {
		parts[i] = string(discs[player])
	}
	return strings.Join(parts, ", ")
}
