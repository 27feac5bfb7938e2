// Package render draws a game.Board as text: a plain one-shot dump for
// logs and piped output, and an interactive bubbletea program for
// watching a game tick by tick in a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/pommergo/pommergo/game"
)

// cellRune returns the character for one board cell. An agent standing
// on its own planted bomb still shows as the bomb ('o'); the agent's
// position is visible in Status instead.
func cellRune(b *game.Board, pos game.Position) rune {
	item := b.ItemAt(pos)
	switch {
	case game.IsAgent(item):
		if b.HasBomb(pos) {
			return 'o'
		}
		return rune('0' + int(item-game.Agent0))
	case item == game.Rigid:
		return '#'
	case game.IsWood(item):
		return '%'
	case item == game.BombItem:
		return 'o'
	case game.IsFlame(item):
		return '*'
	case item == game.ExtraBomb:
		return 'E'
	case item == game.IncrRange:
		return 'R'
	case item == game.Kick:
		return 'K'
	case item == game.Fog:
		return '?'
	default:
		return '.'
	}
}

// ASCII renders b as a BoardSize-line string: BoardSize newline-terminated
// rows of BoardSize characters, one character per cell, top row first.
func ASCII(b *game.Board) string {
	var sb strings.Builder
	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			sb.WriteRune(cellRune(b, game.Position{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderClear emits the ANSI sequence that clears the terminal and homes
// the cursor, matching the original implementation's behavior between
// rendered frames.
func RenderClear() string {
	return "\x1b[H\x1b[2J"
}

// Status renders a short one-line summary of the tick and each agent's
// vitals, shown above the board.
func Status(state *game.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d", state.Tick)
	for i, a := range state.Agents {
		status := "alive"
		if a.Dead {
			status = "dead"
		}
		fmt.Fprintf(&sb, "  A%d:%s@(%d,%d) ammo=%d str=%d kick=%v",
			i, status, a.Pos.X, a.Pos.Y, a.MaxBombCount-a.BombCount, a.BombStrength, a.CanKick)
	}
	return sb.String()
}
