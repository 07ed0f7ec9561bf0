// Command crawl is a terminal dungeon crawler over the ecs and game
// packages. Movement keys are vi-style (hjkl plus yubn diagonals) or the
// arrow keys; '.' waits a turn, Esc or Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/mawside/cellar/ecs"
	"github.com/mawside/cellar/game"
)

func main() {
	seed := flag.Uint64("seed", 1, "dungeon generation seed")
	width := flag.Int("width", 80, "map width in tiles")
	height := flag.Int("height", 40, "map height in tiles")
	rooms := flag.Int("rooms", 12, "maximum rooms to carve")
	spawnsPath := flag.String("spawns", "", "path to a YAML monster spawn table")
	debugLog := flag.String("debug", "", "write a debug log to this file")
	flag.Parse()

	log := newLogger(*debugLog)

	opts := game.DefaultOptions()
	opts.Seed = *seed
	opts.MapWidth = *width
	opts.MapHeight = *height
	opts.MaxRooms = *rooms

	if *spawnsPath != "" {
		spawns, err := game.LoadSpawnConfig(*spawnsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts.Spawns = spawns
	}

	session := game.NewSession(opts)
	log.Info().
		Uint64("seed", opts.Seed).
		Int("rooms", len(session.Dungeon.Rooms)).
		Int("entities", session.World.Len()).
		Msg("session created")

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, session, log)
}

// newLogger writes debug output to a file when asked for, since the terminal
// belongs to tcell while the game runs.
func newLogger(path string) zerolog.Logger {
	if path == "" {
		return zerolog.New(io.Discard)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return zerolog.New(io.Discard)
	}
	return zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

func run(screen tcell.Screen, session *game.Session, log zerolog.Logger) {
	renderables := ecs.NewView[struct {
		*game.Position
		*game.Renderable
	}](session.World)

	for {
		draw(screen, session, renderables)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if session.GameOver() {
				continue
			}

			dx, dy, act := direction(ev)
			if !act {
				continue
			}

			session.Act(dx, dy)
			log.Debug().
				Int("dx", dx).Int("dy", dy).
				Int("turn", session.Turn()).
				Msg("player acted")
		}
	}
}

// direction maps a key event to a move delta. A zero delta with act=true is
// a wait.
func direction(ev *tcell.EventKey) (dx, dy int, act bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return -1, 0, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	}

	switch ev.Rune() {
	case 'h':
		return -1, 0, true
	case 'l':
		return 1, 0, true
	case 'k':
		return 0, -1, true
	case 'j':
		return 0, 1, true
	case 'y':
		return -1, -1, true
	case 'u':
		return 1, -1, true
	case 'b':
		return -1, 1, true
	case 'n':
		return 1, 1, true
	case '.', ' ':
		return 0, 0, true
	}
	return 0, 0, false
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(110, 110, 130))
	floorStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 60, 70))
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const messageLines = 3

func draw(screen tcell.Screen, session *game.Session, renderables *ecs.View[struct {
	*game.Position
	*game.Renderable
}]) {
	screen.Clear()

	dungeon := session.Dungeon
	for y := 0; y < dungeon.Height; y++ {
		for x := 0; x < dungeon.Width; x++ {
			switch dungeon.Tile(x, y) {
			case game.TileWall:
				screen.SetContent(x, y, '#', nil, wallStyle)
			case game.TileFloor:
				screen.SetContent(x, y, '.', nil, floorStyle)
			}
		}
	}

	for _, r := range renderables.Iter() {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			int32(r.Renderable.Fg.R),
			int32(r.Renderable.Fg.G),
			int32(r.Renderable.Fg.B),
		))
		screen.SetContent(r.Position.X, r.Position.Y, r.Renderable.Glyph, nil, style)
	}

	statusRow := dungeon.Height
	if stats := ecs.Get[game.CombatStats](session.World, session.PlayerID); stats != nil {
		drawText(screen, 0, statusRow, statusStyle,
			fmt.Sprintf("HP %d/%d  Turn %d", stats.HP, stats.MaxHP, session.Turn()))
	}

	for i, line := range session.Messages(messageLines) {
		drawText(screen, 0, statusRow+1+i, textStyle, line)
	}

	if session.GameOver() {
		drawText(screen, dungeon.Width/2-5, dungeon.Height/2, deadStyle, " GAME OVER ")
		drawText(screen, dungeon.Width/2-9, dungeon.Height/2+1, textStyle, " press Esc to quit ")
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
