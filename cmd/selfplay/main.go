// Command selfplay runs fog-of-war games without a server: it replays a move
// list or lets the search play both sides, printing each side's view and the
// outcome.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/fogchess-backend/internal/ai"
	"github.com/benbeisheim/fogchess-backend/internal/engine"
)

func main() {
	layoutFile := flag.String("layout", "", "placement file (default: standard position)")
	replay := flag.String("replay", "", "comma-separated moves to replay instead of searching")
	depth := flag.Int("depth", 1, "search depth")
	width := flag.Int("width", 3, "moves kept per ply")
	workers := flag.Int("workers", 1, "parallel search workers")
	maxMoves := flag.Int("max-moves", 200, "stop after this many moves")
	views := flag.Bool("views", false, "print both views after every move")
	flag.Parse()

	placements, err := loadPlacements(*layoutFile)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	if *replay != "" {
		b, err := engine.Replay(placements, splitMoves(*replay))
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		report(os.Stdout, b)
		return
	}

	b := engine.NewBoard()
	if err := b.Load(placements); err != nil {
		log.Fatalf("layout: %v", err)
	}
	if err := selfPlay(context.Background(), os.Stdout, b, *depth, *width, *workers, *maxMoves, *views); err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, b)
}

func loadPlacements(path string) ([]engine.Placement, error) {
	if path == "" {
		return engine.ParseLayoutString(engine.StandardLayout)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.ParseLayout(f)
}

func splitMoves(s string) []string {
	var out []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// selfPlay lets the search move for whichever side holds the turn until the
// game ends, a side has no move or maxMoves is reached.
func selfPlay(ctx context.Context, w io.Writer, b *engine.Board, depth, width, workers, maxMoves int, views bool) error {
	for _, c := range engine.Colors {
		b.Vision(c)
	}
	for b.HistoryLen() < maxMoves && !b.Ended() {
		c, err := b.StartTurn()
		if err != nil {
			return err
		}
		b.Vision(c)
		res, err := ai.SearchParallel(ctx, b, c, depth, width, workers)
		if errors.Is(err, ai.ErrEmptySearchSpace) {
			fmt.Fprintf(w, "%s has no moves\n", c)
			return nil
		}
		if err != nil {
			return err
		}
		moved, err := b.DoMove(res.Move().FromX, res.Move().FromY, res.Move().ToX, res.Move().ToY)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("search chose unplayable move %s", res.Move())
		}
		fmt.Fprintf(w, "%3d. %-5s %s (score %d, %d nodes)\n", b.HistoryLen(), c, res.Move(), res.Score, res.Nodes)
		if views {
			for _, side := range engine.Colors {
				render(w, b.View(side))
			}
		}
	}
	return nil
}

func report(w io.Writer, b *engine.Board) {
	for _, c := range engine.Colors {
		render(w, b.View(c))
	}
	fmt.Fprintf(w, "outcome: %s after %d moves\n", b.Outcome(), b.HistoryLen())
	fmt.Fprintf(w, "history: %s\n", strings.Join(b.History(), " "))
	for _, c := range engine.Colors {
		fmt.Fprintf(w, "%s lost:", c)
		for _, k := range engine.Kinds {
			if n := b.Captured(c)[k]; n > 0 {
				fmt.Fprintf(w, " %dx%s", n, k)
			}
		}
		fmt.Fprintln(w)
	}
}

// render prints a view with rank 8 on top. Visible squares show their piece
// or '.', squares in fog show a remembered piece in brackets or '~'.
func render(w io.Writer, v engine.View) {
	fmt.Fprintf(w, "%s's view:\n", v.Color)
	for y, row := range v.Squares {
		fmt.Fprintf(w, "%d ", engine.Size-y)
		for _, sq := range row {
			fmt.Fprint(w, cell(sq))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "  ")
	for x := 0; x < engine.Size; x++ {
		fmt.Fprintf(w, " %c ", 'a'+x)
	}
	fmt.Fprintln(w)
}

func cell(sq engine.SquareView) string {
	switch {
	case sq.Piece != nil:
		return " " + letter(*sq.Piece) + " "
	case sq.Memory != nil:
		return "[" + letter(*sq.Memory) + "]"
	case sq.Visible:
		return " . "
	}
	return " ~ "
}

func letter(s engine.Shape) string {
	l := string(s.Kind.Letter())
	if s.Color == engine.Black {
		return strings.ToLower(l)
	}
	return l
}
