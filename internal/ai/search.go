package ai

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/worker"
)

var (
	// ErrEmptySearchSpace is returned when the side to search has no moves.
	ErrEmptySearchSpace = errors.New("empty search space")
	// ErrInvalidBounds is returned for a negative depth or a width below one.
	ErrInvalidBounds = errors.New("invalid search bounds")
)

// Result is the outcome of a search.
type Result struct {
	// Score is the objective at the end of Line.
	Score int
	// Line holds the chosen move followed by its continuation, depth+1 moves
	// unless the side ran out of moves on the way.
	Line []engine.Move
	// Nodes counts positions evaluated.
	Nodes int
}

// Move returns the first move of the line.
func (r Result) Move() engine.Move {
	return r.Line[0]
}

// searcher walks one board with make/unmake. It is not safe for concurrent
// use; parallel searches give every worker its own clone.
type searcher struct {
	b     *engine.Board
	color engine.Color
	nodes int
}

// Search picks a line of moves for color. At every ply it keeps the width best
// moves by Objective and, while depth remains, continues each of them with
// further moves of the same color. The opponent never replies: this is a
// lookahead over the side's own plans, not minimax. Depth 0 is a greedy pick.
// The board is restored before Search returns.
func Search(b *engine.Board, color engine.Color, depth, width int) (Result, error) {
	if err := checkBounds(depth, width); err != nil {
		return Result{}, err
	}
	s := &searcher{b: b, color: color}
	score, line, err := s.search(depth, width)
	if err != nil {
		return Result{}, err
	}
	return Result{Score: score, Line: line, Nodes: s.nodes}, nil
}

func checkBounds(depth, width int) error {
	if depth < 0 || width < 1 {
		return fmt.Errorf("%w: depth %d, width %d", ErrInvalidBounds, depth, width)
	}
	return nil
}

// rank scores every legal move of the side and keeps the best width.
func (s *searcher) rank(width int) (*topK[engine.Move], error) {
	top := newTopK[engine.Move](width)
	for _, m := range s.b.LegalMoves(s.color) {
		u, err := s.b.Apply(m)
		if err != nil {
			return nil, err
		}
		score := Objective(s.b, s.color)
		s.b.Revert(u)
		s.nodes++
		top.add(m, score)
	}
	if top.len() == 0 {
		return nil, fmt.Errorf("%w: %s has no moves", ErrEmptySearchSpace, s.color)
	}
	return top, nil
}

func (s *searcher) search(depth, width int) (int, []engine.Move, error) {
	if depth == 0 {
		width = 1
	}
	top, err := s.rank(width)
	if err != nil {
		return 0, nil, err
	}
	if depth == 0 {
		return top.scores[0], []engine.Move{top.items[0]}, nil
	}

	best, line := math.MinInt, []engine.Move(nil)
	for i, m := range top.items {
		score, cont, err := s.follow(m, top.scores[i], depth, width)
		if err != nil {
			return 0, nil, err
		}
		if score > best {
			best = score
			line = append([]engine.Move{m}, cont...)
		}
	}
	return best, line, nil
}

// follow commits m, searches its continuation and takes m back. A side left
// without moves ends the line on m's own score.
func (s *searcher) follow(m engine.Move, score, depth, width int) (int, []engine.Move, error) {
	u, err := s.b.Apply(m)
	if err != nil {
		return 0, nil, err
	}
	defer s.b.Revert(u)

	sub, cont, err := s.search(depth-1, width)
	if errors.Is(err, ErrEmptySearchSpace) {
		return score, nil, nil
	}
	return sub, cont, err
}

type candidate struct {
	move  engine.Move
	score int
}

type branch struct {
	score int
	line  []engine.Move
	nodes int
}

// SearchParallel gives the same result as Search but explores the retained
// top level moves on a pool of workers, each on its own clone of b. The board
// must not be modified until it returns.
func SearchParallel(ctx context.Context, b *engine.Board, color engine.Color, depth, width, workers int) (Result, error) {
	if err := checkBounds(depth, width); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if depth == 0 || workers <= 1 {
		return Search(b, color, depth, width)
	}

	root := &searcher{b: b, color: color}
	top, err := root.rank(width)
	if err != nil {
		return Result{}, err
	}

	factory := func(int) worker.ProcessFunc[candidate, branch] {
		s := &searcher{b: b.Clone(), color: color}
		return func(c candidate) (branch, error) {
			before := s.nodes
			score, cont, err := s.follow(c.move, c.score, depth, width)
			if err != nil {
				return branch{}, err
			}
			return branch{score: score, line: cont, nodes: s.nodes - before}, nil
		}
	}
	pool := worker.NewPool(factory,
		worker.WithWorkers(min(workers, top.len())),
		worker.WithBufferSize(top.len()),
	)
	pool.Start()
	for i, m := range top.items {
		pool.Submit(worker.Item[candidate]{Value: candidate{move: m, score: top.scores[i]}, Index: i})
	}
	go pool.Close()

	branches := make([]*branch, top.len())
	var firstErr error
	results := pool.Results()
	for results != nil {
		select {
		case <-ctx.Done():
			pool.Stop()
			for range results {
			}
			return Result{}, ctx.Err()
		case r, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if r.Err != nil && firstErr == nil {
				firstErr = r.Err
			}
			br := r.Value
			branches[r.Index] = &br
		}
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	res := Result{Score: math.MinInt, Nodes: root.nodes}
	for i, br := range branches {
		res.Nodes += br.nodes
		if br.score > res.Score {
			res.Score = br.score
			res.Line = append([]engine.Move{top.items[i]}, br.line...)
		}
	}
	return res, nil
}
