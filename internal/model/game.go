package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/ai"
	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

type Mode string

const (
	// ModeOnline seats two players; each turn starts as soon as the
	// previous move lands.
	ModeOnline Mode = "online"
	// ModeHotseat lets one player drive both sides on a shared screen. The
	// board is hidden between turns until the next side starts its turn.
	ModeHotseat Mode = "hotseat"
	// ModeComputer seats one player as White against the search.
	ModeComputer Mode = "computer"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeOnline, nil
	case ModeOnline, ModeHotseat, ModeComputer:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Options configure a new game.
type Options struct {
	Mode   Mode
	Layout string
	Clock  time.Duration
	// Search settings for the computer side and for hints.
	BotDepth   int
	BotWidth   int
	BotWorkers int
}

func DefaultOptions() Options {
	return Options{
		Mode:       ModeOnline,
		Layout:     engine.StandardLayout,
		Clock:      10 * time.Minute,
		BotDepth:   1,
		BotWidth:   3,
		BotWorkers: 1,
	}
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mode        Mode
	opts        Options
	mu          sync.Mutex
	board       *engine.Board
	players     [2]string // playerID per colour
	clocks      [2]*Clock
	lastMove    *engine.Move
	connections *GameConnections
}

func NewGame(id string, opts Options) (*Game, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Layout == "" {
		opts.Layout = engine.StandardLayout
	}
	board, err := engine.NewBoardFromLayout(opts.Layout)
	if err != nil {
		return nil, err
	}
	for _, c := range engine.Colors {
		board.Vision(c)
	}

	g := &Game{
		ID:          id,
		mode:        opts.Mode,
		opts:        opts,
		board:       board,
		clocks:      [2]*Clock{NewClock(opts.Clock), NewClock(opts.Clock)},
		connections: NewGameConnections(),
	}
	if g.mode == ModeComputer {
		g.players[engine.Black] = BotID
	}
	return g, nil
}

func (g *Game) Mode() Mode { return g.mode }

// AddPlayer seats playerID and returns its colour. Joining again returns the
// colour already held. A hotseat game has a single seat covering both sides.
func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.colorFor(playerID); ok {
		return c, nil
	}
	if g.mode == ModeHotseat {
		if g.players[engine.White] != "" {
			return 0, ErrGameFull
		}
		g.players[engine.White], g.players[engine.Black] = playerID, playerID
		log.Infof("game %s: %s seated for both sides", g.ID, playerID)
		return engine.White, nil
	}
	for _, c := range engine.Colors {
		if g.players[c] == "" {
			g.players[c] = playerID
			log.Infof("game %s: %s seated as %s", g.ID, playerID, c)
			if g.seated() && g.board.HistoryLen() == 0 && g.board.Turn() == engine.TurnWaiting {
				if _, err := g.beginTurn(); err != nil {
					return c, err
				}
				go g.broadcastState()
			}
			return c, nil
		}
	}
	return 0, ErrGameFull
}

func (g *Game) seated() bool {
	return g.players[engine.White] != "" && g.players[engine.Black] != ""
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (g.players[engine.White] == playerID || g.players[engine.Black] == playerID)
}

// colorFor is the side playerID acts for right now. The hotseat player acts
// for whichever side holds or is about to take the turn.
func (g *Game) colorFor(playerID string) (engine.Color, bool) {
	if !g.isPlayerInGame(playerID) {
		return 0, false
	}
	if g.mode == ModeHotseat {
		if c, ok := g.board.Turn().Color(); ok {
			return c, true
		}
		return g.board.Next(), true
	}
	if g.players[engine.White] == playerID {
		return engine.White, true
	}
	return engine.Black, true
}

// beginTurn hands the board to the next side and starts its clock.
func (g *Game) beginTurn() (engine.Color, error) {
	c, err := g.board.StartTurn()
	if err != nil {
		return c, err
	}
	g.clocks[c].Start()
	g.board.Vision(c)
	return c, nil
}

// MakeMove plays a move for playerID. An illegal or blocked move is not an
// error: it reports false and leaves the game untouched. In a game against
// the computer the reply is played before MakeMove returns.
func (g *Game) MakeMove(playerID string, wm WSMove) (bool, error) {
	m, err := wm.Move()
	if err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	moved, err := g.move(playerID, m)
	if err != nil || !moved {
		return moved, err
	}
	if g.mode == ModeComputer && !g.board.Ended() {
		if err := g.playBot(context.Background()); err != nil {
			g.resignBot(err)
		}
	}
	go g.broadcastState()
	return true, nil
}

func (g *Game) move(playerID string, m engine.Move) (bool, error) {
	if !g.isPlayerInGame(playerID) {
		return false, ErrNotInGame
	}
	if g.board.Ended() {
		return false, engine.ErrGameEnded
	}
	c, ok := g.board.Turn().Color()
	if !ok {
		return false, ErrTurnNotStarted
	}
	if g.players[c] != playerID {
		return false, ErrNotYourTurn
	}
	if p := g.board.PieceAt(m.FromX, m.FromY); p != nil && p.Color() != c {
		return false, ErrNotYourPiece
	}

	moved, err := g.board.DoMove(m.FromX, m.FromY, m.ToX, m.ToY)
	if err != nil || !moved {
		return moved, err
	}
	g.clocks[c].Stop()
	g.lastMove = &m
	log.Debugf("game %s: %s played %s", g.ID, c, m)

	if g.board.Ended() {
		log.Infof("game %s ended: %s after %d moves", g.ID, g.board.Outcome(), g.board.HistoryLen())
		return true, nil
	}
	if g.mode != ModeHotseat {
		if _, err := g.beginTurn(); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (g *Game) playBot(ctx context.Context) error {
	res, err := ai.SearchParallel(ctx, g.board, engine.Black, g.opts.BotDepth, g.opts.BotWidth, g.opts.BotWorkers)
	if err != nil {
		return err
	}
	moved, err := g.move(BotID, res.Move())
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("search chose unplayable move %s", res.Move())
	}
	return nil
}

// resignBot ends a game the computer cannot continue, so the human is never
// left waiting on a turn that will not be played.
func (g *Game) resignBot(cause error) {
	if errors.Is(cause, ai.ErrEmptySearchSpace) {
		log.Infof("game %s: computer has no move and resigns", g.ID)
	} else {
		log.Errorf("game %s: computer failed to move: %v", g.ID, cause)
	}
	if err := g.board.Resign(engine.Black); err != nil {
		log.Errorf("game %s: resign: %v", g.ID, err)
		return
	}
	g.clocks[engine.Black].Stop()
	go g.broadcast(ws.ErrorMessage(fmt.Errorf("computer resigned: %w", cause)))
}

// StartTurn hands the board to the next side of a hotseat game. Other modes
// start turns on their own.
func (g *Game) StartTurn(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return 0, ErrNotInGame
	}
	if g.mode != ModeHotseat {
		if c, ok := g.board.Turn().Color(); ok {
			return c, engine.ErrTurnInProgress
		}
		if !g.seated() {
			return 0, ErrTurnNotStarted
		}
	}
	c, err := g.beginTurn()
	if err != nil {
		return c, err
	}
	go g.broadcastState()
	return c, nil
}

// Hint searches a line for the side playerID acts for.
func (g *Game) Hint(ctx context.Context, playerID string) (Hint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.colorFor(playerID)
	if !ok {
		return Hint{}, ErrNotInGame
	}
	if g.board.Ended() {
		return Hint{}, engine.ErrGameEnded
	}
	res, err := ai.SearchParallel(ctx, g.board, c, g.opts.BotDepth, g.opts.BotWidth, g.opts.BotWorkers)
	if err != nil {
		return Hint{}, err
	}
	return newHint(res.Line, res.Score), nil
}

func (g *Game) ViewFor(playerID string) (PlayerView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.colorFor(playerID)
	if !ok {
		return PlayerView{}, ErrNotInGame
	}
	return g.viewFor(c), nil
}

func (g *Game) viewFor(c engine.Color) PlayerView {
	v := PlayerView{
		GameID:    g.ID,
		Mode:      g.mode,
		Color:     c,
		Turn:      g.board.Turn(),
		Next:      g.board.Next(),
		Outcome:   g.board.Outcome(),
		Players:   g.clientPlayers(),
		Remaining: g.board.Remaining(c),
		Lost:      g.board.Captured(c),
		Moves:     g.board.HistoryLen(),
	}

	ended := g.board.Ended()
	v.Hidden = g.mode == ModeHotseat && v.Turn == engine.TurnWaiting && !ended && g.board.HistoryLen() > 0
	if !v.Hidden {
		squares := g.board.View(c).Squares
		v.Squares = &squares
	}
	if m := g.lastMove; m != nil {
		mover := g.board.PieceAt(m.ToX, m.ToY)
		if ended || (mover != nil && mover.Color() == c) {
			v.LastMove = m.String()
		}
	}
	if ended {
		v.History = g.board.History()
	}
	return v
}

func (g *Game) clientPlayers() Players {
	player := func(c engine.Color) ClientPlayer {
		id := g.players[c]
		return ClientPlayer{
			ID:        id,
			Color:     c,
			TimeLeft:  g.clocks[c].Deciseconds(),
			Connected: id == BotID || (id != "" && g.connections.has(id)),
		}
	}
	return Players{White: player(engine.White), Black: player(engine.Black)}
}

// History is the full move list, available once the game has ended.
func (g *Game) History() ([]string, engine.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.board.Ended() {
		return nil, engine.Ongoing, ErrGameInProgress
	}
	return g.board.History(), g.board.Outcome(), nil
}

// RegisterConnection attaches a player's websocket. Only seated players may
// connect: there is no spectator view of a fogged game.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		log.Warnf("game %s: rejecting second connection for %s", g.ID, playerID)
		closeWith(conn, "Connection already exists")
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: %s connected", g.ID, playerID)

	go g.broadcastState()
	return nil
}

// UnregisterConnection drops conn if it is still playerID's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	if g.connections.remove(playerID, conn) {
		log.Infof("game %s: %s disconnected", g.ID, playerID)
	}
}

// broadcast sends the same message to every connected player.
func (g *Game) broadcast(msg ws.Message) {
	for playerID, conn := range g.connections.snapshot() {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send %s to %s: %v", g.ID, msg.Type, playerID, err)
			g.connections.remove(playerID, conn)
		}
	}
}

// broadcastState sends every connected player its own view.
func (g *Game) broadcastState() {
	for playerID, conn := range g.connections.snapshot() {
		view, err := g.ViewFor(playerID)
		if err != nil {
			log.Errorf("game %s: view for %s: %v", g.ID, playerID, err)
			continue
		}
		msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
		if err != nil {
			log.Errorf("game %s: marshal state: %v", g.ID, err)
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			g.connections.remove(playerID, conn)
		}
	}
}
