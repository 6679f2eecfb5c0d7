package model

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/testutil"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
)

type fakeConn struct {
	mu     sync.Mutex
	msgs   []ws.Message
	closed bool
	fail   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	if msg, ok := v.(ws.Message); ok {
		f.msgs = append(f.msgs, msg)
	}
	return nil
}

func (f *fakeConn) WriteMessage(int, []byte) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) last() (ws.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.msgs) == 0 {
		return ws.Message{}, false
	}
	return f.msgs[len(f.msgs)-1], true
}

func (f *fakeConn) received(typ ws.MessageType) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.msgs {
		if m.Type == typ {
			return true
		}
	}
	return false
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func newGame(t *testing.T, mode Mode, layout string) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.Mode = mode
	if layout != "" {
		opts.Layout = layout
	}
	g, err := NewGame("test", opts)
	testutil.AssertNoError(t, err)
	return g
}

func move(s string) WSMove { return WSMove{Notation: s} }

func TestNewGame_Errors(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = "blitz"
	_, err := NewGame("x", opts)
	testutil.AssertErrorIs(t, err, ErrInvalidMode)

	opts = DefaultOptions()
	opts.Layout = "white:Kz9"
	_, err = NewGame("x", opts)
	testutil.AssertErrorIs(t, err, engine.ErrInvalidLayout)
}

func TestAddPlayer_Online(t *testing.T) {
	g := newGame(t, ModeOnline, "")

	c, err := g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.White)
	testutil.AssertEqual(t, g.board.Turn(), engine.TurnWaiting, "no turn before both are seated")

	c, err = g.AddPlayer("bob")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.Black)
	testutil.AssertEqual(t, g.board.Turn(), engine.TurnWhite)
	testutil.AssertTrue(t, g.clocks[engine.White].IsRunning(), "white clock runs")

	c, err = g.AddPlayer("alice")
	testutil.AssertNoError(t, err, "rejoining")
	testutil.AssertEqual(t, c, engine.White)

	_, err = g.AddPlayer("carol")
	testutil.AssertErrorIs(t, err, ErrGameFull)
}

func TestAddPlayer_Hotseat(t *testing.T) {
	g := newGame(t, ModeHotseat, "")
	c, err := g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.White)
	testutil.AssertEqual(t, g.board.Turn(), engine.TurnWaiting)

	_, err = g.AddPlayer("bob")
	testutil.AssertErrorIs(t, err, ErrGameFull)
}

func TestMakeMove_Online(t *testing.T) {
	g := newGame(t, ModeOnline, "")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	tests := []struct {
		name     string
		player   string
		move     WSMove
		wantErr  error
		wantMove bool
	}{
		{"stranger", "carol", move("e2e4"), ErrNotInGame, false},
		{"out of turn", "bob", move("e7e5"), ErrNotYourTurn, false},
		{"opponent piece", "alice", move("e7e5"), ErrNotYourPiece, false},
		{"bad notation", "alice", move("e2"), engine.ErrInvalidMove, false},
		{"off board", "alice", WSMove{From: engine.Square{X: 4, Y: 6}, To: engine.Square{X: 4, Y: 9}}, engine.ErrInvalidCoordinate, false},
		{"illegal", "alice", move("e2e5"), nil, false},
		{"empty square", "alice", move("e4e5"), nil, false},
		{"legal", "alice", WSMove{From: engine.Square{X: 4, Y: 6}, To: engine.Square{X: 4, Y: 4}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved, err := g.MakeMove(tt.player, tt.move)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
			} else {
				testutil.AssertNoError(t, err)
			}
			testutil.AssertEqual(t, moved, tt.wantMove)
		})
	}

	testutil.AssertEqual(t, g.board.Turn(), engine.TurnBlack, "turn passes on its own")
	testutil.AssertFalse(t, g.clocks[engine.White].IsRunning())
	testutil.AssertTrue(t, g.clocks[engine.Black].IsRunning())

	_, err := g.StartTurn("bob")
	testutil.AssertErrorIs(t, err, engine.ErrTurnInProgress)
}

func TestHotseat_HandOver(t *testing.T) {
	g := newGame(t, ModeHotseat, "")
	g.AddPlayer("alice")

	_, err := g.MakeMove("alice", move("e2e4"))
	testutil.AssertErrorIs(t, err, ErrTurnNotStarted)

	c, err := g.StartTurn("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.White)

	moved, err := g.MakeMove("alice", move("e2e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, moved)

	v, err := g.ViewFor("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, v.Hidden, "board hidden between turns")
	testutil.AssertTrue(t, v.Squares == nil, "no squares while hidden")
	testutil.AssertEqual(t, v.Color, engine.Black)

	c, err = g.StartTurn("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.Black)

	v, err = g.ViewFor("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, v.Hidden)
	testutil.AssertEqual(t, v.Color, engine.Black)
	testutil.AssertEqual(t, v.LastMove, "", "white's move is not shown to black")

	moved, err = g.MakeMove("alice", move("d7d5"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, moved)
}

func TestComputer_Replies(t *testing.T) {
	g := newGame(t, ModeComputer, "")
	c, err := g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c, engine.White)

	moved, err := g.MakeMove("alice", move("e2e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, moved)

	testutil.AssertEqual(t, g.board.HistoryLen(), 2, "computer replied")
	testutil.AssertEqual(t, g.board.Turn(), engine.TurnWhite)

	v, err := g.ViewFor("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, v.Players.Black.Connected, "computer is always present")
	testutil.AssertEqual(t, v.Players.Black.ID, BotID)
}

func TestComputer_ResignsWithoutMoves(t *testing.T) {
	// Black's king and pawns are boxed in on the first rank.
	g := newGame(t, ModeComputer, "white:Ke8,Th8;black:Ka1,pa2,pb2,pb1")
	_, err := g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	alice := &fakeConn{}
	testutil.AssertNoError(t, g.RegisterConnection("alice", alice))

	moved, err := g.MakeMove("alice", move("h8h7"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, moved)

	testutil.AssertTrue(t, g.board.Ended(), "game over once the computer cannot move")
	testutil.AssertEqual(t, g.board.Outcome(), engine.WhiteWins)
	testutil.AssertEqual(t, g.board.HistoryLen(), 1)
	testutil.AssertFalse(t, g.clocks[engine.Black].IsRunning())

	_, err = g.MakeMove("alice", move("h7h6"))
	testutil.AssertErrorIs(t, err, engine.ErrGameEnded)
	waitFor(t, func() bool { return alice.received(ws.MessageTypeError) })
}

func TestViewFor_Fog(t *testing.T) {
	g := newGame(t, ModeOnline, "")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	v, err := g.ViewFor("alice")
	testutil.AssertNoError(t, err)

	e8, _ := engine.ParseSquare("e8")
	sq, ok := v.SquareAt(e8)
	testutil.AssertTrue(t, ok)
	testutil.AssertFalse(t, sq.Visible)
	testutil.AssertTrue(t, sq.Piece == nil, "black king hidden")
	testutil.AssertEqual(t, sq.Memory, &engine.Shape{Kind: engine.King, Color: engine.Black})

	e1, _ := engine.ParseSquare("e1")
	sq, _ = v.SquareAt(e1)
	testutil.AssertEqual(t, sq.Piece, &engine.Shape{Kind: engine.King, Color: engine.White})

	testutil.AssertEqual(t, v.Remaining[engine.Pawn], 8)
	testutil.AssertTrue(t, v.History == nil, "history withheld during play")

	_, err = g.ViewFor("carol")
	testutil.AssertErrorIs(t, err, ErrNotInGame)
}

func TestHistory_OnlyAfterEnd(t *testing.T) {
	g := newGame(t, ModeOnline, "white:Ke1,Te2;black:Ke8,pa7")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	_, _, err := g.History()
	testutil.AssertErrorIs(t, err, ErrGameInProgress)

	moved, err := g.MakeMove("alice", move("e2e8"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, moved)

	history, outcome, err := g.History()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, history, []string{"e2e8"})
	testutil.AssertEqual(t, outcome, engine.WhiteWins)

	_, err = g.MakeMove("bob", move("a7a6"))
	testutil.AssertErrorIs(t, err, engine.ErrGameEnded)

	v, err := g.ViewFor("bob")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.LastMove, "e2e8", "last move revealed at the end")
	testutil.AssertEqual(t, v.History, []string{"e2e8"})
	for _, row := range v.Squares {
		for _, sq := range row {
			testutil.AssertTrue(t, sq.Visible, "%s revealed", sq.Square)
		}
	}
}

func TestHint(t *testing.T) {
	g := newGame(t, ModeOnline, "")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	h, err := g.Hint(context.Background(), "alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(h.Line), DefaultOptions().BotDepth+1)
	m, err := engine.ParseMove(h.Move)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, g.board.IsValidMove(m.FromX, m.FromY, m.ToX-m.FromX, m.ToY-m.FromY), "hint %s is legal", h.Move)
	testutil.AssertEqual(t, g.board.HistoryLen(), 0, "hint does not move")

	_, err = g.Hint(context.Background(), "carol")
	testutil.AssertErrorIs(t, err, ErrNotInGame)
}

func TestConnections(t *testing.T) {
	g := newGame(t, ModeOnline, "")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	testutil.AssertErrorIs(t, g.RegisterConnection("carol", &fakeConn{}), ErrNotInGame)

	alice := &fakeConn{}
	testutil.AssertNoError(t, g.RegisterConnection("alice", alice))
	waitFor(t, func() bool { _, ok := alice.last(); return ok })

	msg, _ := alice.last()
	testutil.AssertEqual(t, msg.Type, ws.MessageTypeGameState)
	var v PlayerView
	testutil.AssertNoError(t, json.Unmarshal(msg.Payload, &v))
	testutil.AssertEqual(t, v.Color, engine.White)
	testutil.AssertTrue(t, v.Players.White.Connected)
	testutil.AssertFalse(t, v.Players.Black.Connected)

	dup := &fakeConn{}
	testutil.AssertNoError(t, g.RegisterConnection("alice", dup))
	testutil.AssertTrue(t, dup.closed, "duplicate connection closed")

	g.UnregisterConnection("alice", dup)
	testutil.AssertTrue(t, g.connections.has("alice"), "stale unregister ignored")
	g.UnregisterConnection("alice", alice)
	testutil.AssertFalse(t, g.connections.has("alice"))
}

func TestBroadcast_DropsFailedConnections(t *testing.T) {
	g := newGame(t, ModeOnline, "")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	bob := &fakeConn{fail: true}
	testutil.AssertNoError(t, g.RegisterConnection("bob", bob))
	waitFor(t, func() bool { return !g.connections.has("bob") })
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeOnline, false},
		{"online", ModeOnline, false},
		{"hotseat", ModeHotseat, false},
		{"computer", ModeComputer, false},
		{"Computer", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		testutil.AssertEqual(t, got, tt.want)
	}
}
