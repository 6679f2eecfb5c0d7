package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Settings configure a GameManager.
type Settings struct {
	// Defaults apply to every game; the mode is chosen per game.
	Defaults      model.Options
	MatchInterval time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Defaults:      model.DefaultOptions(),
		MatchInterval: time.Second,
	}
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	settings         Settings
	mu               sync.RWMutex
	done             chan struct{}
	closeOnce        sync.Once
}

func NewGameManager(settings Settings) *GameManager {
	gm := newGameManager(settings)
	go gm.processMatchmaking()
	return gm
}

func newGameManager(settings Settings) *GameManager {
	if settings.MatchInterval <= 0 {
		settings.MatchInterval = time.Second
	}
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		settings:         settings,
		done:             make(chan struct{}),
	}
}

// Close stops the matchmaking loop.
func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		log.Debugf("replacing matchmaking channel for %s", playerID)
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets ch if it is still playerID's channel.
// The channel is not closed here; its owner closes it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(gm.settings.MatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce pairs the two longest waiting players into a new online game and
// notifies both. It reports whether a pair was made.
func (gm *GameManager) matchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	opts := gm.settings.Defaults
	opts.Mode = model.ModeOnline
	game, err := model.NewGame(gameID, opts)
	if err != nil {
		log.Errorf("matchmaking: creating game: %v", err)
		return false
	}
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.Errorf("matchmaking: seating %s: %v", player1.ID, err)
		return false
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.Errorf("matchmaking: seating %s: %v", player2.ID, err)
		return false
	}
	gm.games[gameID] = game
	log.Infof("matched %s and %s in game %s", player1.ID, player2.ID, gameID)

	sendEventAndCleanup := func(playerID string, event model.MatchFoundEvent) bool {
		ch, ok := gm.matchingChannels[playerID]
		if !ok {
			return false
		}
		select {
		case ch <- mustJSON(event):
			delete(gm.matchingChannels, playerID)
			close(ch)
			return true
		default:
			return false
		}
	}
	if !sendEventAndCleanup(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color}) {
		log.Warnf("matchmaking: %s was not notified of game %s", player1.ID, gameID)
	}
	if !sendEventAndCleanup(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color}) {
		log.Warnf("matchmaking: %s was not notified of game %s", player2.ID, gameID)
	}
	return true
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (gm *GameManager) CreateGame(gameID string, mode model.Mode) error {
	opts := gm.settings.Defaults
	opts.Mode = mode
	game, err := model.NewGame(gameID, opts)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return model.ErrGameExists
	}
	gm.games[gameID] = game
	log.Infof("created %s game %s", mode, gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return 0, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetView(gameID string, playerID string) (model.PlayerView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.PlayerView{}, err
	}
	return game.ViewFor(playerID)
}

func (gm *GameManager) GetHistory(gameID string) ([]string, engine.Outcome, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, engine.Ongoing, err
	}
	return game.History()
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (bool, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return false, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) StartTurn(gameID string, playerID string) (engine.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return 0, err
	}
	return game.StartTurn(playerID)
}

func (gm *GameManager) Hint(ctx context.Context, gameID string, playerID string) (model.Hint, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Hint{}, err
	}
	return game.Hint(ctx, playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
