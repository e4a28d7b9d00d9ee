// Package registry keeps the factories of the games the platform can run.
// Games register themselves from init(), so the CLI and the SSH server
// create them by id without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// Game is what the platform drives. Games never see Bubble Tea: the platform
// maps keys to actions, ticks the game and paints the screen it renders.
type Game interface {
	// ID returns a unique identifier (e.g. "chromoecho"), used by the CLI.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset loads the game and starts its first level.
	// The RuntimeConfig carries the screen size and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Interact, Reset, ...).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// LevelSelector is implemented by games that can start on a chosen level.
type LevelSelector interface {
	// StartAt selects the level played after the next Reset.
	StartAt(levelID string)
}

// CreateAt instantiates a game and, when it supports level selection,
// points it at levelID. An empty levelID keeps the game's default.
func CreateAt(id, levelID string) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if sel, ok := g.(LevelSelector); ok && levelID != "" {
		sel.StartAt(levelID)
	}
	return g, nil
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
