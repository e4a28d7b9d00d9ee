// Package chromoecho provides the ChromoEcho time-loop heist game for the
// terminal platform. The simulation lives in the timeline package; this package
// samples terminal input, drives a session one tick per Step and draws it.
package chromoecho

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chromoecho/internal/config"
	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
	"github.com/vovakirdan/chromoecho/internal/registry"
)

// GameID is the registry identifier and the game column of stored runs.
const GameID = "chromoecho"

// Package-level knobs set by the CLI before a game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	startLevel       string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetLevelsDir sets the directory whose levels extend the built-in ones.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel selects the level id played first. Empty means the first
// level of the catalog.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLogger replaces the logger used for run events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// RunResult describes a finished run.
type RunResult struct {
	RunID      string
	LevelID    string
	Outcome    string
	Loops      int
	TotalTicks int
	Score      int
}

// Game adapts a timeline.Session to the registry Game interface.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.ChromoEchoConfig
	tuning  timeline.Tuning

	start      string
	catalog    []levels.Level
	levelIndex int
	level      levels.Level
	session    *timeline.Session
	sampler    *Sampler

	runID     string
	score     int
	result    RunResult
	hasResult bool
	loadErr   error
	tick      uint64
}

// New creates a new ChromoEcho game.
func New() *Game {
	return &Game{}
}

// StartAt selects the level id played first by this game, overriding
// SetStartLevel. It takes effect on the next Reset.
func (g *Game) StartAt(id string) {
	g.start = id
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "ChromoEcho"
}

// Reset loads config and levels and starts the selected level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tick = 0
	g.loadErr = nil

	cfg, err := config.LoadChromoEcho(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultChromoEchoConfig()
	}
	if difficultyPreset != "" {
		config.ApplyChromoEchoPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.tuning = cfg.ToTuning()
	g.sampler = NewSampler(cfg.Input.HoldTicks)

	catalog, err := levels.Catalog(levelsDir)
	if err != nil {
		g.fail(err)
		return
	}
	if len(catalog) == 0 {
		g.fail(errNoLevels)
		return
	}
	g.catalog = catalog

	first := startLevel
	if g.start != "" {
		first = g.start
	}
	g.levelIndex = 0
	if first != "" {
		for i, l := range catalog {
			if l.ID == first {
				g.levelIndex = i
				break
			}
		}
	}
	g.loadLevel(g.levelIndex)
}

func (g *Game) fail(err error) {
	logger.Error("level load failed", "dir", levelsDir, "err", err)
	g.loadErr = err
	g.session = nil
}

// loadLevel starts a fresh run of the catalog level at index i.
func (g *Game) loadLevel(i int) {
	g.levelIndex = i
	g.level = g.catalog[i]
	g.session = timeline.NewSession(g.level.Level, g.tuning)
	g.sampler.Release()
	g.newRun()
	logger.Info("level started", "level", g.level.ID, "run", g.runID, "loops", g.level.MaxLoops)
}

func (g *Game) newRun() {
	g.runID = uuid.NewString()
	g.score = 0
	g.result = RunResult{}
	g.hasResult = false
}

// Step advances the game by exactly one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	wasEnded := g.session.State().Ended()

	// Confirm on a completed level moves on to the next one.
	if wasEnded && g.session.State() == timeline.SessionComplete && in.Has(core.ActionConfirm) {
		if g.levelIndex+1 < len(g.catalog) {
			g.loadLevel(g.levelIndex + 1)
			return core.StepResult{State: g.State()}
		}
	}

	g.sampler.Feed(in)
	res := g.session.Step(g.sampler.Sample())

	if wasEnded && !res.State.Ended() {
		g.sampler.Release()
		g.newRun()
		logger.Info("run restarted", "level", g.level.ID, "run", g.runID)
		return core.StepResult{State: g.State()}
	}

	// Keys held when a loop ends do not carry into the next one.
	if res.Event.Kind == timeline.EventLoopAdvanced {
		g.sampler.Release()
	}

	var event string
	if res.Event.Kind != timeline.EventNone {
		event = res.Event.Kind.String()
		g.logEvent(res)
	}
	if !wasEnded && res.State.Ended() {
		g.finish(res)
	}

	return core.StepResult{State: g.State(), Event: event}
}

func (g *Game) logEvent(res timeline.Result) {
	ev := res.Event
	switch ev.Kind {
	case timeline.EventLoopAdvanced:
		logger.Debug("loop advanced", "level", g.level.ID, "loop", res.Loop, "ghosts", ev.Ghosts)
	case timeline.EventParadox:
		logger.Info("paradox", "level", g.level.ID, "loop", res.Loop, "a", ev.Pair[0], "b", ev.Pair[1])
	case timeline.EventDetected:
		logger.Info("detected", "level", g.level.ID, "loop", res.Loop, "guard", ev.Guard)
	case timeline.EventLoopFailed:
		logger.Info("out of loops", "level", g.level.ID, "loops", ev.Loops)
	case timeline.EventComplete:
		logger.Info("level complete", "level", g.level.ID, "loops", ev.Loops, "ticks", ev.TotalTicks)
	}
}

// finish records the outcome of the run that just ended.
func (g *Game) finish(res timeline.Result) {
	r := RunResult{
		RunID:   g.runID,
		LevelID: g.level.ID,
		Outcome: res.State.String(),
		Loops:   res.Loop,
	}
	if res.State == timeline.SessionComplete {
		c := g.session.Completion()
		r.Loops = c.Loops
		r.TotalTicks = c.TotalTicks
		r.Score = Score(g.level.Level, c)
	} else {
		r.TotalTicks = (res.Loop-1)*g.session.Clock().Capacity() + res.Tick
	}
	g.score = r.Score
	g.result = r
	g.hasResult = true
}

// State returns the platform view of the game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.loadErr != nil}
	}
	st := g.session.State()
	return core.GameState{
		Score:    g.score,
		GameOver: st.Ended(),
		Won:      st == timeline.SessionComplete,
		Paused:   st == timeline.SessionPaused,
	}
}

// Result returns the last finished run, if the current run has ended.
func (g *Game) Result() (RunResult, bool) {
	return g.result, g.hasResult
}

// Snapshot captures the session state for rendering and tests.
func (g *Game) Snapshot() timeline.Snapshot {
	if g.session == nil {
		return timeline.Snapshot{}
	}
	return g.session.Snapshot()
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// HasNextLevel reports whether Confirm after a completion starts another level.
func (g *Game) HasNextLevel() bool {
	return g.levelIndex+1 < len(g.catalog)
}

// Err returns the error that prevented the game from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}
