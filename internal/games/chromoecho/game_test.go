package chromoecho

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

// newTestGame creates a game isolated from user config and level
// directories. A hold window of one tick makes every frame's actions exactly
// the keys held on that tick.
func newTestGame(t *testing.T, holdTicks int) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "chromoecho.yaml")
	data := fmt.Sprintf("input:\n  hold_ticks: %d\n", holdTicks)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetLevelsDir("")
	SetStartLevel("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetStartLevel("")
	})

	g := New()
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

type press struct {
	actions []core.Action
	ticks   int
}

func hold(n int, actions ...core.Action) press {
	return press{actions: actions, ticks: n}
}

func play(g *Game, script []press) []string {
	var events []string
	for _, p := range script {
		for i := 0; i < p.ticks; i++ {
			in := core.NewInputFrame()
			for _, a := range p.actions {
				in.Set(a)
			}
			if res := g.Step(in); res.Event != "" {
				events = append(events, res.Event)
			}
		}
	}
	return events
}

// firstEchoScript plates the door in loop 1 and walks through it in loop 2.
func firstEchoScript() []press {
	return []press{
		hold(60, core.ActionDown),
		hold(30, core.ActionRight),
		hold(1),
		hold(1, core.ActionReset),
		hold(45, core.ActionRight),
		hold(30, core.ActionDown),
		hold(15),
		hold(60, core.ActionRight),
		hold(20, core.ActionDown),
	}
}

func TestGameIdentity(t *testing.T) {
	g := New()
	testutil.AssertEqual(t, "id", g.ID(), "chromoecho")
	testutil.AssertEqual(t, "title", g.Title(), "ChromoEcho")
}

func TestGameStartsFirstLevel(t *testing.T) {
	g := newTestGame(t, 1)

	testutil.AssertEqual(t, "level", g.Level().ID, "first-echo")
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("initial state = %+v, expected a fresh run", st)
	}
	if _, ok := g.Result(); ok {
		t.Error("Result should be empty before the run ends")
	}
}

func TestGameStartLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetStartLevel("watchful-eye")
	t.Cleanup(func() { SetStartLevel("") })

	g := New()
	g.Reset(core.DefaultConfig())
	testutil.AssertEqual(t, "level", g.Level().ID, "watchful-eye")
}

func TestGameFirstEchoRun(t *testing.T) {
	g := newTestGame(t, 1)

	events := play(g, firstEchoScript())
	testutil.AssertEqual(t, "events", strings.Join(events, ","), "loop_advanced,complete")

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state = %+v, expected a won run", st)
	}
	testutil.AssertEqual(t, "score", st.Score, 1273)

	r, ok := g.Result()
	if !ok {
		t.Fatal("expected a run result")
	}
	testutil.AssertEqual(t, "level", r.LevelID, "first-echo")
	testutil.AssertEqual(t, "outcome", r.Outcome, "complete")
	testutil.AssertEqual(t, "loops", r.Loops, 2)
	testutil.AssertEqual(t, "ticks", r.TotalTicks, 1058)
	testutil.AssertEqual(t, "score", r.Score, 1273)
	if r.RunID == "" {
		t.Error("run id should be set")
	}
}

func TestGameRestartStartsNewRun(t *testing.T) {
	g := newTestGame(t, 1)
	play(g, firstEchoScript())
	first, _ := g.Result()

	play(g, []press{hold(1, core.ActionReset)})

	if g.State().GameOver {
		t.Fatal("reset after an ending should restart the level")
	}
	if _, ok := g.Result(); ok {
		t.Error("result should be cleared by a restart")
	}
	testutil.AssertEqual(t, "score", g.State().Score, 0)

	play(g, firstEchoScript())
	second, _ := g.Result()
	if second.RunID == first.RunID {
		t.Errorf("run id %s reused after restart", second.RunID)
	}
	testutil.AssertEqual(t, "score", second.Score, first.Score)
}

func TestGameConfirmAdvancesLevel(t *testing.T) {
	g := newTestGame(t, 1)

	// Confirm does nothing while playing.
	play(g, []press{hold(1, core.ActionConfirm)})
	testutil.AssertEqual(t, "level", g.Level().ID, "first-echo")

	play(g, firstEchoScript())
	if !g.HasNextLevel() {
		t.Fatal("expected a level after first-echo")
	}
	play(g, []press{hold(1, core.ActionConfirm)})

	testutil.AssertEqual(t, "level", g.Level().ID, "double-echo")
	if g.State().GameOver {
		t.Error("next level should start playing")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)
	play(g, []press{hold(10, core.ActionRight)})
	before := g.Snapshot()

	play(g, []press{hold(1, core.ActionPause)})
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	play(g, []press{hold(30, core.ActionRight)})
	after := g.Snapshot()
	testutil.AssertEqual(t, "tick", after.Tick, before.Tick)
	testutil.AssertEqual(t, "x", after.Player.Pos.X, before.Player.Pos.X)

	play(g, []press{hold(1, core.ActionPause)})
	if g.State().Paused {
		t.Error("second pause press should resume")
	}
}

func TestGameOutOfLoopsResult(t *testing.T) {
	g := newTestGame(t, 1)

	// Resets back to back: an idle tick would leave the player on top of
	// its echo at the spawn tile, which is a paradox.
	events := play(g, []press{
		hold(1, core.ActionReset),
		hold(1, core.ActionReset),
	})
	testutil.AssertEqual(t, "events", strings.Join(events, ","), "loop_advanced,loop_failed")

	r, ok := g.Result()
	if !ok {
		t.Fatal("expected a run result")
	}
	testutil.AssertEqual(t, "outcome", r.Outcome, timeline.SessionFailed.String())
	testutil.AssertEqual(t, "score", r.Score, 0)
	testutil.AssertEqual(t, "loops", r.Loops, 2)
	testutil.AssertEqual(t, "ticks", r.TotalTicks, 15*timeline.TicksPerSecond)
	if g.State().Won {
		t.Error("failed run reported as won")
	}
}

func TestGameLoopEndReleasesHeldKeys(t *testing.T) {
	g := newTestGame(t, 9)
	start := g.Level().Start.Center()

	play(g, []press{
		hold(1, core.ActionRight),
		hold(1, core.ActionReset),
		hold(3),
	})

	snap := g.Snapshot()
	testutil.AssertEqual(t, "loop", snap.Loop, 2)
	testutil.AssertEqual(t, "x", snap.Player.Pos.X, start.X)
	testutil.AssertEqual(t, "y", snap.Player.Pos.Y, start.Y)
	if g.State().GameOver {
		t.Error("echo walking away from the spawn should not end the run")
	}
}

func TestGameRestartReleasesHeldKeys(t *testing.T) {
	g := newTestGame(t, 9)
	start := g.Level().Start.Center()

	play(g, []press{hold(1, core.ActionReset), hold(1, core.ActionReset)})
	if !g.State().GameOver {
		t.Fatal("expected the run to be over")
	}

	play(g, []press{
		hold(1, core.ActionRight),
		hold(1, core.ActionReset),
		hold(3),
	})
	snap := g.Snapshot()
	testutil.AssertEqual(t, "loop", snap.Loop, 1)
	testutil.AssertEqual(t, "x", snap.Player.Pos.X, start.X)
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(t, 9)
	g2 := newTestGame(t, 9)

	// Sparse key presses rely on the hold window, like a real terminal.
	script := []press{
		hold(1, core.ActionDown),
		hold(12),
		hold(1, core.ActionRight, core.ActionDown),
		hold(20),
		hold(1, core.ActionLeft),
		hold(5),
		hold(1, core.ActionReset),
		hold(1, core.ActionRight),
		hold(40),
	}
	play(g1, script)
	play(g2, script)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Loop != 2 || len(s1.Ghosts) != 1 {
		t.Errorf("loop = %d ghosts = %d, expected loop 2 with one ghost", s1.Loop, len(s1.Ghosts))
	}
}
