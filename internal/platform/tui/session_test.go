package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pixil98/go-testutil"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	catalog, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	return NewSessionModel(catalog, nil, core.DefaultConfig(), "ada", nil)
}

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm
}

func TestSessionStartsInMenu(t *testing.T) {
	m := newTestSession(t)

	testutil.AssertEqual(t, "screen", m.screen, screenMenu)
	if !strings.Contains(m.View(), "First Echo") {
		t.Error("menu should list First Echo")
	}
}

func TestSessionPlaysSelectedLevel(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, runeKey("j"))
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	testutil.AssertEqual(t, "screen", m.screen, screenGame)
	game, ok := m.game.game.(*chromoecho.Game)
	if !ok {
		t.Fatalf("game = %T, expected *chromoecho.Game", m.game.game)
	}
	testutil.AssertEqual(t, "level", game.Level().ID, "double-echo")
	testutil.AssertEqual(t, "player", m.game.player, "ada")
}

func TestSessionBackToMenuWhilePaused(t *testing.T) {
	m := newTestSession(t)
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Back is ignored while playing
	m = sessionSend(t, m, runeKey("b"))
	m = sessionSend(t, m, TickMsg(time.Now()))
	testutil.AssertEqual(t, "screen", m.screen, screenGame)

	m = sessionSend(t, m, runeKey("p"))
	m = sessionSend(t, m, TickMsg(time.Now()))
	if !m.game.gameState.Paused {
		t.Fatal("game should be paused")
	}

	m = sessionSend(t, m, runeKey("b"))
	testutil.AssertEqual(t, "screen", m.screen, screenMenu)
	if m.game != nil {
		t.Error("game should be dropped after going back")
	}
}

func TestSessionRunsBoard(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	testutil.AssertEqual(t, "screen", m.screen, screenRuns)

	m = sessionSend(t, m, runeKey("b"))
	testutil.AssertEqual(t, "screen", m.screen, screenMenu)
	if m.quitting {
		t.Error("going back from the runs board should not quit")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	next, cmd := m.Update(runeKey("q"))
	sm := next.(SessionModel)
	if !sm.quitting {
		t.Error("q in the menu should quit the session")
	}
	if cmd == nil {
		t.Error("quitting should return tea.Quit")
	}
	testutil.AssertEqual(t, "view", sm.View(), "")
}

func TestSessionTracksWindowSize(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	testutil.AssertEqual(t, "width", m.config.ScreenW, 120)
	testutil.AssertEqual(t, "height", m.config.ScreenH, 40)
}
