package timeline_test

import (
	"testing"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

func TestParadoxSymmetric(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"same spot", 0, true},
		{"close", 0.6, true},
		{"clear", 0.7, false},
		{"far", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestSelf(core.V(2, 2))
			b := newTestSelf(core.V(2+tt.dist, 2))
			if got := timeline.Paradox(a, b, 0.9); got != tt.want {
				t.Errorf("Paradox(a, b) = %v, expected %v", got, tt.want)
			}
			if timeline.Paradox(a, b, 0.9) != timeline.Paradox(b, a, 0.9) {
				t.Error("paradox test is not symmetric")
			}
		})
	}
}

func TestParadoxMonitorSpawnGrace(t *testing.T) {
	a := newTestSelf(core.V(1.5, 1.5))
	b := newTestSelf(core.V(1.5, 1.5))
	selves := []*timeline.Self{a, b}

	m := timeline.NewParadoxMonitor(0.9)
	m.Begin(selves)
	if m.Separated(0, 1) {
		t.Fatal("pair sharing a spawn should not start separated")
	}

	for i := 1; i <= 10; i++ {
		a.Pos = core.V(1.5+float64(i)*0.1, 1.5)
		if _, _, found := m.Check(selves); found {
			t.Fatalf("diverging pair flagged at step %d", i)
		}
	}
	if !m.Separated(1, 0) {
		t.Error("pair should have separated")
	}

	a.Pos = core.V(1.6, 1.5)
	i, j, found := m.Check(selves)
	if !found || i != 0 || j != 1 {
		t.Errorf("expected paradox between 0 and 1, got %d %d %v", i, j, found)
	}
}

func TestParadoxMonitorStalledSpawn(t *testing.T) {
	a := newTestSelf(core.V(1.5, 1.5))
	b := newTestSelf(core.V(1.5, 1.5))
	selves := []*timeline.Self{a, b}

	m := timeline.NewParadoxMonitor(0.9)
	m.Begin(selves)

	if _, _, found := m.Check(selves); !found {
		t.Error("a pair that never diverges is a paradox")
	}
}

func TestParadoxMonitorOrder(t *testing.T) {
	p := newTestSelf(core.V(1.5, 1.5))
	g0 := newTestSelf(core.V(5.5, 5.5))
	g1 := newTestSelf(core.V(8.5, 8.5))
	selves := []*timeline.Self{p, g0, g1}

	m := timeline.NewParadoxMonitor(0.9)
	m.Begin(selves)

	g0.Pos = core.V(8.5, 8.2)
	p.Pos = core.V(8.5, 8.6)
	i, j, found := m.Check(selves)
	if !found || i != 0 || j != 1 {
		t.Errorf("expected first pair (0, 1), got (%d, %d) %v", i, j, found)
	}
}
