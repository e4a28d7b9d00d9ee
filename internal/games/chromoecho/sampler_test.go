package chromoecho

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

func TestSamplerHoldWindow(t *testing.T) {
	s := NewSampler(3)
	s.Press(core.ActionRight)

	for i := 0; i < 3; i++ {
		in := s.Sample()
		if in.Keys != timeline.KeyRight {
			t.Fatalf("tick %d: keys = %v, expected right", i, in.Keys)
		}
	}
	if in := s.Sample(); in.Keys != 0 {
		t.Errorf("keys after window = %v, expected none", in.Keys)
	}
}

func TestSamplerRepeatRefreshes(t *testing.T) {
	s := NewSampler(2)
	s.Press(core.ActionUp)
	s.Sample()
	s.Press(core.ActionUp)
	s.Sample()
	if in := s.Sample(); in.Keys != timeline.KeyUp {
		t.Errorf("keys = %v, expected up after repeat", in.Keys)
	}
}

func TestSamplerOppositeCancels(t *testing.T) {
	s := NewSampler(9)
	s.Press(core.ActionLeft)
	s.Press(core.ActionUp)
	s.Press(core.ActionRight)

	in := s.Sample()
	testutil.AssertEqual(t, "keys", in.Keys, timeline.KeyUp|timeline.KeyRight)
}

func TestSamplerInteractHeld(t *testing.T) {
	s := NewSampler(2)
	s.Press(core.ActionInteract)
	if !s.Sample().Action || !s.Sample().Action {
		t.Fatal("interact should be held for the window")
	}
	if s.Sample().Action {
		t.Error("interact still held after the window")
	}
}

func TestSamplerLatchesAreOneShot(t *testing.T) {
	s := NewSampler(9)
	frame := core.NewInputFrame()
	frame.Set(core.ActionPause)
	frame.Set(core.ActionReset)
	frame.Set(core.ActionQuit)
	s.Feed(frame)

	in := s.Sample()
	if !in.Pause || !in.Reset {
		t.Fatalf("first sample = %+v, expected pause and reset", in)
	}
	in = s.Sample()
	if in.Pause || in.Reset {
		t.Errorf("second sample = %+v, expected latches consumed", in)
	}
}

func TestSamplerRelease(t *testing.T) {
	s := NewSampler(9)
	s.Press(core.ActionDown)
	s.Press(core.ActionInteract)
	s.Press(core.ActionPause)
	s.Release()

	testutil.AssertEqual(t, "input", s.Sample(), timeline.Input{})
}

func TestNewSamplerDefaultsHold(t *testing.T) {
	s := NewSampler(0)
	testutil.AssertEqual(t, "hold ticks", s.holdTicks, DefaultHoldTicks)
}
