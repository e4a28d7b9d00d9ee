package timeline

import (
	"math"
	"sort"
	"strings"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// Keys is the set of movement directions held during a tick.
type Keys uint8

const (
	KeyUp Keys = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
)

// Has reports whether every direction in k2 is held.
func (k Keys) Has(k2 Keys) bool {
	return k&k2 == k2
}

// Direction converts the held keys into a movement vector. Opposite keys
// cancel; diagonals are normalised to unit length.
func (k Keys) Direction() core.Vec {
	var dx, dy float64
	if k.Has(KeyLeft) {
		dx--
	}
	if k.Has(KeyRight) {
		dx++
	}
	if k.Has(KeyUp) {
		dy--
	}
	if k.Has(KeyDown) {
		dy++
	}
	if dx != 0 && dy != 0 {
		l := math.Sqrt(dx*dx + dy*dy)
		dx /= l
		dy /= l
	}
	return core.V(dx, dy)
}

func (k Keys) String() string {
	if k == 0 {
		return "-"
	}
	var parts []string
	for _, kv := range []struct {
		key  Keys
		name string
	}{{KeyUp, "up"}, {KeyDown, "down"}, {KeyLeft, "left"}, {KeyRight, "right"}} {
		if k.Has(kv.key) {
			parts = append(parts, kv.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputSample is the input captured at one tick of a loop.
type InputSample struct {
	Tick   int
	Keys   Keys
	Action bool
}

// Recording is the tick-ordered input of one loop.
type Recording []InputSample

// History is the append-only archive of finished loops. Entry i drives ghost i.
type History struct {
	loops []Recording
}

// Len returns the number of archived loops.
func (h History) Len() int {
	return len(h.loops)
}

// Loop returns the recording of an archived loop, or nil when out of range.
// The returned slice must not be modified.
func (h History) Loop(i int) Recording {
	if i < 0 || i >= len(h.loops) {
		return nil
	}
	return h.loops[i]
}

func (h *History) archive(r Recording) {
	h.loops = append(h.loops, append(Recording(nil), r...))
}

// Lookup returns the sample that drives loop loopIndex at the given tick: the
// sample recorded at exactly that tick, or else the latest one before it.
// It returns false when the loop is not archived or no sample precedes tick.
func (h History) Lookup(loopIndex, tick int) (InputSample, bool) {
	if loopIndex < 0 || loopIndex >= len(h.loops) {
		return InputSample{}, false
	}
	rec := h.loops[loopIndex]

	i := sort.Search(len(rec), func(i int) bool { return rec[i].Tick >= tick })
	if i < len(rec) && rec[i].Tick == tick {
		return rec[i], true
	}
	if i == 0 {
		return InputSample{}, false
	}
	return rec[i-1], true
}
