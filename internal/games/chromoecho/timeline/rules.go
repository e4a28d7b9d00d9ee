package timeline

// Paradox reports whether two selves overlap closer than factor times their
// combined radii. The test is symmetric in a and b.
func Paradox(a, b *Self, factor float64) bool {
	return a.Pos.Dist(b.Pos) < factor*(a.Radius+b.Radius)
}

type pairKey struct{ a, b int }

type pairTrack struct {
	separated bool
	last      float64
}

// ParadoxMonitor applies the paradox rule to every pair of selves, index 0
// being the player and i+1 ghost i.
//
// Every self starts a loop on the same spawn point, so pairs that begin a loop
// overlapping get a grace period: they are exempt while their distance grows
// strictly from tick to tick, until they first clear each other. A pair that
// stops diverging before that is a paradox like any other overlap.
type ParadoxMonitor struct {
	factor float64
	pairs  map[pairKey]*pairTrack
}

// NewParadoxMonitor creates a monitor using the given overlap factor.
func NewParadoxMonitor(factor float64) *ParadoxMonitor {
	return &ParadoxMonitor{factor: factor, pairs: make(map[pairKey]*pairTrack)}
}

// Begin records the starting layout of a loop.
func (m *ParadoxMonitor) Begin(selves []*Self) {
	clear(m.pairs)
	for i := 0; i < len(selves); i++ {
		for j := i + 1; j < len(selves); j++ {
			d := selves[i].Pos.Dist(selves[j].Pos)
			m.pairs[pairKey{i, j}] = &pairTrack{
				separated: !Paradox(selves[i], selves[j], m.factor),
				last:      d,
			}
		}
	}
}

// Check evaluates all pairs in ascending order and returns the first pair in
// paradox.
func (m *ParadoxMonitor) Check(selves []*Self) (a, b int, found bool) {
	for i := 0; i < len(selves); i++ {
		for j := i + 1; j < len(selves); j++ {
			tr := m.track(i, j)
			d := selves[i].Pos.Dist(selves[j].Pos)
			switch {
			case !Paradox(selves[i], selves[j], m.factor):
				tr.separated = true
			case !tr.separated && d > tr.last:
				// still pulling apart from the shared spawn
			default:
				return i, j, true
			}
			tr.last = d
		}
	}
	return 0, 0, false
}

// Separated reports whether selves i and j have cleared each other this loop.
func (m *ParadoxMonitor) Separated(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	tr, ok := m.pairs[pairKey{i, j}]
	return ok && tr.separated
}

func (m *ParadoxMonitor) track(i, j int) *pairTrack {
	k := pairKey{i, j}
	tr, ok := m.pairs[k]
	if !ok {
		tr = &pairTrack{separated: true}
		m.pairs[k] = tr
	}
	return tr
}
