package timeline

import (
	"math"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// Guard patrols a cyclic path of tile centres and watches a cone ahead of it.
type Guard struct {
	Path   []core.Tile
	Radius float64

	Pos     core.Vec
	Current int
	Target  int
	Facing  float64
	Waiting bool
	waited  float64

	Speed       float64
	Wait        float64
	VisionRange float64
	VisionAngle float64

	Alert     bool
	AlertTime float64

	baseSpeed float64
	baseRange float64
	epsilon   float64
}

// NewGuard creates a guard at the first waypoint of its path.
func NewGuard(spec GuardSpec, t Tuning) *Guard {
	g := &Guard{
		Path:        spec.Path,
		Radius:      t.GuardRadius,
		Speed:       orDefault(spec.Speed, t.GuardSpeed),
		Wait:        orDefault(spec.Wait, t.GuardWait),
		VisionRange: orDefault(spec.VisionRange, t.GuardVisionRange),
		VisionAngle: orDefault(spec.VisionAngle, t.GuardVisionAngle),
		epsilon:     t.GuardArriveEpsilon,
	}
	scale := orDefault(t.GuardScale, 1)
	g.Speed *= scale
	g.VisionRange *= scale
	g.baseSpeed = g.Speed
	g.baseRange = g.VisionRange
	g.Reset()
	return g
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// Reset returns the guard to the start of its patrol.
func (g *Guard) Reset() {
	g.Current = 0
	g.Target = 0
	g.Waiting = false
	g.waited = 0
	g.Alert = false
	g.AlertTime = 0
	g.Facing = 0
	if len(g.Path) == 0 {
		return
	}
	g.Pos = g.Path[0].Center()
	g.Target = 1 % len(g.Path)
	g.faceTarget()
}

// Escalate scales speed and vision range from their base values.
func (g *Guard) Escalate(mult float64) {
	g.Speed = g.baseSpeed * mult
	g.VisionRange = g.baseRange * mult
}

// Update advances the patrol by elapsed seconds.
func (g *Guard) Update(elapsed float64) {
	if g.Alert {
		g.AlertTime += elapsed
	}
	if len(g.Path) == 0 {
		return
	}

	if g.Waiting {
		g.waited += elapsed
		if g.waited >= g.Wait {
			g.Waiting = false
			g.waited = 0
			g.Target = (g.Target + 1) % len(g.Path)
			g.faceTarget()
		}
		return
	}

	target := g.Path[g.Target].Center()
	delta := target.Sub(g.Pos)
	dist := delta.Len()
	step := g.Speed * elapsed

	if dist <= step || dist < g.epsilon {
		g.Pos = target
		g.Current = g.Target
		g.Waiting = true
		return
	}

	g.Pos = g.Pos.Add(delta.Scale(step / dist))
	g.Facing = delta.Angle()
}

func (g *Guard) faceTarget() {
	d := g.Path[g.Target].Center().Sub(g.Pos)
	if !d.IsZero() {
		g.Facing = d.Angle()
	}
}

// CanSee reports whether p lies inside the vision cone.
func (g *Guard) CanSee(p core.Vec) bool {
	d := p.Sub(g.Pos)
	if d.Len() > g.VisionRange {
		return false
	}
	diff := core.NormalizeAngle(d.Angle() - g.Facing)
	return math.Abs(diff) <= g.VisionAngle/2
}

// VisionCone returns the cone outline: the guard position followed by
// segments+1 points along the far arc.
func (g *Guard) VisionCone(segments int) []core.Vec {
	segments = max(segments, 1)
	pts := make([]core.Vec, 0, segments+2)
	pts = append(pts, g.Pos)
	start := g.Facing - g.VisionAngle/2
	for i := 0; i <= segments; i++ {
		a := start + g.VisionAngle*float64(i)/float64(segments)
		pts = append(pts, g.Pos.Add(core.V(math.Cos(a), math.Sin(a)).Scale(g.VisionRange)))
	}
	return pts
}
