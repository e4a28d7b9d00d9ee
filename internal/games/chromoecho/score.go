package chromoecho

import (
	"errors"

	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

var errNoLevels = errors.New("chromoecho: no levels available")

// Score constants.
const (
	ScoreBase          = 1000
	ScorePerSecond     = 10  // per second under par
	ScoreMinLoopsBonus = 250 // finishing in exactly the level's minimum loop count
)

// Score rates a completed run of a level. Runs that did not complete score 0
// and never reach this function.
func Score(l timeline.Level, c timeline.Completion) int {
	score := ScoreBase
	if under := l.ParSeconds - c.Duration().Seconds(); under > 0 {
		score += int(ScorePerSecond * under)
	}
	if l.MinLoops > 0 && c.Loops == l.MinLoops {
		score += ScoreMinLoopsBonus
	}
	return score
}
