package game

import (
	"math/rand"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

const (
	minNumber = 1
	maxNumber = 75
)

// Pool holds the numbers not yet called for one room. Draws are uniform and
// without replacement, so a number can never be called twice in a room's
// lifetime. A Pool is owned by exactly one room and is not safe for
// concurrent use on its own.
type Pool struct {
	remaining []int
}

// NewPool returns a pool holding every number in [1, 75].
func NewPool() *Pool {
	remaining := make([]int, 0, maxNumber)
	for n := minNumber; n <= maxNumber; n++ {
		remaining = append(remaining, n)
	}
	return &Pool{remaining: remaining}
}

// Draw removes and returns one number chosen uniformly at random from the
// remaining set. Callers on the draw path check Remaining first; the error
// is a backstop, not a control-flow signal.
func (p *Pool) Draw() (int, error) {
	if len(p.remaining) == 0 {
		return 0, domain.ErrPoolExhausted
	}
	i := rand.Intn(len(p.remaining))
	n := p.remaining[i]
	last := len(p.remaining) - 1
	p.remaining[i] = p.remaining[last]
	p.remaining = p.remaining[:last]
	return n, nil
}

// Remaining returns how many numbers have not been drawn yet.
func (p *Pool) Remaining() int {
	return len(p.remaining)
}
