package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

func TestCaller_FirstCallWaitsForGracePeriod(t *testing.T) {
	g := NewRegistry(Config{GraceDelay: 250 * time.Millisecond, CallInterval: 10 * time.Millisecond})
	c1 := &mockConn{id: "c1"}
	c2 := &mockConn{id: "c2"}

	_, err := g.Join(2, c1)
	require.NoError(t, err)
	_, err = g.Join(2, c2)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, c1.count(t, domain.EventNewNumber), "called before grace period")

	require.Eventually(t, func() bool {
		return c1.count(t, domain.EventNewNumber) >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCaller_CallsAreSequentialAndUnique(t *testing.T) {
	g := NewRegistry(Config{GraceDelay: time.Millisecond, CallInterval: time.Millisecond})
	c1 := &mockConn{id: "c1"}
	c2 := &mockConn{id: "c2"}

	_, err := g.Join(2, c1)
	require.NoError(t, err)
	_, err = g.Join(2, c2)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c1.count(t, domain.EventNewNumber) >= 20 && c2.count(t, domain.EventNewNumber) >= 20
	}, 5*time.Second, time.Millisecond)

	// Both members observe the same sequence, with no duplicates.
	n1 := c1.numbers(t)[:20]
	n2 := c2.numbers(t)[:20]
	assert.Equal(t, n1, n2)

	seen := make(map[int]bool)
	for _, n := range n1 {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 75)
		assert.False(t, seen[n], "number %d called twice", n)
		seen[n] = true
	}
}

func TestCaller_ExhaustionEndsGame(t *testing.T) {
	g := NewRegistry(Config{GraceDelay: time.Millisecond, CallInterval: time.Millisecond})
	c1 := &mockConn{id: "c1"}
	c2 := &mockConn{id: "c2"}

	_, err := g.Join(2, c1)
	require.NoError(t, err)
	_, err = g.Join(2, c2)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c1.count(t, domain.EventGameOver) == 1
	}, 10*time.Second, 5*time.Millisecond)

	// Every number was called exactly once before the game ended.
	numbers := c1.numbers(t)
	require.Len(t, numbers, 75)
	seen := make(map[int]bool)
	for _, n := range numbers {
		seen[n] = true
	}
	assert.Len(t, seen, 75)

	rooms, _ := g.Stats()
	assert.Equal(t, 0, rooms)

	// gameOver is the end of the line: no calls trickle in afterwards.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, c1.numbers(t), 75)
}

func TestCaller_StopBeforeGraceSuppressesAllCalls(t *testing.T) {
	g := NewRegistry(Config{GraceDelay: 30 * time.Millisecond, CallInterval: 5 * time.Millisecond})
	c1 := &mockConn{id: "c1"}
	c2 := &mockConn{id: "c2"}

	_, err := g.Join(2, c1)
	require.NoError(t, err)
	snap, err := g.Join(2, c2)
	require.NoError(t, err)

	g.Destroy(snap.RoomName)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, c1.count(t, domain.EventNewNumber))
}
