package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

func TestPool_DrawsEveryNumberExactlyOnce(t *testing.T) {
	p := NewPool()
	require.Equal(t, 75, p.Remaining())

	seen := make(map[int]bool)
	for i := 0; i < 75; i++ {
		n, err := p.Draw()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 75)
		assert.False(t, seen[n], "number %d drawn twice", n)
		seen[n] = true
		assert.Equal(t, 75-i-1, p.Remaining())
	}

	assert.Len(t, seen, 75)
}

func TestPool_DrawnAndRemainingCoverFullRange(t *testing.T) {
	p := NewPool()
	drawn := make(map[int]bool)

	for i := 0; i < 40; i++ {
		n, err := p.Draw()
		require.NoError(t, err)
		drawn[n] = true
	}

	assert.Equal(t, 75, len(drawn)+p.Remaining())
}

func TestPool_ExhaustedDraw(t *testing.T) {
	p := NewPool()
	for p.Remaining() > 0 {
		_, err := p.Draw()
		require.NoError(t, err)
	}

	_, err := p.Draw()
	assert.ErrorIs(t, err, domain.ErrPoolExhausted)
	assert.Equal(t, 0, p.Remaining())
}
