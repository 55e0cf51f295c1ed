package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathStraightLine(t *testing.T) {
	length, first, ok := shortestPath(Hex{5, 2}, Hex{8, 2}, nil, 5)
	require.True(t, ok)
	assert.Equal(t, 3, length)
	assert.Equal(t, Hex{6, 2}, first)
}

func TestShortestPathAroundObstacle(t *testing.T) {
	occupied := map[Hex]bool{{6, 2}: true}
	length, first, ok := shortestPath(Hex{5, 2}, Hex{8, 2}, occupied, 5)
	require.True(t, ok)
	assert.Equal(t, 4, length)
	assert.NotEqual(t, Hex{6, 2}, first, "first step must avoid the obstacle")
}

func TestShortestPathOccupiedGoalAllowed(t *testing.T) {
	occupied := map[Hex]bool{{8, 2}: true}
	length, _, ok := shortestPath(Hex{5, 2}, Hex{8, 2}, occupied, 5)
	require.True(t, ok)
	assert.Equal(t, 3, length)
}

func TestShortestPathUnreachable(t *testing.T) {
	// Wall off every hex adjacent to the goal.
	occupied := map[Hex]bool{}
	for _, nb := range neighbors(Hex{8, 2}, 5) {
		occupied[nb] = true
	}
	_, _, ok := shortestPath(Hex{0, 2}, Hex{8, 2}, occupied, 5)
	assert.False(t, ok)
	assert.Equal(t, unreachable, pathLength(Hex{0, 2}, Hex{8, 2}, occupied, 5))
}

func TestShortestPathSameHex(t *testing.T) {
	length, first, ok := shortestPath(Hex{3, 3}, Hex{3, 3}, nil, 5)
	require.True(t, ok)
	assert.Zero(t, length)
	assert.Equal(t, Hex{3, 3}, first)
}
