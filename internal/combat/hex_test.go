package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Hex
		want int
	}{
		{"same hex", Hex{5, 2}, Hex{5, 2}, 0},
		{"east neighbor", Hex{5, 2}, Hex{6, 2}, 1},
		{"across the field", Hex{5, 2}, Hex{11, 2}, 6},
		{"diagonal", Hex{5, 2}, Hex{5, 3}, 1},
		{"two rows down", Hex{5, 2}, Hex{5, 4}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestNeighbors(t *testing.T) {
	nbs := neighbors(Hex{6, 2}, 5)
	assert.Len(t, nbs, 6)
	// Clockwise from north-east on an even row.
	assert.Equal(t, []Hex{{6, 1}, {7, 2}, {6, 3}, {5, 3}, {5, 2}, {5, 1}}, nbs)
	for _, nb := range nbs {
		assert.Equal(t, 1, Distance(Hex{6, 2}, nb))
	}
}

func TestNeighborsOddRow(t *testing.T) {
	for _, nb := range neighbors(Hex{6, 3}, 8) {
		assert.Equal(t, 1, Distance(Hex{6, 3}, nb))
	}
}

func TestNeighborsClippedAtEdges(t *testing.T) {
	nbs := neighbors(Hex{0, 0}, 5)
	assert.Len(t, nbs, 2)
	for _, nb := range nbs {
		assert.True(t, inBounds(nb, 5))
	}
}

func TestPushDir(t *testing.T) {
	assert.Equal(t, 1, pushDir(Hex{5, 2}, Hex{7, 2}), "target east of pusher")
	assert.Equal(t, -1, pushDir(Hex{7, 2}, Hex{5, 2}), "target west of pusher")
	assert.Equal(t, 1, pushDir(Hex{5, 2}, Hex{5, 4}), "equal columns push east")
}
