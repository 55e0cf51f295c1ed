package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArmies(t *testing.T) {
	cfg, err := LoadArmies("testdata/armies.yaml")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	require.Len(t, cfg.P1, 2)
	require.Len(t, cfg.P2, 1)

	grunt := cfg.P1[0]
	assert.Equal(t, "grunt", grunt.Name)
	assert.Equal(t, 4, grunt.MaxHP)
	assert.Equal(t, 3, grunt.Count)
	assert.Equal(t, 4, grunt.HP, "hp defaults to max_hp")
	assert.Equal(t, 1.0, grunt.Speed, "speed defaults to 1.0")

	healer := cfg.P1[1]
	assert.Equal(t, 1, healer.Count, "count defaults to 1")
	require.Len(t, healer.Abilities, 1)
	ab := healer.Abilities[0]
	assert.Equal(t, "endturn", ab.Trigger)
	assert.Equal(t, "heal", ab.Effect)
	assert.Equal(t, "area", ab.Target)
	assert.Equal(t, 2, ab.Value)
	assert.Equal(t, 3, ab.Range)

	brute := cfg.P2[0]
	require.NotNil(t, brute.Position)
	assert.Equal(t, 12, brute.Position.Col)
	assert.Equal(t, 1.5, brute.Speed)
}

func TestLoadArmiesMissingFile(t *testing.T) {
	_, err := LoadArmies("testdata/nope.yaml")
	assert.Error(t, err)
}
