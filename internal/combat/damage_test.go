package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockAbsorbsPerRound(t *testing.T) {
	p1 := []UnitSpec{{Name: "defender", MaxHP: 10, Damage: 1, Range: 1, Position: at(5, 2),
		Abilities: []AbilitySpec{{Trigger: "passive", Effect: "block", Target: "self", Value: 1}}}}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 5, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")
	attacker := unitNamed(t, b, "attacker")

	assert.Zero(t, b.applyDamage(defender, 5, attacker), "first hit blocked")
	assert.Equal(t, 1, defender.blockUsed)
	assert.Equal(t, 10, defender.HP)

	assert.Equal(t, 5, b.applyDamage(defender, 5, attacker), "second hit lands")
	assert.Equal(t, 5, defender.HP)

	assert.Equal(t, 5, b.applyDamage(defender, 5, attacker))
	assert.Equal(t, 0, defender.HP)
	assert.False(t, defender.Alive())
}

func TestBlockResetsEachRound(t *testing.T) {
	p1 := []UnitSpec{{Name: "defender", MaxHP: 30, Damage: 1, Range: 1, Position: at(5, 2),
		Abilities: []AbilitySpec{{Trigger: "passive", Effect: "block", Target: "self", Value: 1}}}}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 5, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")
	attacker := unitNamed(t, b, "attacker")

	b.applyDamage(defender, 5, attacker)
	require.Equal(t, 1, defender.blockUsed)
	b.newRound()
	assert.Zero(t, defender.blockUsed)
	assert.Zero(t, b.applyDamage(defender, 5, attacker), "fresh block after the round turns over")
}

func TestSilencedBlockDoesNotAbsorb(t *testing.T) {
	p1 := []UnitSpec{{Name: "defender", MaxHP: 10, Damage: 1, Range: 1, Position: at(5, 2),
		Abilities: []AbilitySpec{{Trigger: "passive", Effect: "block", Target: "self", Value: 1}}}}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 5, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")
	defender.silenced = true

	assert.Equal(t, 5, b.applyDamage(defender, 5, unitNamed(t, b, "attacker")))
}

func TestArmorAuraReducesDamage(t *testing.T) {
	p1 := []UnitSpec{
		{Name: "soldier", MaxHP: 10, Damage: 1, Range: 1, Armor: 1, Position: at(5, 2)},
		{Name: "standard", MaxHP: 10, Damage: 0, Range: 1, Position: at(4, 2),
			Abilities: []AbilitySpec{{Trigger: "passive", Effect: "armor", Target: "self", Value: 2, Aura: 2}}},
	}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 5, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	soldier := unitNamed(t, b, "soldier")

	assert.Equal(t, 3, b.effectiveArmor(soldier), "1 base + 2 aura")
	assert.Equal(t, 2, b.applyDamage(soldier, 5, unitNamed(t, b, "attacker")))

	// Silencing the aura carrier removes the bonus.
	unitNamed(t, b, "standard").silenced = true
	assert.Equal(t, 1, b.effectiveArmor(soldier))
}

func TestSunderedArmorGoesNegative(t *testing.T) {
	p1 := []UnitSpec{{Name: "victim", MaxHP: 20, Damage: 1, Range: 1, Position: at(5, 2)}}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 3, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	victim := unitNamed(t, b, "victim")

	victim.sunder(2)
	assert.Equal(t, -2, victim.Armor)
	assert.Equal(t, 5, b.applyDamage(victim, 3, unitNamed(t, b, "attacker")), "negative armor amplifies")
}

func TestUndyingSavesLethalHit(t *testing.T) {
	p1 := []UnitSpec{
		{Name: "defender", MaxHP: 10, HP: 2, Damage: 5, Range: 1, Position: at(5, 2)},
		{Name: "guardian", MaxHP: 10, Damage: 0, Range: 1, Position: at(4, 2),
			Abilities: []AbilitySpec{{Trigger: "passive", Effect: "undying", Target: "self", Value: 3, Aura: 2}}},
	}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 10, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")

	dealt := b.applyDamage(defender, 10, unitNamed(t, b, "attacker"))
	assert.Zero(t, dealt)
	assert.Equal(t, 2, defender.HP, "HP untouched by the rescue")
	assert.Equal(t, 2, defender.Damage, "rescue costs the undying value")
	assert.True(t, defender.Alive())
	require.NotNil(t, b.LastAction())
	require.Len(t, b.LastAction().UndyingSaves, 1)
	assert.Equal(t, Hex{Col: 5, Row: 2}, b.LastAction().UndyingSaves[0].TargetPos)
	assert.Equal(t, Hex{Col: 4, Row: 2}, b.LastAction().UndyingSaves[0].SourcePos)
}

func TestUndyingNeedsAffordableValue(t *testing.T) {
	p1 := []UnitSpec{
		{Name: "defender", MaxHP: 10, HP: 2, Damage: 2, Range: 1, Position: at(5, 2)},
		{Name: "guardian", MaxHP: 10, Damage: 0, Range: 1, Position: at(4, 2),
			Abilities: []AbilitySpec{{Trigger: "passive", Effect: "undying", Target: "self", Value: 3, Aura: 2}}},
	}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 10, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")

	b.applyDamage(defender, 10, unitNamed(t, b, "attacker"))
	assert.False(t, defender.Alive(), "value 3 > damage 2 cannot save")
}

func TestExecuteKillsBelowThreshold(t *testing.T) {
	p1 := []UnitSpec{{Name: "defender", MaxHP: 10, Damage: 1, Range: 1, Position: at(5, 2)}}
	p2 := []UnitSpec{
		{Name: "attacker", MaxHP: 10, Damage: 7, Range: 3, Position: at(7, 2)},
		{Name: "headsman", MaxHP: 10, Damage: 1, Range: 1, Position: at(8, 2),
			Abilities: []AbilitySpec{
				{Trigger: "passive", Effect: "execute", Target: "self", Value: 4, Aura: 5},
				{Trigger: "onkill", Effect: "ramp", Target: "self", Value: 1},
			}},
	}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")
	headsman := unitNamed(t, b, "headsman")
	require.Equal(t, 3, Distance(headsman.Pos, defender.Pos))

	dealt := b.applyDamage(defender, 7, unitNamed(t, b, "attacker"))
	assert.Equal(t, 7, dealt)
	assert.False(t, defender.Alive(), "7 damage leaves HP 3 <= threshold 4")
	assert.Equal(t, 1, headsman.rampAccumulated, "the executioner is credited with the kill")
}

func TestExecuteSkipsHealthyTargets(t *testing.T) {
	p1 := []UnitSpec{{Name: "defender", MaxHP: 20, Damage: 1, Range: 1, Position: at(5, 2)}}
	p2 := []UnitSpec{{Name: "headsman", MaxHP: 10, Damage: 1, Range: 1, Position: at(8, 2),
		Abilities: []AbilitySpec{{Trigger: "passive", Effect: "execute", Target: "self", Value: 4, Aura: 5}}}}
	b := newTestBattle(t, p1, p2, 1)
	defender := unitNamed(t, b, "defender")

	b.applyDamage(defender, 7, unitNamed(t, b, "headsman"))
	assert.True(t, defender.Alive(), "HP 13 stays above the threshold")
}

func TestBoostAddsToAttackDamage(t *testing.T) {
	p1 := []UnitSpec{
		{Name: "striker", MaxHP: 10, Damage: 2, Range: 1, Position: at(5, 2)},
		{Name: "drummer", MaxHP: 10, Damage: 0, Range: 1, Position: at(0, 0),
			Abilities: []AbilitySpec{{Trigger: "passive", Effect: "boost", Target: "self", Value: 3}}},
	}
	p2 := []UnitSpec{{Name: "dummy", MaxHP: 10, Damage: 0, Range: 1, Position: at(11, 2)}}
	b := newTestBattle(t, p1, p2, 1)

	assert.Equal(t, 3, b.boostBonus(1), "boost has no range restriction")
	assert.Zero(t, b.boostBonus(2))

	unitNamed(t, b, "drummer").silenced = true
	assert.Zero(t, b.boostBonus(1), "silenced boosters stop boosting")
}

func TestLamentAuraRampsMourners(t *testing.T) {
	p1 := []UnitSpec{
		{Name: "fodder", MaxHP: 1, Damage: 1, Range: 1, Position: at(5, 2)},
		{Name: "mourner", MaxHP: 10, Damage: 2, Range: 1, Position: at(4, 2),
			Abilities: []AbilitySpec{{Trigger: "passive", Effect: "lament_aura", Target: "self", Value: 2, Aura: 2}}},
	}
	p2 := []UnitSpec{{Name: "attacker", MaxHP: 10, Damage: 5, Range: 1, Position: at(6, 2)}}
	b := newTestBattle(t, p1, p2, 1)
	fodder := unitNamed(t, b, "fodder")
	mourner := unitNamed(t, b, "mourner")

	b.applyDamage(fodder, 5, unitNamed(t, b, "attacker"))
	require.False(t, fodder.Alive())
	assert.Equal(t, 4, mourner.Damage, "2 base + 2 vengeance")
	assert.Equal(t, 2, mourner.rampAccumulated)
	require.NotNil(t, b.LastAction())
	assert.NotEmpty(t, b.LastAction().VengeancePositions)
}
