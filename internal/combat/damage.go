package combat

// effectiveArmor is base armor plus the unit's own non-aura armor passives
// plus armor auras from allies in range. Silence disables both kinds.
func (b *Battle) effectiveArmor(u *Unit) int {
	bonus := 0
	if !u.silenced {
		for i := range u.Abilities {
			ab := &u.Abilities[i]
			if ab.Trigger == TriggerPassive && ab.Effect == EffectArmor && ab.Aura == 0 {
				bonus += b.abilityValue(u, ab)
			}
		}
	}
	for _, ally := range b.units {
		if !ally.Alive() || ally.Player != u.Player || ally.ID == u.ID || ally.silenced {
			continue
		}
		for i := range ally.Abilities {
			ab := &ally.Abilities[i]
			if ab.Trigger == TriggerPassive && ab.Effect == EffectArmor && ab.Aura > 0 &&
				Distance(u.Pos, ally.Pos) <= ab.Aura {
				bonus += b.abilityValue(ally, ab)
			}
		}
	}
	return u.Armor + bonus
}

// boostBonus sums boost passives across a player's living, un-silenced
// units. There is no range restriction; the booster counts for itself too.
func (b *Battle) boostBonus(player int) int {
	bonus := 0
	for _, u := range b.units {
		if !u.Alive() || u.Player != player || u.silenced {
			continue
		}
		for i := range u.Abilities {
			ab := &u.Abilities[i]
			if ab.Trigger == TriggerPassive && ab.Effect == EffectBoost {
				bonus += b.abilityValue(u, ab)
			}
		}
	}
	return bonus
}

// applyDamage runs the damage pipeline: block, armor, undying rescue, then
// HP loss with wounded/execute/death handling. Returns the damage dealt.
func (b *Battle) applyDamage(target *Unit, amount int, source *Unit) int {
	if !target.silenced {
		for i := range target.Abilities {
			ab := &target.Abilities[i]
			if ab.Trigger != TriggerPassive || ab.Effect != EffectBlock {
				continue
			}
			// Only the first block ability matters.
			if target.blockUsed < ab.Value {
				target.blockUsed++
				b.logf("  %s blocks damage! (%d/%d blocks used)", target, target.blockUsed, ab.Value)
				return 0
			}
			break
		}
	}

	actual := amount - b.effectiveArmor(target)
	if actual <= 0 {
		return 0
	}
	if target.HP-actual <= 0 && target.Damage > 0 {
		if savior, cost := b.undyingSavior(target); savior != nil {
			target.Damage -= cost
			b.logf("  %s saved by Undying! Loses %d dmg (now %d)", target, cost, target.Damage)
			a := b.action()
			a.UndyingSaves = append(a.UndyingSaves, UndyingSave{TargetPos: target.Pos, SourcePos: savior.Pos})
			return 0
		}
	}
	target.HP -= actual
	if target.Alive() {
		// Deaths caused from here on (execute, self-inflicted wounded
		// effects) run their own death handling.
		b.triggerAbilities(target, TriggerWounded, triggerContext{target: source})
		b.checkExecute(target)
	} else {
		b.handleDeath(target, source)
	}
	return actual
}

// undyingSavior finds the lowest-ID living, un-silenced ally whose undying
// aura covers the target and whose value fits the target's damage. The
// rescue's price is returned alongside.
func (b *Battle) undyingSavior(target *Unit) (*Unit, int) {
	for _, ally := range b.units {
		if !ally.Alive() || ally.Player != target.Player || ally.ID == target.ID || ally.silenced {
			continue
		}
		for i := range ally.Abilities {
			ab := &ally.Abilities[i]
			if ab.Trigger != TriggerPassive || ab.Effect != EffectUndying {
				continue
			}
			if Distance(target.Pos, ally.Pos) > ab.Aura {
				continue
			}
			if cost := b.abilityValue(ally, ab); cost <= target.Damage {
				return ally, cost
			}
		}
	}
	return nil, 0
}

// checkExecute kills a wounded target whose HP fell under an enemy execute
// threshold. Enemies are checked by ID ascending; the first match wins and
// is credited with the kill.
func (b *Battle) checkExecute(target *Unit) {
	if !target.Alive() {
		return
	}
	for _, u := range b.units {
		if !u.Alive() || u.Player == target.Player || u.silenced {
			continue
		}
		for i := range u.Abilities {
			ab := &u.Abilities[i]
			if ab.Trigger != TriggerPassive || ab.Effect != EffectExecute {
				continue
			}
			if Distance(u.Pos, target.Pos) <= ab.Aura && target.HP <= b.abilityValue(u, ab) {
				b.logf("  %s executes %s! (HP %d <= %d)", u, target, target.HP, b.abilityValue(u, ab))
				target.HP = 0
				b.handleDeath(target, u)
				return
			}
		}
	}
}

// handleDeath fires the death cascade: the killer's onkill, then laments,
// harvests and lament auras across all units by ID ascending, so chained
// deaths resolve deterministically.
func (b *Battle) handleDeath(dead *Unit, source *Unit) {
	if source != nil && source.Alive() {
		b.triggerAbilities(source, TriggerOnKill, triggerContext{target: dead})
	}
	for _, v := range b.units {
		if !v.Alive() {
			continue
		}
		if !v.silenced {
			for i := range v.Abilities {
				ab := &v.Abilities[i]
				isLament := ab.Trigger == TriggerLament && v.Player == dead.Player && v.ID != dead.ID
				isHarvest := ab.Trigger == TriggerHarvest && v.Player != dead.Player
				if !isLament && !isHarvest {
					continue
				}
				if Distance(v.Pos, dead.Pos) > abilityRange(v, ab) {
					continue
				}
				if !b.chargeReady(v, i) {
					continue
				}
				b.executeAbility(v, ab, triggerContext{target: dead})
				if b.applyEventsImmediately {
					b.drainEvents()
				}
			}
		}
		// Lament auras are a passive scan, not a trigger fire: allies of the
		// fallen near the aura carrier gain permanent damage.
		if v.Player != dead.Player {
			continue
		}
		for i := range v.Abilities {
			ab := &v.Abilities[i]
			if ab.Trigger != TriggerPassive || ab.Effect != EffectLamentAura {
				continue
			}
			if Distance(v.Pos, dead.Pos) > ab.Aura {
				continue
			}
			value := b.abilityValue(v, ab)
			for _, ally := range b.units {
				if !ally.Alive() || ally.Player != dead.Player || ally.ID == dead.ID {
					continue
				}
				if Distance(ally.Pos, v.Pos) > ab.Aura {
					continue
				}
				ally.ramp(value)
				b.logf("  %s gains %d dmg from Aura Lament (now %d)", ally, value, ally.Damage)
				a := b.action()
				a.VengeancePositions = append(a.VengeancePositions, ally.Pos)
			}
		}
	}
}
