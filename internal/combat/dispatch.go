package combat

// triggerContext carries the subject of a trigger firing: the attack target
// for onhit, the dying unit for onkill/lament/harvest, the damage source for
// wounded, nil for turnstart/endturn.
type triggerContext struct {
	target *Unit
}

// triggerAbilities fires every ability of u matching the trigger, in
// declaration order. Silenced and dead units fire nothing. With immediate
// event application, the queue drains before the next ability fires.
func (b *Battle) triggerAbilities(u *Unit, trigger Trigger, ctx triggerContext) {
	if u.silenced || !u.Alive() {
		return
	}
	for i := range u.Abilities {
		ab := &u.Abilities[i]
		if ab.Trigger != trigger {
			continue
		}
		if !b.chargeReady(u, i) {
			continue
		}
		b.executeAbility(u, ab, ctx)
		if b.applyEventsImmediately {
			b.drainEvents()
		}
	}
}

// chargeReady counts a matching trigger against ability i's charge and
// reports whether it fires now. The counter resets on firing.
func (b *Battle) chargeReady(u *Unit, i int) bool {
	u.chargeCounters[i]++
	if u.chargeCounters[i] < u.Abilities[i].Charge {
		return false
	}
	u.chargeCounters[i] = 0
	return true
}

// abilityValue resolves an ability's value: the literal value plus amplify
// auras from allies, never negative. A base of zero is never amplified.
func (b *Battle) abilityValue(u *Unit, ab *Ability) int {
	if ab.Value <= 0 {
		return 0
	}
	if ab.NoAmplify {
		return ab.Value
	}
	bonus := 0
	for _, ally := range b.units {
		if !ally.Alive() || ally.Player != u.Player || ally.ID == u.ID || ally.silenced {
			continue
		}
		for j := range ally.Abilities {
			amp := &ally.Abilities[j]
			if amp.Trigger == TriggerPassive && amp.Effect == EffectAmplify &&
				Distance(u.Pos, ally.Pos) <= amp.Aura {
				bonus += amp.Value
			}
		}
	}
	return ab.Value + bonus
}

// abilityRange defaults a zero range to the owner's attack range.
func abilityRange(u *Unit, ab *Ability) int {
	if ab.Range > 0 {
		return ab.Range
	}
	return u.AttackRange
}

// targetsFor resolves an ability's targets. Damaging effects pick enemies,
// supportive ones allies; heal skips full-HP units. An empty result is not
// an error, the effect is simply a no-op.
func (b *Battle) targetsFor(u *Unit, ab *Ability, ctx triggerContext) []*Unit {
	switch ab.Target {
	case TargetSelf:
		return []*Unit{u}
	case TargetTarget:
		if ctx.target != nil && ctx.target.Alive() {
			return []*Unit{ctx.target}
		}
		return nil
	case TargetGlobal:
		var out []*Unit
		for _, v := range b.units {
			if !v.Alive() {
				continue
			}
			if ab.Effect.damaging() {
				if v.Player != u.Player {
					out = append(out, v)
				}
			} else if v.Player == u.Player {
				out = append(out, v)
			}
		}
		return out
	}
	rng := abilityRange(u, ab)
	var pool []*Unit
	for _, v := range b.units {
		if !v.Alive() || Distance(u.Pos, v.Pos) > rng {
			continue
		}
		if ab.Effect.supportive() {
			if v.Player != u.Player {
				continue
			}
			if ab.Effect == EffectHeal && v.HP >= v.MaxHP {
				continue
			}
			pool = append(pool, v)
		} else if v.Player != u.Player {
			pool = append(pool, v)
		}
	}
	if ab.Target == TargetRandom {
		if len(pool) == 0 {
			return nil
		}
		return []*Unit{pool[b.rng.Intn(len(pool))]}
	}
	return pool
}

// executeAbility runs one fired ability. Handlers either mutate state
// immediately or enqueue events for the drain to apply.
func (b *Battle) executeAbility(u *Unit, ab *Ability, ctx triggerContext) {
	value := b.abilityValue(u, ab)
	switch ab.Effect {
	case EffectHeal:
		for _, t := range b.targetsFor(u, ab, ctx) {
			b.queueEvent(eventHeal, u, t, value, false)
		}
	case EffectFortify:
		for _, t := range b.targetsFor(u, ab, ctx) {
			b.queueEvent(eventFortify, u, t, value, false)
		}
	case EffectStrike:
		for _, t := range b.targetsFor(u, ab, ctx) {
			b.queueEvent(eventStrike, u, t, value, true)
		}
	case EffectSplash:
		if ctx.target != nil {
			b.queueSplash(u, ctx.target, value)
		}
	case EffectSunder:
		for _, t := range b.targetsFor(u, ab, ctx) {
			b.queueEvent(eventSunder, u, t, value, true)
		}
	case EffectRamp:
		u.ramp(value)
		b.action().RampPos = hexPtr(u.Pos)
	case EffectPush:
		if targets := b.targetsFor(u, ab, ctx); len(targets) > 0 {
			b.applyPush(u, targets[0], value)
		}
	case EffectRetreat:
		if ctx.target != nil {
			b.applyRetreat(u, ctx.target)
		}
	case EffectFreeze:
		for _, t := range b.targetsFor(u, ab, ctx) {
			if t.frozenTurns < value {
				t.frozenTurns = value
			}
			b.logf("  %s is frozen", t)
		}
	case EffectSummon:
		b.applySummon(u, value, ab)
	case EffectShadowstep:
		// Consumed by the movement phase of the current turn.
		b.shadowstepPending = true
	case EffectSilence:
		b.applySilence(u, ab)
	case EffectReady:
		u.readyTriggered = true
		b.logf("  %s readies for another action!", u)
	default:
		// Passive kinds (block, execute, armor, boost, undying,
		// lament_aura, amplify) are queried by the pipelines, never fired.
	}
}

// queueSplash enqueues strike-like splash events on every enemy adjacent to
// the primary target, excluding the primary itself.
func (b *Battle) queueSplash(attacker, target *Unit, amount int) {
	for _, enemy := range b.units {
		if enemy.Alive() && enemy.Player != attacker.Player && enemy.ID != target.ID &&
			Distance(enemy.Pos, target.Pos) <= 1 {
			b.queueEvent(eventSplash, attacker, enemy, amount, false)
		}
	}
}

// applyPush moves the target up to pushVal hexes along the horizontal push
// direction, stopping at the first blocked or out-of-bounds hex.
func (b *Battle) applyPush(attacker, target *Unit, pushVal int) {
	if pushVal <= 0 || !target.Alive() {
		return
	}
	dir := pushDir(attacker.Pos, target.Pos)
	occupied := b.occupiedSet()
	pos := target.Pos
	for i := 0; i < pushVal; i++ {
		next := Hex{Col: pos.Col + dir, Row: pos.Row}
		if next.Col < 0 || next.Col >= Cols || (occupied[next] && next != target.Pos) {
			break
		}
		pos = next
	}
	if pos == target.Pos {
		return
	}
	old := target.Pos
	target.Pos = pos
	b.logf("  %s pushed (%d,%d)->(%d,%d)", target, old.Col, old.Row, pos.Col, pos.Row)
	a := b.action()
	a.PushFrom = hexPtr(old)
	a.PushTo = hexPtr(pos)
}

// applyRetreat moves u one hex away from the target, preferring the largest
// distance gain; ties resolve by neighbor enumeration order.
func (b *Battle) applyRetreat(u, target *Unit) {
	occupied := b.occupiedSet()
	delete(occupied, u.Pos)
	current := Distance(u.Pos, target.Pos)
	best := u.Pos
	bestDist := current
	for _, nb := range neighbors(u.Pos, b.rows) {
		if occupied[nb] {
			continue
		}
		if d := Distance(nb, target.Pos); d > bestDist {
			bestDist = d
			best = nb
		}
	}
	if best == u.Pos {
		return
	}
	u.Pos = best
	b.logf("  %s retreats to (%d,%d)", u, best.Col, best.Row)
}

// applySilence silences living enemies within the ability's range. Silence
// persists until the unit dies.
func (b *Battle) applySilence(u *Unit, ab *Ability) {
	rng := abilityRange(u, ab)
	for _, enemy := range b.units {
		if enemy.Alive() && enemy.Player != u.Player && !enemy.silenced &&
			Distance(u.Pos, enemy.Pos) <= rng {
			enemy.silenced = true
			b.logf("  %s silences %s!", u, enemy)
		}
	}
}

// applySummon creates up to count Blade units on empty hexes adjacent to the
// summoner, in neighbor order. With summon_ready they join the remainder of
// this round's turn order.
func (b *Battle) applySummon(u *Unit, count int, ab *Ability) {
	if count <= 0 || !u.Alive() {
		return
	}
	occupied := b.occupiedSet()
	summoned := 0
	for _, pos := range neighbors(u.Pos, b.rows) {
		if summoned >= count {
			break
		}
		if occupied[pos] {
			continue
		}
		blade := &Unit{
			ID:          b.nextUnitID(),
			Name:        "Blade",
			DisplayName: "Blade",
			Player:      u.Player,
			SummonerID:  u.ID,
			MaxHP:       1,
			HP:          1,
			Damage:      2,
			AttackRange: 1,
			Speed:       1.0,
			Pos:         pos,
			HasActed:    !ab.SummonReady,
		}
		b.units = append(b.units, blade)
		occupied[pos] = true
		if ab.SummonReady {
			// Splice in after the current unit so the blade acts this round.
			at := b.currentIndex + 1
			if at > len(b.turnOrder) {
				at = len(b.turnOrder)
			}
			b.turnOrder = append(b.turnOrder[:at], append([]*Unit{blade}, b.turnOrder[at:]...)...)
		}
		summoned++
	}
	if summoned > 0 {
		b.logf("  %s summons %d Blade(s)!", u, summoned)
	}
}
