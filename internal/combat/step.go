package combat

// Step executes one unit's turn and reports whether the battle continues.
// LastAction afterwards describes what happened for the front end.
func (b *Battle) Step() bool {
	b.saveState()
	b.lastAction = nil
	if b.hasWinner {
		return false
	}

	p1Alive, p2Alive := 0, 0
	for _, u := range b.units {
		if !u.Alive() {
			continue
		}
		if u.Player == 1 {
			p1Alive++
		} else {
			p2Alive++
		}
	}
	if p1Alive == 0 {
		b.setWinner(2)
		b.log = append(b.log, "Player 2 wins!")
		return false
	}
	if p2Alive == 0 {
		b.setWinner(1)
		b.log = append(b.log, "Player 1 wins!")
		return false
	}

	// Advance past dead and frozen units.
	for b.currentIndex < len(b.turnOrder) {
		u := b.turnOrder[b.currentIndex]
		if !u.Alive() {
			b.currentIndex++
			continue
		}
		if u.frozenTurns > 0 {
			u.frozenTurns--
			u.HasActed = true
			b.logf("%s is frozen and skips a turn", u)
			b.currentIndex++
			continue
		}
		break
	}
	if b.currentIndex >= len(b.turnOrder) {
		b.newRound()
		return b.Step()
	}

	unit := b.turnOrder[b.currentIndex]
	b.shadowstepPending = false
	b.triggerAbilities(unit, TriggerTurnStart, triggerContext{})

	enemies := b.livingEnemies(unit)
	if len(enemies) == 0 {
		b.setWinner(unit.Player)
		b.logf("Player %d wins!", unit.Player)
		return false
	}

	if inRange := b.enemiesInRange(unit, enemies); len(inRange) > 0 {
		target := inRange[b.rng.Intn(len(inRange))]
		b.attack(unit, target, ActionAttack, nil, nil)
	} else {
		b.moveAndMaybeAttack(unit, enemies)
	}

	b.triggerAbilities(unit, TriggerEndTurn, triggerContext{})
	if !b.applyEventsImmediately {
		b.drainEvents()
	}

	if unit.readyTriggered {
		unit.readyTriggered = false
	} else {
		unit.HasActed = true
	}
	b.currentIndex++
	b.checkInvariants()
	return true
}

func (b *Battle) enemiesInRange(u *Unit, enemies []*Unit) []*Unit {
	var out []*Unit
	for _, e := range enemies {
		if Distance(u.Pos, e.Pos) <= u.AttackRange {
			out = append(out, e)
		}
	}
	return out
}

// moveAndMaybeAttack walks the unit toward the closest enemy by path length
// (ties to the lowest ID), or shadowsteps when a turnstart shadowstep fired.
// Fast units may take an extra step; if an enemy is then in range, the turn
// ends with an attack.
func (b *Battle) moveAndMaybeAttack(unit *Unit, enemies []*Unit) {
	occupied := b.occupiedSet()
	delete(occupied, unit.Pos)

	closest := enemies[0]
	closestDist := unreachable + 1
	for _, e := range enemies {
		d := pathLength(unit.Pos, e.Pos, occupied, b.rows)
		if d < closestDist || (d == closestDist && e.ID < closest.ID) {
			closest = e
			closestDist = d
		}
	}

	// The speed roll consumes the RNG before any move so replays stay
	// aligned whether or not the bonus hex is usable.
	speedTriggered := unit.Speed > 1.0 && b.rng.Uniform() < unit.Speed-1.0

	from := unit.Pos
	moved := false
	if b.shadowstepPending {
		if dest, ok := b.shadowstepDestination(unit, enemies, occupied); ok {
			unit.Pos = dest
			moved = true
			b.logf("%s shadowsteps (%d,%d)->(%d,%d)", unit, from.Col, from.Row, dest.Col, dest.Row)
		}
	}
	if !moved {
		if length, first, ok := shortestPath(unit.Pos, closest.Pos, occupied, b.rows); ok && length > 1 {
			unit.Pos = first
			moved = true
			b.logf("%s moves (%d,%d)->(%d,%d)", unit, from.Col, from.Row, first.Col, first.Row)
			if speedTriggered {
				occ := b.occupiedSet()
				delete(occ, unit.Pos)
				if length2, first2, ok2 := shortestPath(unit.Pos, closest.Pos, occ, b.rows); ok2 && length2 > 1 {
					mid := unit.Pos
					unit.Pos = first2
					b.logf("  Speed! %s moves extra (%d,%d)->(%d,%d)", unit, mid.Col, mid.Row, first2.Col, first2.Row)
				}
			}
		}
	}

	if inRange := b.enemiesInRange(unit, enemies); len(inRange) > 0 {
		target := inRange[b.rng.Intn(len(inRange))]
		b.attack(unit, target, ActionMoveAttack, hexPtr(from), hexPtr(unit.Pos))
		return
	}
	a := b.action()
	if moved {
		a.Type = ActionMove
		a.From = hexPtr(from)
		a.To = hexPtr(unit.Pos)
	} else {
		a.Type = ActionSkip
	}
}

// attack resolves one attack through the damage pipeline with boost added,
// records the action, and fires onhit.
func (b *Battle) attack(unit, target *Unit, kind string, from, to *Hex) {
	ranged := unit.AttackRange > 1
	effArmor := b.effectiveArmor(target)
	attackDamage := unit.Damage + b.boostBonus(unit.Player)
	actual := b.applyDamage(target, attackDamage, unit)
	switch {
	case effArmor > 0 && actual < attackDamage:
		b.logf("%s attacks %s for %d dmg (%d blocked by armor)", unit, target, actual, effArmor)
	case effArmor < 0:
		b.logf("%s attacks %s for %d dmg (%d extra from sundered armor)", unit, target, actual, -effArmor)
	default:
		b.logf("%s attacks %s for %d dmg", unit, target, actual)
	}
	killed := !target.Alive()
	if killed {
		b.logf("  %s(P%d) dies!", target.Name, target.Player)
	}
	a := b.action()
	a.Type = kind
	a.AttackerPos = hexPtr(unit.Pos)
	a.TargetPos = hexPtr(target.Pos)
	a.From = from
	a.To = to
	a.Ranged = ranged
	a.Killed = killed
	b.triggerAbilities(unit, TriggerOnHit, triggerContext{target: target})
}

// shadowstepDestination picks an empty hex adjacent to the furthest living
// enemy by path length, ties to the lowest enemy ID, first free neighbor in
// enumeration order.
func (b *Battle) shadowstepDestination(unit *Unit, enemies []*Unit, occupied map[Hex]bool) (Hex, bool) {
	var furthest *Unit
	furthestDist := -1
	for _, e := range enemies {
		d := pathLength(unit.Pos, e.Pos, occupied, b.rows)
		if d > furthestDist || (d == furthestDist && e.ID < furthest.ID) {
			furthest = e
			furthestDist = d
		}
	}
	if furthest == nil {
		return Hex{}, false
	}
	for _, nb := range neighbors(furthest.Pos, b.rows) {
		if !occupied[nb] {
			return nb, true
		}
	}
	return Hex{}, false
}
