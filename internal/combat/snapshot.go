package combat

// unitState is the per-unit slice of a full battle snapshot.
type unitState struct {
	pos             Hex
	hp              int
	maxHP           int
	damage          int
	armor           int
	hasActed        bool
	rampAccumulated int
	frozenTurns     int
	blockUsed       int
	silenced        bool
	readyTriggered  bool
	chargeCounters  []int
}

// snapshot is a full value-copy of the battle: restoring one must reproduce
// every subsequent random draw and observable state byte for byte.
type snapshot struct {
	unitStates     map[int]unitState
	unitIDs        []int
	turnIDs        []int
	currentIndex   int
	round          int
	winner         int
	hasWinner      bool
	log            []string
	rngState       uint64
	stalemateCount int
	stalemateSnaps [][]unitSnap
	pendingEvents  []EffectEvent
	lastAction     *Action
	unitIDCounter  int
}

func (b *Battle) captureSnapshot() snapshot {
	states := make(map[int]unitState, len(b.units))
	unitIDs := make([]int, 0, len(b.units))
	for _, u := range b.units {
		unitIDs = append(unitIDs, u.ID)
		states[u.ID] = unitState{
			pos:             u.Pos,
			hp:              u.HP,
			maxHP:           u.MaxHP,
			damage:          u.Damage,
			armor:           u.Armor,
			hasActed:        u.HasActed,
			rampAccumulated: u.rampAccumulated,
			frozenTurns:     u.frozenTurns,
			blockUsed:       u.blockUsed,
			silenced:        u.silenced,
			readyTriggered:  u.readyTriggered,
			chargeCounters:  append([]int(nil), u.chargeCounters...),
		}
	}
	turnIDs := make([]int, len(b.turnOrder))
	for i, u := range b.turnOrder {
		turnIDs[i] = u.ID
	}
	snaps := make([][]unitSnap, len(b.stalemateSnaps))
	for i, s := range b.stalemateSnaps {
		snaps[i] = append([]unitSnap(nil), s...)
	}
	return snapshot{
		unitStates:     states,
		unitIDs:        unitIDs,
		turnIDs:        turnIDs,
		currentIndex:   b.currentIndex,
		round:          b.round,
		winner:         b.winner,
		hasWinner:      b.hasWinner,
		log:            append([]string(nil), b.log...),
		rngState:       b.rng.State(),
		stalemateCount: b.stalemateCount,
		stalemateSnaps: snaps,
		pendingEvents:  append([]EffectEvent(nil), b.pendingEvents...),
		lastAction:     b.lastAction.clone(),
		unitIDCounter:  b.unitIDCounter,
	}
}

// saveState pushes an undo snapshot; Step calls it before acting.
func (b *Battle) saveState() {
	if !b.recordHistory {
		return
	}
	b.history = append(b.history, b.captureSnapshot())
}

// Undo restores the previous snapshot, RNG state included. Units summoned
// after the snapshot vanish. Reports false when nothing is left to undo.
func (b *Battle) Undo() bool {
	if len(b.history) == 0 {
		return false
	}
	s := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.restoreSnapshot(s)
	return true
}

func (b *Battle) restoreSnapshot(s snapshot) {
	byID := make(map[int]*Unit, len(b.units))
	for _, u := range b.units {
		byID[u.ID] = u
	}
	units := make([]*Unit, 0, len(s.unitIDs))
	for _, id := range s.unitIDs {
		if u, ok := byID[id]; ok {
			units = append(units, u)
		}
	}
	b.units = units
	for id, st := range s.unitStates {
		u := byID[id]
		if u == nil {
			continue
		}
		u.Pos = st.pos
		u.HP = st.hp
		u.MaxHP = st.maxHP
		u.Damage = st.damage
		u.Armor = st.armor
		u.HasActed = st.hasActed
		u.rampAccumulated = st.rampAccumulated
		u.frozenTurns = st.frozenTurns
		u.blockUsed = st.blockUsed
		u.silenced = st.silenced
		u.readyTriggered = st.readyTriggered
		u.chargeCounters = append([]int(nil), st.chargeCounters...)
	}
	order := make([]*Unit, 0, len(s.turnIDs))
	for _, id := range s.turnIDs {
		if u, ok := byID[id]; ok {
			order = append(order, u)
		}
	}
	b.turnOrder = order
	b.currentIndex = s.currentIndex
	b.round = s.round
	b.winner = s.winner
	b.hasWinner = s.hasWinner
	b.log = append([]string(nil), s.log...)
	b.rng.Restore(s.rngState)
	b.stalemateCount = s.stalemateCount
	snaps := make([][]unitSnap, len(s.stalemateSnaps))
	for i, sn := range s.stalemateSnaps {
		snaps[i] = append([]unitSnap(nil), sn...)
	}
	b.stalemateSnaps = snaps
	b.pendingEvents = append([]EffectEvent(nil), s.pendingEvents...)
	b.lastAction = s.lastAction.clone()
	b.unitIDCounter = s.unitIDCounter
}

// History exposes the undo stack depth.
func (b *Battle) History() int { return len(b.history) }
