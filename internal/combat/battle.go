package combat

import (
	"fmt"
	"sort"

	"hexbattle/internal/util"
)

// Options tune a battle's bookkeeping.
type Options struct {
	// ApplyEventsImmediately drains queued effect events after each fired
	// ability; otherwise they wait for the end of the turn.
	ApplyEventsImmediately bool
	// RecordHistory keeps per-step snapshots for Undo. Turn it off for bulk
	// simulation.
	RecordHistory bool
}

func DefaultOptions() Options {
	return Options{ApplyEventsImmediately: true, RecordHistory: true}
}

// Battle is one self-contained, single-threaded hex battle. All state lives
// in the value; independent battles never share anything.
type Battle struct {
	units        []*Unit // ID ascending; dead units stay
	turnOrder    []*Unit
	currentIndex int
	round        int
	winner       int // meaningful only when hasWinner; 0 is a draw
	hasWinner    bool
	log          []string
	rng          *util.RNG
	rows         int

	applyEventsImmediately bool
	recordHistory          bool

	lastAction        *Action
	pendingEvents     []EffectEvent
	draining          bool
	shadowstepPending bool

	history        []snapshot
	stalemateSnaps [][]unitSnap
	stalemateCount int
	unitIDCounter  int
}

// NewBattle validates the army specs, deploys both sides, and opens round 1.
// Construction fails atomically on any malformed spec. An empty spec list
// falls back to the side's default army.
func NewBattle(p1, p2 []UnitSpec, seed int64, opts Options) (*Battle, error) {
	if len(p1) == 0 {
		p1 = DefaultP1Army()
	}
	if len(p2) == 0 {
		p2 = DefaultP2Army()
	}
	b := &Battle{
		rng:                    util.New(seed),
		applyEventsImmediately: opts.ApplyEventsImmediately,
		recordHistory:          opts.RecordHistory,
	}
	b.rows = computeRows(p1, p2)
	p1Units, err := b.buildUnits(p1, 1)
	if err != nil {
		return nil, err
	}
	p2Units, err := b.buildUnits(p2, 2)
	if err != nil {
		return nil, err
	}
	if err := b.deploy(p1Units, p2Units); err != nil {
		return nil, err
	}
	b.newRound()
	return b, nil
}

// DefaultP1Army is the western garrison used when no P1 spec is supplied.
func DefaultP1Army() []UnitSpec {
	return []UnitSpec{
		{Name: "Page", MaxHP: 3, Damage: 1, Range: 1, Count: 10},
		{Name: "Librarian", MaxHP: 2, Damage: 0, Range: 3, Count: 5,
			Abilities: []AbilitySpec{{Trigger: "onhit", Effect: "sunder", Target: "target", Value: 1}}},
	}
}

// DefaultP2Army is the eastern garrison used when no P2 spec is supplied.
func DefaultP2Army() []UnitSpec {
	return []UnitSpec{
		{Name: "Apprentice", MaxHP: 8, Damage: 1, Range: 2, Count: 10,
			Abilities: []AbilitySpec{{Trigger: "onhit", Effect: "push", Target: "target", Value: 1}}},
		{Name: "Seeker", MaxHP: 3, Damage: 1, Range: 4, Count: 5,
			Abilities: []AbilitySpec{{Trigger: "onhit", Effect: "ramp", Target: "self", Value: 1}}},
	}
}

// computeRows sizes the board so the bigger frontline tier (units sharing an
// army's minimum range) fits in one column, clamped to [MinRows, MaxRows].
func computeRows(p1, p2 []UnitSpec) int {
	frontline := func(specs []UnitSpec) int {
		minRange := 0
		for _, s := range specs {
			if minRange == 0 || s.Range < minRange {
				minRange = s.Range
			}
		}
		n := 0
		for _, s := range specs {
			if s.Range == minRange {
				n += specCount(s)
			}
		}
		return n
	}
	needed := frontline(p1)
	if n := frontline(p2); n > needed {
		needed = n
	}
	if needed < MinRows {
		return MinRows
	}
	if needed > MaxRows {
		return MaxRows
	}
	return needed
}

func specCount(s UnitSpec) int {
	if s.Count == 0 {
		return 1
	}
	return s.Count
}

func (b *Battle) nextUnitID() int {
	b.unitIDCounter++
	return b.unitIDCounter
}

// buildUnits expands specs into units, validating everything up front.
func (b *Battle) buildUnits(specs []UnitSpec, player int) ([]*Unit, error) {
	var units []*Unit
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, fmt.Errorf("player %d: %w", player, err)
		}
		abilities := make([]Ability, 0, len(spec.Abilities))
		for _, as := range spec.Abilities {
			ab, err := compileAbility(as)
			if err != nil {
				return nil, fmt.Errorf("player %d: unit %q: %w", player, spec.Name, err)
			}
			abilities = append(abilities, ab)
		}
		displayName := spec.DisplayName
		if displayName == "" {
			displayName = spec.Name
		}
		hp := spec.HP
		if hp == 0 {
			hp = spec.MaxHP
		}
		speed := spec.Speed
		if speed == 0 {
			speed = 1.0
		}
		for i := 0; i < specCount(spec); i++ {
			u := &Unit{
				ID:             b.nextUnitID(),
				Name:           spec.Name,
				DisplayName:    displayName,
				Player:         player,
				MaxHP:          spec.MaxHP,
				HP:             hp,
				Damage:         spec.Damage,
				AttackRange:    spec.Range,
				Armor:          spec.Armor,
				Speed:          speed,
				Abilities:      append([]Ability(nil), abilities...),
				chargeCounters: make([]int, len(abilities)),
			}
			if spec.Position != nil {
				if !inBounds(*spec.Position, b.rows) {
					return nil, fmt.Errorf("player %d: unit %q: position (%d,%d) out of bounds",
						player, spec.Name, spec.Position.Col, spec.Position.Row)
				}
				u.Pos = *spec.Position
			} else {
				u.Pos = Hex{Col: -1} // placed by deployment
			}
			units = append(units, u)
		}
	}
	return units, nil
}

// deploy places explicitly positioned units first, then runs range-tier
// deployment for the rest of each army within its zone.
func (b *Battle) deploy(p1Units, p2Units []*Unit) error {
	used := map[Hex]bool{}
	for _, u := range append(append([]*Unit{}, p1Units...), p2Units...) {
		if u.Pos.Col >= 0 {
			if used[u.Pos] {
				return fmt.Errorf("unit %q: position (%d,%d) already occupied", u.Name, u.Pos.Col, u.Pos.Row)
			}
			used[u.Pos] = true
		}
	}
	if err := b.deployTiers(p1Units, 1, used); err != nil {
		return err
	}
	if err := b.deployTiers(p2Units, 2, used); err != nil {
		return err
	}
	b.units = append(b.units, p1Units...)
	b.units = append(b.units, p2Units...)
	return nil
}

// deployTiers assigns columns front-to-back by range tier: shorter-ranged
// units stand closer to the enemy, a new column opens on each tier change,
// rows center-pack and shuffle within each column.
func (b *Battle) deployTiers(units []*Unit, player int, used map[Hex]bool) error {
	var auto []*Unit
	for _, u := range units {
		if u.Pos.Col < 0 {
			auto = append(auto, u)
		}
	}
	if len(auto) == 0 {
		return nil
	}
	sort.SliceStable(auto, func(i, j int) bool { return auto[i].AttackRange < auto[j].AttackRange })
	// Shuffle within each range tier to interleave unit types.
	for lo := 0; lo < len(auto); {
		hi := lo
		for hi < len(auto) && auto[hi].AttackRange == auto[lo].AttackRange {
			hi++
		}
		tier := auto[lo:hi]
		b.rng.Shuffle(len(tier), func(i, j int) { tier[i], tier[j] = tier[j], tier[i] })
		lo = hi
	}

	var cols []int
	if player == 1 {
		for c := p1ZoneEnd - 1; c >= 0; c-- {
			cols = append(cols, c)
		}
	} else {
		for c := p2ZoneStart; c < Cols; c++ {
			cols = append(cols, c)
		}
	}

	colIdx := 0
	i := 0
	prevRange := -1
	for i < len(auto) {
		if colIdx >= len(cols) {
			return fmt.Errorf("player %d: army does not fit its deployment zone", player)
		}
		col := cols[colIdx]
		free := freeRows(col, b.rows, used)
		if prevRange >= 0 && auto[i].AttackRange != prevRange {
			colIdx++
			prevRange = auto[i].AttackRange
			continue
		}
		prevRange = auto[i].AttackRange
		// Take as many same-tier units as fit this column.
		k := 0
		for i+k < len(auto) && auto[i+k].AttackRange == prevRange && k < len(free) {
			k++
		}
		if k == 0 {
			colIdx++
			continue
		}
		rows := centerPack(free, b.rows, k)
		positions := make([]Hex, len(rows))
		for j, r := range rows {
			positions[j] = Hex{Col: col, Row: r}
		}
		b.rng.Shuffle(len(positions), func(x, y int) { positions[x], positions[y] = positions[y], positions[x] })
		for j := 0; j < k; j++ {
			auto[i+j].Pos = positions[j]
			used[positions[j]] = true
		}
		i += k
		if i < len(auto) && auto[i].AttackRange == prevRange {
			colIdx++ // tier overflowed the column
		}
	}
	return nil
}

func freeRows(col, rows int, used map[Hex]bool) []int {
	var out []int
	for r := 0; r < rows; r++ {
		if !used[Hex{Col: col, Row: r}] {
			out = append(out, r)
		}
	}
	return out
}

// centerPack picks k rows closest to the board's middle, sorted ascending.
func centerPack(free []int, rows, k int) []int {
	mid := rows / 2
	picked := append([]int(nil), free...)
	sort.SliceStable(picked, func(i, j int) bool {
		di, dj := abs(picked[i]-mid), abs(picked[j]-mid)
		if di != dj {
			return di < dj
		}
		return picked[i] < picked[j]
	})
	picked = picked[:k]
	sort.Ints(picked)
	return picked
}

// unitSnap is one living unit's entry in the per-round progress fingerprint
// (see roundSnapshot) used for stalemate detection.
type unitSnap struct {
	id     int
	hp     int
	pos    Hex
	armor  int
	damage int
	count  int
}

func (b *Battle) roundSnapshot() []unitSnap {
	var out []unitSnap
	for _, u := range b.units {
		if u.Alive() {
			out = append(out, unitSnap{id: u.ID, hp: u.HP, pos: u.Pos, armor: u.Armor, damage: u.Damage, count: len(b.units)})
		}
	}
	return out
}

func snapsEqual(a, bs []unitSnap) bool {
	if len(a) != len(bs) {
		return false
	}
	for i := range a {
		if a[i] != bs[i] {
			return false
		}
	}
	return true
}

// newRound advances the round counter, checks for stalemate, reshuffles the
// living units into a fresh turn order, and resets per-round flags.
func (b *Battle) newRound() {
	b.round++
	snap := b.roundSnapshot()
	if n := len(b.stalemateSnaps); n > 0 && snapsEqual(b.stalemateSnaps[n-1], snap) {
		b.stalemateCount++
	} else {
		b.stalemateCount = 0
	}
	b.stalemateSnaps = append(b.stalemateSnaps, snap)
	if len(b.stalemateSnaps) > 3 {
		b.stalemateSnaps = b.stalemateSnaps[1:]
	}
	if b.stalemateCount >= 3 {
		b.setWinner(0)
		b.log = append(b.log, "Stalemate - no progress possible. Battle is a draw!")
		return
	}

	var alive []*Unit
	for _, u := range b.units {
		if u.Alive() {
			alive = append(alive, u)
		}
	}
	b.rng.Shuffle(len(alive), func(i, j int) { alive[i], alive[j] = alive[j], alive[i] })
	b.turnOrder = alive
	b.currentIndex = 0
	for _, u := range alive {
		u.HasActed = false
		u.blockUsed = 0
	}
	b.logf("--- Round %d ---", b.round)
}

func (b *Battle) setWinner(player int) {
	b.winner = player
	b.hasWinner = true
}

func (b *Battle) occupiedSet() map[Hex]bool {
	occ := make(map[Hex]bool, len(b.units))
	for _, u := range b.units {
		if u.Alive() {
			occ[u.Pos] = true
		}
	}
	return occ
}

func (b *Battle) unitByID(id int) *Unit {
	for _, u := range b.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (b *Battle) livingEnemies(u *Unit) []*Unit {
	var out []*Unit
	for _, v := range b.units {
		if v.Alive() && v.Player != u.Player {
			out = append(out, v)
		}
	}
	return out
}

// action lazily creates the step's Action so ability side effects recorded
// before the action type is known still land on it.
func (b *Battle) action() *Action {
	if b.lastAction == nil {
		b.lastAction = &Action{}
	}
	return b.lastAction
}

func (b *Battle) logf(format string, args ...any) {
	b.log = append(b.log, fmt.Sprintf(format, args...))
}

// checkInvariants guards against engine bugs mid-battle: on violation the
// battle is forfeited as a draw instead of crashing the host.
func (b *Battle) checkInvariants() {
	seen := map[Hex]int{}
	for _, u := range b.units {
		if !u.Alive() {
			continue
		}
		if other, dup := seen[u.Pos]; dup {
			b.logf("invariant violated: units %d and %d share hex (%d,%d)", other, u.ID, u.Pos.Col, u.Pos.Row)
			b.setWinner(0)
			return
		}
		seen[u.Pos] = u.ID
		if u.HP > u.MaxHP || u.frozenTurns < 0 {
			b.logf("invariant violated: unit %d state out of range", u.ID)
			b.setWinner(0)
			return
		}
	}
}

// --- Read-only views for hosts and UIs ---

// Winner reports the battle result: 1, 2, or 0 for a draw. ok is false
// while the battle is still running.
func (b *Battle) Winner() (int, bool) { return b.winner, b.hasWinner }

// LastAction describes the most recent Step; nil before the first one.
func (b *Battle) LastAction() *Action { return b.lastAction }

// Units exposes the unit list, dead ones included.
func (b *Battle) Units() []*Unit { return b.units }

func (b *Battle) Round() int { return b.round }

func (b *Battle) Rows() int { return b.rows }

// TurnOrder lists this round's schedule as unit IDs.
func (b *Battle) TurnOrder() []int {
	ids := make([]int, len(b.turnOrder))
	for i, u := range b.turnOrder {
		ids[i] = u.ID
	}
	return ids
}

func (b *Battle) CurrentIndex() int { return b.currentIndex }

// Log returns the diagnostic event log.
func (b *Battle) Log() []string { return b.log }
