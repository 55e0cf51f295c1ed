package combat

import "fmt"

// Unit is one combatant. Dead units stay in the battle's unit list so events
// and history can still resolve their IDs; they are excluded from turn order
// progression and queries.
type Unit struct {
	ID          int
	Name        string
	DisplayName string
	Player      int
	SummonerID  int // 0 unless summoned

	MaxHP       int
	HP          int
	Damage      int
	AttackRange int
	Armor       int
	Speed       float64

	Abilities []Ability

	Pos      Hex
	HasActed bool

	frozenTurns     int
	silenced        bool
	blockUsed       int
	rampAccumulated int
	readyTriggered  bool
	chargeCounters  []int // parallel to Abilities
}

func (u *Unit) Alive() bool { return u.HP > 0 }

func (u *Unit) String() string {
	return fmt.Sprintf("%s(P%d HP:%d/%d)", u.DisplayName, u.Player, u.HP, u.MaxHP)
}

// heal raises HP up to MaxHP and reports the amount actually restored.
func (u *Unit) heal(amount int) int {
	healed := u.MaxHP - u.HP
	if healed > amount {
		healed = amount
	}
	if healed <= 0 {
		return 0
	}
	u.HP += healed
	return healed
}

// fortify raises MaxHP and HP together.
func (u *Unit) fortify(amount int) {
	u.MaxHP += amount
	u.HP += amount
}

// sunder lowers armor; armor may go negative.
func (u *Unit) sunder(amount int) {
	u.Armor -= amount
}

// ramp permanently raises damage, tracking the cumulative bonus.
func (u *Unit) ramp(amount int) {
	u.Damage += amount
	u.rampAccumulated += amount
}

// UnitSpec is the construction input for one unit stack.
type UnitSpec struct {
	Name        string
	DisplayName string
	MaxHP       int
	HP          int // 0 means MaxHP
	Damage      int
	Range       int
	Armor       int
	Speed       float64 // 0 means 1.0
	Count       int     // 0 means 1
	Position    *Hex
	Abilities   []AbilitySpec
}

func (s UnitSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("unit spec without a name")
	}
	if s.MaxHP < 1 {
		return fmt.Errorf("unit %q: max_hp %d < 1", s.Name, s.MaxHP)
	}
	if s.HP < 0 || s.HP > s.MaxHP {
		return fmt.Errorf("unit %q: hp %d outside [0,%d]", s.Name, s.HP, s.MaxHP)
	}
	if s.Damage < 0 {
		return fmt.Errorf("unit %q: negative damage", s.Name)
	}
	if s.Range < 1 {
		return fmt.Errorf("unit %q: range %d < 1", s.Name, s.Range)
	}
	if s.Speed != 0 && s.Speed < 1.0 {
		return fmt.Errorf("unit %q: speed %.2f < 1.0", s.Name, s.Speed)
	}
	if s.Count < 0 {
		return fmt.Errorf("unit %q: count %d < 1", s.Name, s.Count)
	}
	return nil
}
