package combat

// Action kinds for Action.Type.
const (
	ActionAttack     = "attack"
	ActionMove       = "move"
	ActionMoveAttack = "move_attack"
	ActionSkip       = "skip"
)

// UndyingSave records one undying rescue for the UI.
type UndyingSave struct {
	TargetPos Hex `json:"target_pos"`
	SourcePos Hex `json:"source_pos"`
}

// Action describes the observable events of one Step call, in the shape a
// front end animates from.
type Action struct {
	Type        string `json:"type"`
	AttackerPos *Hex   `json:"attacker_pos,omitempty"`
	TargetPos   *Hex   `json:"target_pos,omitempty"`
	From        *Hex   `json:"from,omitempty"`
	To          *Hex   `json:"to,omitempty"`
	Ranged      bool   `json:"ranged,omitempty"`
	Killed      bool   `json:"killed,omitempty"`

	HealEvents    []EffectEvent `json:"heal_events,omitempty"`
	FortifyEvents []EffectEvent `json:"fortify_events,omitempty"`
	SunderEvents  []EffectEvent `json:"sunder_events,omitempty"`
	SplashEvents  []EffectEvent `json:"splash_events,omitempty"`
	StrikeEvents  []EffectEvent `json:"strike_events,omitempty"`

	RampPos  *Hex `json:"ramp_pos,omitempty"`
	PushFrom *Hex `json:"push_from,omitempty"`
	PushTo   *Hex `json:"push_to,omitempty"`

	UndyingSaves       []UndyingSave `json:"undying_saves,omitempty"`
	VengeancePositions []Hex         `json:"vengeance_positions,omitempty"`
}

func (a *Action) clone() *Action {
	if a == nil {
		return nil
	}
	c := *a
	c.AttackerPos = cloneHex(a.AttackerPos)
	c.TargetPos = cloneHex(a.TargetPos)
	c.From = cloneHex(a.From)
	c.To = cloneHex(a.To)
	c.RampPos = cloneHex(a.RampPos)
	c.PushFrom = cloneHex(a.PushFrom)
	c.PushTo = cloneHex(a.PushTo)
	c.HealEvents = append([]EffectEvent(nil), a.HealEvents...)
	c.FortifyEvents = append([]EffectEvent(nil), a.FortifyEvents...)
	c.SunderEvents = append([]EffectEvent(nil), a.SunderEvents...)
	c.SplashEvents = append([]EffectEvent(nil), a.SplashEvents...)
	c.StrikeEvents = append([]EffectEvent(nil), a.StrikeEvents...)
	c.UndyingSaves = append([]UndyingSave(nil), a.UndyingSaves...)
	c.VengeancePositions = append([]Hex(nil), a.VengeancePositions...)
	return &c
}

func cloneHex(h *Hex) *Hex {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

func hexPtr(h Hex) *Hex { return &h }
