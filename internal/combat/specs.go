package combat

import "hexbattle/internal/config"

// SpecsFromDefs converts loaded YAML unit definitions into engine specs.
func SpecsFromDefs(defs []config.UnitDef) []UnitSpec {
	specs := make([]UnitSpec, 0, len(defs))
	for _, d := range defs {
		spec := UnitSpec{
			Name:        d.Name,
			DisplayName: d.DisplayName,
			MaxHP:       d.MaxHP,
			HP:          d.HP,
			Damage:      d.Damage,
			Range:       d.Range,
			Armor:       d.Armor,
			Speed:       d.Speed,
			Count:       d.Count,
		}
		if d.Position != nil {
			spec.Position = &Hex{Col: d.Position.Col, Row: d.Position.Row}
		}
		for _, a := range d.Abilities {
			spec.Abilities = append(spec.Abilities, AbilitySpec{
				Trigger:     a.Trigger,
				Effect:      a.Effect,
				Target:      a.Target,
				Value:       a.Value,
				Range:       a.Range,
				Charge:      a.Charge,
				Aura:        a.Aura,
				SummonReady: a.SummonReady,
				Amplify:     a.Amplify,
			})
		}
		specs = append(specs, spec)
	}
	return specs
}

// NewBattleFromConfig builds a battle from a loaded armies file. A non-zero
// seed argument overrides the file's seed.
func NewBattleFromConfig(cfg *config.ArmiesConfig, seed int64, opts Options) (*Battle, error) {
	if seed == 0 {
		seed = cfg.Seed
	}
	return NewBattle(SpecsFromDefs(cfg.P1), SpecsFromDefs(cfg.P2), seed, opts)
}
