package config

// ArmiesConfig is the root of an armies YAML file.
type ArmiesConfig struct {
	Seed int64     `yaml:"seed"`
	P1   []UnitDef `yaml:"p1"`
	P2   []UnitDef `yaml:"p2"`
}

type UnitDef struct {
	Name        string       `yaml:"name"`
	DisplayName string       `yaml:"display_name"`
	MaxHP       int          `yaml:"max_hp"`
	HP          int          `yaml:"hp"`
	Damage      int          `yaml:"damage"`
	Range       int          `yaml:"range"`
	Armor       int          `yaml:"armor"`
	Speed       float64      `yaml:"speed"`
	Count       int          `yaml:"count"`
	Position    *PosDef      `yaml:"position"`
	Abilities   []AbilityDef `yaml:"abilities"`
	Note        string       `yaml:"note"`
}

type PosDef struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

type AbilityDef struct {
	Trigger     string `yaml:"trigger"`
	Effect      string `yaml:"effect"`
	Target      string `yaml:"target"`
	Value       int    `yaml:"value"`
	Range       int    `yaml:"range"`
	Charge      int    `yaml:"charge"`
	Aura        int    `yaml:"aura"`
	SummonReady bool   `yaml:"summon_ready"`
	Amplify     *bool  `yaml:"amplify"`
	Note        string `yaml:"note"`
}
