package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadArmies reads an armies file and fills unit defaults: count 1,
// speed 1.0, hp max_hp.
func LoadArmies(path string) (*ArmiesConfig, error) {
	var ac ArmiesConfig
	if err := loadYAML(path, &ac); err != nil {
		return nil, err
	}
	for _, side := range [][]UnitDef{ac.P1, ac.P2} {
		for i := range side {
			if side[i].Count == 0 {
				side[i].Count = 1
			}
			if side[i].Speed == 0 {
				side[i].Speed = 1.0
			}
			if side[i].HP == 0 {
				side[i].HP = side[i].MaxHP
			}
		}
	}
	return &ac, nil
}
