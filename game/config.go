package game

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// MonsterSpec describes one spawnable monster kind.
type MonsterSpec struct {
	Name    string `yaml:"name"`
	Glyph   string `yaml:"glyph"`
	AI      string `yaml:"ai"` // "melee" or "ranged"
	Range   int    `yaml:"range,omitempty"`
	HP      int    `yaml:"hp"`
	Defense int    `yaml:"defense"`
	Power   int    `yaml:"power"`
	Weight  int    `yaml:"weight"`
}

// SpawnConfig is the monster spawn table.
type SpawnConfig struct {
	MaxPerRoom int           `yaml:"max_per_room"`
	Monsters   []MonsterSpec `yaml:"monsters"`
}

// DefaultSpawnConfig returns the compiled-in spawn table.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		MaxPerRoom: 3,
		Monsters: []MonsterSpec{
			{Name: "Goblin", Glyph: "g", AI: "melee", HP: 8, Defense: 0, Power: 3, Weight: 6},
			{Name: "Orc", Glyph: "o", AI: "melee", HP: 16, Defense: 1, Power: 4, Weight: 3},
			{Name: "Goblin Archer", Glyph: "a", AI: "ranged", Range: 4, HP: 6, Defense: 0, Power: 2, Weight: 2},
		},
	}
}

// LoadSpawnConfig reads and validates a YAML spawn table.
func LoadSpawnConfig(path string) (SpawnConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpawnConfig{}, fmt.Errorf("read spawn config: %w", err)
	}
	return ParseSpawnConfig(data)
}

// ParseSpawnConfig parses and validates YAML spawn table data.
func ParseSpawnConfig(data []byte) (SpawnConfig, error) {
	var cfg SpawnConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SpawnConfig{}, fmt.Errorf("parse spawn config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return SpawnConfig{}, err
	}
	return cfg, nil
}

func (c SpawnConfig) validate() error {
	if c.MaxPerRoom < 0 {
		return fmt.Errorf("spawn config: max_per_room must not be negative")
	}
	if len(c.Monsters) == 0 {
		return fmt.Errorf("spawn config: at least one monster is required")
	}

	for i, m := range c.Monsters {
		if m.Name == "" {
			return fmt.Errorf("spawn config: monster %d has no name", i)
		}
		if len([]rune(m.Glyph)) != 1 {
			return fmt.Errorf("spawn config: monster %q glyph must be a single rune", m.Name)
		}
		switch m.AI {
		case "melee":
		case "ranged":
			if m.Range < 1 {
				return fmt.Errorf("spawn config: ranged monster %q needs range >= 1", m.Name)
			}
		default:
			return fmt.Errorf("spawn config: monster %q has unknown ai %q", m.Name, m.AI)
		}
		if m.HP < 1 {
			return fmt.Errorf("spawn config: monster %q needs hp >= 1", m.Name)
		}
		if m.Weight < 1 {
			return fmt.Errorf("spawn config: monster %q needs weight >= 1", m.Name)
		}
	}
	return nil
}

// pick draws a monster spec by spawn weight.
func (c SpawnConfig) pick(rng *rand.Rand) MonsterSpec {
	total := 0
	for _, m := range c.Monsters {
		total += m.Weight
	}

	roll := rng.IntN(total)
	for _, m := range c.Monsters {
		roll -= m.Weight
		if roll < 0 {
			return m
		}
	}
	return c.Monsters[len(c.Monsters)-1]
}

func (m MonsterSpec) glyph() rune {
	return []rune(m.Glyph)[0]
}
