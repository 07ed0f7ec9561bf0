package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSpawnConfigIsValid(t *testing.T) {
	cfg := DefaultSpawnConfig()

	require.NoError(t, cfg.validate())
	assert.NotEmpty(t, cfg.Monsters)
}

func TestParseSpawnConfig(t *testing.T) {
	data := []byte(`
max_per_room: 2
monsters:
  - name: Rat
    glyph: r
    ai: melee
    hp: 3
    defense: 0
    power: 1
    weight: 5
  - name: Slinger
    glyph: s
    ai: ranged
    range: 5
    hp: 4
    defense: 1
    power: 2
    weight: 1
`)

	cfg, err := ParseSpawnConfig(data)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxPerRoom)
	require.Len(t, cfg.Monsters, 2)

	rat := cfg.Monsters[0]
	assert.Equal(t, "Rat", rat.Name)
	assert.Equal(t, 'r', rat.glyph())
	assert.Equal(t, "melee", rat.AI)

	slinger := cfg.Monsters[1]
	assert.Equal(t, "ranged", slinger.AI)
	assert.Equal(t, 5, slinger.Range)
}

func TestParseSpawnConfigRejectsBadYAML(t *testing.T) {
	_, err := ParseSpawnConfig([]byte("monsters: [unclosed"))
	assert.Error(t, err)
}

func TestSpawnConfigValidation(t *testing.T) {
	base := func() SpawnConfig {
		return SpawnConfig{
			MaxPerRoom: 2,
			Monsters: []MonsterSpec{
				{Name: "Rat", Glyph: "r", AI: "melee", HP: 3, Power: 1, Weight: 1},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*SpawnConfig)
	}{
		{"negative max_per_room", func(c *SpawnConfig) { c.MaxPerRoom = -1 }},
		{"no monsters", func(c *SpawnConfig) { c.Monsters = nil }},
		{"missing name", func(c *SpawnConfig) { c.Monsters[0].Name = "" }},
		{"empty glyph", func(c *SpawnConfig) { c.Monsters[0].Glyph = "" }},
		{"multi-rune glyph", func(c *SpawnConfig) { c.Monsters[0].Glyph = "rr" }},
		{"unknown ai", func(c *SpawnConfig) { c.Monsters[0].AI = "psychic" }},
		{"ranged without range", func(c *SpawnConfig) { c.Monsters[0].AI = "ranged" }},
		{"zero hp", func(c *SpawnConfig) { c.Monsters[0].HP = 0 }},
		{"zero weight", func(c *SpawnConfig) { c.Monsters[0].Weight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestSpawnConfigPickRespectsWeights(t *testing.T) {
	cfg := SpawnConfig{
		MaxPerRoom: 1,
		Monsters: []MonsterSpec{
			{Name: "Common", Glyph: "c", AI: "melee", HP: 1, Power: 1, Weight: 9},
			{Name: "Rare", Glyph: "R", AI: "melee", HP: 1, Power: 1, Weight: 1},
		},
	}

	rng := testRNG(99)
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[cfg.pick(rng).Name]++
	}

	assert.Greater(t, counts["Common"], counts["Rare"]*4, "weight 9 vs 1 should dominate")
	assert.Positive(t, counts["Rare"], "low weight must still be drawn")
}
