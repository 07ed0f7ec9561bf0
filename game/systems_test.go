package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mawside/cellar/ecs"
)

// battleground wires a full turn pipeline over an open floor so tests can
// place combatants at exact coordinates.
type battleground struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	dungeon   *Dungeon

	intent *ecs.Resource[PlayerIntent]
	turns  *ecs.Resource[TurnState]
	log    *ecs.Resource[EventLog]
}

func newBattleground(width, height int) *battleground {
	dungeon := &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  make([]TileKind, width*height),
	}
	for i := range dungeon.Tiles {
		dungeon.Tiles[i] = TileFloor
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	world := ecs.NewWorld(registry)

	b := &battleground{
		world:   world,
		dungeon: dungeon,
		intent:  ecs.NewResource(world, PlayerIntent{}),
		turns:   ecs.NewResource(world, TurnState{}),
		log:     ecs.NewResource(world, EventLog{}),
	}
	ecs.NewResource(world, NewSpatialGrid())
	ecs.NewResource(world, AttackQueue{})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&SpatialIndexSystem{})
	scheduler.Register(&PlayerActionSystem{Dungeon: dungeon})
	scheduler.Register(&MeleeAISystem{Dungeon: dungeon})
	scheduler.Register(&RangedAISystem{Dungeon: dungeon})
	scheduler.Register(&DamageSystem{})
	scheduler.Register(&DeathSystem{})
	scheduler.Register(&TurnSystem{})
	b.scheduler = scheduler

	return b
}

func (b *battleground) spawnPlayer(x, y int, stats CombatStats) ecs.Entity {
	return b.world.Spawn(
		Player{},
		Position{X: x, Y: y},
		Name{Value: "Player"},
		BlocksTile{},
		stats,
	)
}

func (b *battleground) spawnMelee(x, y int, name string, stats CombatStats) ecs.Entity {
	return b.world.Spawn(
		Position{X: x, Y: y},
		Name{Value: name},
		Hostile{},
		MeleeAI{},
		BlocksTile{},
		stats,
	)
}

func (b *battleground) spawnRanged(x, y, attackRange int, name string, stats CombatStats) ecs.Entity {
	return b.world.Spawn(
		Position{X: x, Y: y},
		Name{Value: name},
		Hostile{},
		RangedAI{Range: attackRange},
		BlocksTile{},
		stats,
	)
}

func (b *battleground) act(dx, dy int) {
	intent := b.intent.Get()
	intent.DX, intent.DY = dx, dy
	intent.Pending = true
	b.scheduler.Step(1.0)
}

func (b *battleground) wait() {
	b.scheduler.Step(1.0)
}

func (b *battleground) logContains(substr string) bool {
	for _, line := range b.log.Get().Recent(eventLogCap) {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestPlayerMovement(t *testing.T) {
	b := newBattleground(10, 10)
	player := b.spawnPlayer(5, 5, CombatStats{HP: 30, MaxHP: 30, Power: 5})

	b.act(1, 0)
	assert.Equal(t, Position{X: 6, Y: 5}, *ecs.Get[Position](b.world, player))

	b.act(0, -1)
	assert.Equal(t, Position{X: 6, Y: 4}, *ecs.Get[Position](b.world, player))
}

func TestPlayerCannotWalkIntoWalls(t *testing.T) {
	b := newBattleground(10, 10)
	b.dungeon.Tiles[b.dungeon.index(6, 5)] = TileWall

	player := b.spawnPlayer(5, 5, CombatStats{HP: 30, MaxHP: 30})

	b.act(1, 0)
	assert.Equal(t, Position{X: 5, Y: 5}, *ecs.Get[Position](b.world, player))
}

func TestPlayerCannotShareTileWithBlocker(t *testing.T) {
	b := newBattleground(10, 10)

	player := b.spawnPlayer(5, 5, CombatStats{HP: 30, MaxHP: 30, Power: 0})
	// A blocking entity that is not attackable (no Hostile).
	b.world.Spawn(Position{X: 6, Y: 5}, Name{Value: "Boulder"}, BlocksTile{})

	b.act(1, 0)
	assert.Equal(t, Position{X: 5, Y: 5}, *ecs.Get[Position](b.world, player))
}

func TestPlayerBumpAttack(t *testing.T) {
	b := newBattleground(10, 10)

	b.spawnPlayer(5, 5, CombatStats{HP: 30, MaxHP: 30, Defense: 9, Power: 5})
	goblin := b.spawnMelee(6, 5, "Goblin", CombatStats{HP: 8, MaxHP: 8, Defense: 0, Power: 3})

	b.act(1, 0)

	// Bumping attacks instead of moving.
	assert.Equal(t, 3, ecs.Get[CombatStats](b.world, goblin).HP)
	assert.True(t, b.logContains("Player hits Goblin for 5 hp."))

	b.act(1, 0)
	assert.False(t, b.world.Alive(goblin), "goblin despawns at zero hp")
	assert.True(t, b.logContains("Goblin dies."))
}

func TestMeleeAIApproachesAndAttacks(t *testing.T) {
	b := newBattleground(20, 10)

	player := b.spawnPlayer(2, 2, CombatStats{HP: 30, MaxHP: 30, Defense: 1})
	goblin := b.spawnMelee(6, 2, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 3})

	// Distance 4: three waits to close to adjacency, the fourth to attack.
	for i := 0; i < 3; i++ {
		b.wait()
	}
	assert.Equal(t, Position{X: 3, Y: 2}, *ecs.Get[Position](b.world, goblin))
	assert.Equal(t, 30, ecs.Get[CombatStats](b.world, player).HP)

	b.wait()
	assert.Equal(t, 28, ecs.Get[CombatStats](b.world, player).HP, "power 3 less defense 1")
	assert.True(t, b.logContains("Goblin hits Player for 2 hp."))
}

func TestMeleeAIFallsBackToAxisStep(t *testing.T) {
	b := newBattleground(10, 10)

	// The preferred diagonal is walled off, so the monster takes the
	// horizontal step instead.
	b.dungeon.Tiles[b.dungeon.index(4, 2)] = TileWall

	b.spawnPlayer(2, 2, CombatStats{HP: 30, MaxHP: 30, Defense: 9})
	goblin := b.spawnMelee(5, 3, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 3})

	b.wait()

	assert.Equal(t, Position{X: 4, Y: 3}, *ecs.Get[Position](b.world, goblin))
}

func TestMeleeAIStandsStillWhenFullyBlocked(t *testing.T) {
	b := newBattleground(10, 10)

	// A straight wall with no diagonal alternative leaves the monster in place.
	b.dungeon.Tiles[b.dungeon.index(4, 2)] = TileWall

	b.spawnPlayer(2, 2, CombatStats{HP: 30, MaxHP: 30, Defense: 9})
	goblin := b.spawnMelee(5, 2, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 3})

	b.wait()

	assert.Equal(t, Position{X: 5, Y: 2}, *ecs.Get[Position](b.world, goblin))
}

func TestRangedAIHoldsDistance(t *testing.T) {
	b := newBattleground(20, 10)

	player := b.spawnPlayer(2, 2, CombatStats{HP: 30, MaxHP: 30, Defense: 0})
	archer := b.spawnRanged(8, 2, 3, "Archer", CombatStats{HP: 6, MaxHP: 6, Power: 2})

	// Distance 6: advances while out of range.
	b.wait()
	b.wait()
	b.wait()
	require.Equal(t, Position{X: 5, Y: 2}, *ecs.Get[Position](b.world, archer))
	assert.Equal(t, 30, ecs.Get[CombatStats](b.world, player).HP)

	// Distance 3: in range, attacks without advancing further.
	b.wait()
	assert.Equal(t, Position{X: 5, Y: 2}, *ecs.Get[Position](b.world, archer))
	assert.Equal(t, 28, ecs.Get[CombatStats](b.world, player).HP)
	assert.True(t, b.logContains("Archer hits Player for 2 hp."))
}

func TestZeroDamageIsLogged(t *testing.T) {
	b := newBattleground(10, 10)

	b.spawnPlayer(5, 5, CombatStats{HP: 30, MaxHP: 30, Defense: 10})
	b.spawnMelee(6, 5, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 3})

	b.wait()

	assert.True(t, b.logContains("Goblin is unable to hurt Player."))
}

func TestPlayerDeathEndsGame(t *testing.T) {
	b := newBattleground(10, 10)

	player := b.spawnPlayer(5, 5, CombatStats{HP: 3, MaxHP: 3, Defense: 0})
	b.spawnMelee(6, 5, "Ogre", CombatStats{HP: 20, MaxHP: 20, Power: 10})

	b.wait()

	assert.True(t, b.turns.Get().GameOver)
	assert.True(t, b.logContains("You died."))
	assert.True(t, b.world.Alive(player), "the player entity is kept for the death screen")

	// A finished game stops advancing.
	turn := b.turns.Get().Turn
	b.act(1, 0)
	assert.Equal(t, turn, b.turns.Get().Turn)
	assert.Equal(t, Position{X: 5, Y: 5}, *ecs.Get[Position](b.world, player))
}

func TestMonstersDoNotStackTiles(t *testing.T) {
	b := newBattleground(20, 10)

	b.spawnPlayer(2, 2, CombatStats{HP: 30, MaxHP: 30, Defense: 9})
	first := b.spawnMelee(6, 2, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 1})
	second := b.spawnMelee(7, 2, "Goblin", CombatStats{HP: 8, MaxHP: 8, Power: 1})

	for i := 0; i < 6; i++ {
		b.wait()
	}

	a := *ecs.Get[Position](b.world, first)
	c := *ecs.Get[Position](b.world, second)
	assert.NotEqual(t, a, c, "blockers may not share a tile")
}
